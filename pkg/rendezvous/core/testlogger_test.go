package core

import "testing"

// testLogger routes every line through t.Logf so failures show the
// coordinator's own log output inline with the test failure.
type testLogger struct {
	t *testing.T
}

func newTestLogger(t *testing.T) *testLogger { return &testLogger{t: t} }

func (l *testLogger) Info(v ...interface{})                    { l.t.Log(v...) }
func (l *testLogger) Infof(format string, v ...interface{})    { l.t.Logf(format, v...) }
func (l *testLogger) Warn(v ...interface{})                    { l.t.Log(v...) }
func (l *testLogger) Warnf(format string, v ...interface{})    { l.t.Logf(format, v...) }
func (l *testLogger) Error(v ...interface{})                   { l.t.Log(v...) }
func (l *testLogger) Errorf(format string, v ...interface{})   { l.t.Logf(format, v...) }
func (l *testLogger) Debug(v ...interface{})                   { l.t.Log(v...) }
func (l *testLogger) Debugf(format string, v ...interface{})   { l.t.Logf(format, v...) }
func (l *testLogger) Fatal(v ...interface{})                   { l.t.Fatal(v...) }
func (l *testLogger) Fatalf(format string, v ...interface{})   { l.t.Fatalf(format, v...) }
