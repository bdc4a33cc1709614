// Package logging provides the coordinator's Logger implementations: a
// thin StderrLogger forwarding to prometheus/common/log, and a
// file-backed RotatingFileLogger that moves the log aside to an "old_"
// companion once it crosses a size threshold and reopens.
package logging

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/common/log"
)

const (
	calldepth = 2
	info      = "INFO"
	warn      = "WARN"
	errorl    = "ERROR"
	debug     = "DEBUG"
	fatal     = "FATAL"
)

// Use the given log level as prefix.
func level(prefix, message string) string {
	return fmt.Sprintf("[%s]: %s", prefix, message)
}

// StderrLogger is the default logger used when no file path is configured.
// Rather than hand-rolling its own level-prefixed stdlib log.Logger, it
// forwards every call to prometheus/common/log, the same package-level
// leveled logger go-mcast's transport reaches for directly.
type StderrLogger struct {
	debug bool
}

// NewStderrLogger returns a Logger that writes to os.Stderr through
// prometheus/common/log.
func NewStderrLogger() *StderrLogger {
	return &StderrLogger{}
}

func (l *StderrLogger) Info(v ...interface{})                 { log.Info(v...) }
func (l *StderrLogger) Infof(format string, v ...interface{}) { log.Infof(format, v...) }
func (l *StderrLogger) Warn(v ...interface{})                 { log.Warn(v...) }
func (l *StderrLogger) Warnf(format string, v ...interface{}) { log.Warnf(format, v...) }
func (l *StderrLogger) Error(v ...interface{})                { log.Error(v...) }
func (l *StderrLogger) Errorf(format string, v ...interface{}) { log.Errorf(format, v...) }
func (l *StderrLogger) Debug(v ...interface{}) {
	if l.debug {
		log.Debug(v...)
	}
}
func (l *StderrLogger) Debugf(format string, v ...interface{}) {
	if l.debug {
		log.Debugf(format, v...)
	}
}
func (l *StderrLogger) ToggleDebug(value bool) bool {
	l.debug = value
	// prometheus/common/log drops Debug lines at its default Info level, so
	// its level follows the toggle.
	lvl := "info"
	if value {
		lvl = "debug"
	}
	log.Base().SetLevel(lvl)
	return l.debug
}
func (l *StderrLogger) Fatal(v ...interface{})                 { log.Fatal(v...) }
func (l *StderrLogger) Fatalf(format string, v ...interface{}) { log.Fatalf(format, v...) }

// RotatingFileLogger writes timestamped lines to a file, rotating it to an
// "old_<name>" companion once it crosses rotateBytes. There is only ever one
// rotated generation kept, matching the original coordinator's single
// mv log.txt old_log.txt step rather than a numbered ring of backups.
type RotatingFileLogger struct {
	mu          sync.Mutex
	path        string
	oldPath     string
	rotateBytes int64
	file        *os.File
	logger      *stdlog.Logger
	size        int64
	debug       bool
	mirror      bool // also write to stderr via prometheus/common/log
}

// NewRotatingFileLogger opens (creating if necessary) the log file at path
// and prepares rotation at rotateBytes. If rotateBytes is <= 0, a 5MiB
// default is used.
func NewRotatingFileLogger(path string, rotateBytes int64, mirrorToStderr bool) (*RotatingFileLogger, error) {
	if rotateBytes <= 0 {
		rotateBytes = 5 * 1024 * 1024
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	l := &RotatingFileLogger{
		path:        path,
		oldPath:     filepath.Join(dir, "old_"+base),
		rotateBytes: rotateBytes,
		mirror:      mirrorToStderr,
	}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *RotatingFileLogger) open() error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	l.file = f
	l.size = info.Size()
	l.logger = stdlog.New(f, "", stdlog.LstdFlags)
	return nil
}

func (l *RotatingFileLogger) rotateIfNeeded() {
	if l.size < l.rotateBytes {
		return
	}
	l.file.Close()
	os.Remove(l.oldPath)
	os.Rename(l.path, l.oldPath)
	if err := l.open(); err != nil {
		// Can't reopen; fall back to stderr so the process doesn't go
		// silently dark.
		log.Errorf("rendezvous: failed reopening log file after rotation: %v", err)
	}
}

func (l *RotatingFileLogger) write(prefix, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	line := level(prefix, message)
	l.logger.Output(calldepth+2, line)
	l.size += int64(len(line)) + 32 // rough accounting for the timestamp prefix
	l.rotateIfNeeded()
	if l.mirror {
		switch prefix {
		case errorl, fatal:
			log.Errorln(message)
		case warn:
			log.Warnln(message)
		default:
			log.Infoln(message)
		}
	}
}

func (l *RotatingFileLogger) Info(v ...interface{})  { l.write(info, fmt.Sprint(v...)) }
func (l *RotatingFileLogger) Infof(format string, v ...interface{}) {
	l.write(info, fmt.Sprintf(format, v...))
}
func (l *RotatingFileLogger) Warn(v ...interface{}) { l.write(warn, fmt.Sprint(v...)) }
func (l *RotatingFileLogger) Warnf(format string, v ...interface{}) {
	l.write(warn, fmt.Sprintf(format, v...))
}
func (l *RotatingFileLogger) Error(v ...interface{}) { l.write(errorl, fmt.Sprint(v...)) }
func (l *RotatingFileLogger) Errorf(format string, v ...interface{}) {
	l.write(errorl, fmt.Sprintf(format, v...))
}
func (l *RotatingFileLogger) Debug(v ...interface{}) {
	if l.debug {
		l.write(debug, fmt.Sprint(v...))
	}
}
func (l *RotatingFileLogger) Debugf(format string, v ...interface{}) {
	if l.debug {
		l.write(debug, fmt.Sprintf(format, v...))
	}
}
func (l *RotatingFileLogger) ToggleDebug(value bool) bool {
	l.debug = value
	return l.debug
}
func (l *RotatingFileLogger) Fatal(v ...interface{}) {
	l.write(fatal, fmt.Sprint(v...))
	l.Close()
	os.Exit(1)
}
func (l *RotatingFileLogger) Fatalf(format string, v ...interface{}) {
	l.write(fatal, fmt.Sprintf(format, v...))
	l.Close()
	os.Exit(1)
}

// Close flushes and closes the underlying log file.
func (l *RotatingFileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
