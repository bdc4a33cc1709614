// Command coordinator runs the NAT-traversal rendezvous service: it binds
// the configured port on both UDP and TCP and serves POST/ASK requests
// until killed. It does not daemonize or handle signals itself; it is
// expected to run under whatever supervisor an operator already uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jabolina/rendezvous/internal/config"
	"github.com/jabolina/rendezvous/internal/logging"
	"github.com/jabolina/rendezvous/pkg/rendezvous/core"
	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
)

func main() {
	configPath := flag.String("config", "", "path to coordinator.yaml (optional, defaults used if absent)")
	debug := flag.Bool("debug", false, "enable debug-level logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rendezvous: failed loading config %q: %v\n", *configPath, err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rendezvous: failed opening log file %q: %v\n", cfg.LogFile, err)
		os.Exit(1)
	}

	coordinator, err := core.New(core.Options{
		Port:        cfg.Port,
		Cap:         cfg.Cap,
		TTLSeconds:  int64(cfg.TTLSeconds),
		RecvTimeout: time.Duration(cfg.RecvTimeoutMillis) * time.Millisecond,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatalf("failed starting coordinator: %v", err)
	}

	logger.Infof("rendezvous coordinator listening on udp+tcp :%d (cap=%d ttl=%ds)", cfg.Port, cfg.Cap, cfg.TTLSeconds)
	coordinator.Start(context.Background())
}

// newLogger wires up the file-backed rotating logger when a path is
// configured, falling back to a plain stderr logger otherwise.
func newLogger(cfg *config.Config) (types.Logger, error) {
	if cfg.LogFile == "" {
		l := logging.NewStderrLogger()
		l.ToggleDebug(cfg.Debug)
		return l, nil
	}
	l, err := logging.NewRotatingFileLogger(cfg.LogFile, cfg.LogRotateBytes, true)
	if err != nil {
		return nil, err
	}
	l.ToggleDebug(cfg.Debug)
	return l, nil
}
