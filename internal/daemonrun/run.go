// Package daemonrun wires configuration, logging, the ledger, and every
// pipeline collaborator into a running daemon process. It exists apart
// from package daemon so both cmd/reclipd and `reclip watch` can share
// the bootstrap.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"reclip/internal/config"
	"reclip/internal/daemon"
	"reclip/internal/ipc"
	"reclip/internal/logging"
	"reclip/internal/preflight"
	"reclip/internal/wiring"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Run starts the reclip daemon runtime loop and blocks until a signal
// or IPC stop arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "reclip.log")
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	results := preflight.RunAll(signalCtx, cfg)
	for _, result := range results {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
			continue
		}
		logger.Error("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail))
	}
	if !preflight.Passed(results) {
		return fmt.Errorf("preflight checks failed")
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "reclip.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	components, err := wiring.Build(cfg, logger)
	if err != nil {
		return err
	}

	d, err := daemon.New(cfg, components.Store, components.Coordinator, logger)
	if err != nil {
		components.Store.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	socketPath := filepath.Join(cfg.Paths.LogDir, "reclip.sock")
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	<-signalCtx.Done()
	logger.Info("reclip daemon shutting down")
	return nil
}

// SocketPath returns the IPC socket location for a given config.
func SocketPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "reclip.sock")
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
