package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"reclip/internal/config"
	"reclip/internal/ledger"
	"reclip/internal/logging"
	"reclip/internal/notifications"
	"reclip/internal/scheduler"
)

// Daemon runs the scheduling loop in the background and enforces
// single-instance execution via a lock file in the log directory.
type Daemon struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *ledger.Store
	coordinator *scheduler.Coordinator
	logPath     string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Paused       bool
	Windows      string
	NextWindow   time.Time
	PendingCount int
	LedgerDBPath string
	LockFilePath string
	PID          int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *ledger.Store, coordinator *scheduler.Coordinator, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || coordinator == nil {
		return nil, errors.New("daemon requires config, store, and coordinator")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "reclipd.lock")
	return &Daemon{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		coordinator: coordinator,
		logPath:     filepath.Join(cfg.Paths.LogDir, "reclip.log"),
		lockPath:    lockPath,
		lock:        flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the scheduling loop.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another reclip daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running.Store(true)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.coordinator.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error("scheduler loop exited", logging.Error(err))
		}
		d.running.Store(false)
	}()

	d.logger.Info("reclip daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop halts the scheduling loop and releases the daemon lock. It blocks
// until the loop goroutine has returned.
func (d *Daemon) Stop() {
	if !d.running.Load() && d.cancel == nil {
		return
	}

	d.coordinator.Control().Stop()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("reclip daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Pause suspends publishing passes without stopping the loop.
func (d *Daemon) Pause() {
	d.coordinator.Control().Pause()
	d.logger.Info("scheduling paused")
}

// Resume lifts a pause.
func (d *Daemon) Resume() {
	d.coordinator.Control().Resume()
	d.logger.Info("scheduling resumed")
}

// Paused reports whether publishing passes are suspended.
func (d *Daemon) Paused() bool {
	return d.coordinator.Control().Paused()
}

// Running reports whether the scheduling loop is active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// TestNotification sends a probe notification using the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	notifier := notifications.NewService(d.cfg)
	if err := notifier.Publish(ctx, notifications.EventTest, nil); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	windows := d.coordinator.Windows()
	pending := 0
	if entries, err := d.store.PendingUploads(ctx); err == nil {
		pending = len(entries)
	}
	descriptions := make([]string, 0, len(windows))
	for _, window := range windows {
		descriptions = append(descriptions, window.String())
	}
	return Status{
		Running:      d.running.Load(),
		Paused:       d.coordinator.Control().Paused(),
		Windows:      strings.Join(descriptions, ","),
		NextWindow:   windows.Next(time.Now()),
		PendingCount: pending,
		LedgerDBPath: d.store.Path(),
		LockFilePath: d.lockPath,
		PID:          os.Getpid(),
	}
}
