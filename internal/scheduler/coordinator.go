package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"reclip/internal/config"
	"reclip/internal/fileutil"
	"reclip/internal/ledger"
	"reclip/internal/logging"
	"reclip/internal/notifications"
	"reclip/internal/pipeline"
	"reclip/internal/services/youtube"
)

// Processor runs one catalog item through the pipeline.
type Processor interface {
	Process(ctx context.Context, video youtube.Video) pipeline.Result
}

// Lister pages the channel catalog.
type Lister interface {
	ListVideos(ctx context.Context, channelID string, startIndex, count int) ([]youtube.Video, error)
}

// Summary tallies one drain pass.
type Summary struct {
	Examined  int
	Published int
	Skipped   int
	Failed    int
}

func (s Summary) add(outcome pipeline.Outcome) Summary {
	switch outcome {
	case pipeline.OutcomePublished:
		s.Published++
	case pipeline.OutcomeSkipped:
		s.Skipped++
	case pipeline.OutcomeFailed:
		s.Failed++
	}
	return s
}

// Coordinator owns the scheduling loop: clock-triggered passes that
// first publish pending ledger rows, then drain new catalog items.
type Coordinator struct {
	cfg       *config.Config
	store     *ledger.Store
	processor Processor
	lister    Lister
	windows   Windows
	control   *Control
	notifier  notifications.Service
	logger    *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewCoordinator wires the scheduling loop. A nil control gets a fresh
// one; callers that need pause/stop keep their own reference.
func NewCoordinator(cfg *config.Config, store *ledger.Store, processor Processor, lister Lister, control *Control, notifier notifications.Service, logger *slog.Logger) *Coordinator {
	if control == nil {
		control = NewControl()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		cfg:       cfg,
		store:     store,
		processor: processor,
		lister:    lister,
		windows:   ParseWindows(cfg.Publish.UploadTimes, logger),
		control:   control,
		notifier:  notifier,
		logger:    logger.With(logging.String(logging.FieldComponent, "scheduler")),
		now:       time.Now,
	}
}

// Control returns the shared run-state.
func (c *Coordinator) Control() *Control {
	return c.control
}

// Windows returns the parsed upload windows.
func (c *Coordinator) Windows() Windows {
	return c.windows
}

// Drain walks the catalog from the newest video, processing every item
// the ledger does not already know. Pages whose items are all known
// advance the offset; a short page ends the pass. Per-item failures
// are tallied, never propagated, so one bad item cannot stall the
// drain. A pause takes effect between items: the pass suspends after
// the current item and resumes where it left off.
func (c *Coordinator) Drain(ctx context.Context) (Summary, error) {
	var summary Summary

	seen, err := c.store.KnownIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("load known ids: %w", err)
	}

	batchSize := c.cfg.Source.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	offset := 0
	for {
		if err := c.waitWhilePaused(ctx); err != nil {
			return summary, err
		}
		batch, err := c.lister.ListVideos(ctx, c.cfg.Source.ChannelID, offset, batchSize)
		if err != nil {
			return summary, fmt.Errorf("list catalog page at %d: %w", offset, err)
		}
		if len(batch) == 0 {
			return summary, nil
		}

		processed := 0
		for _, video := range batch {
			if _, ok := seen[video.ID]; ok {
				continue
			}
			if err := c.waitWhilePaused(ctx); err != nil {
				return summary, err
			}
			result := c.processor.Process(ctx, video)
			summary = summary.add(result.Outcome)
			summary.Examined++
			// Skips without a ledger row (no references, no matching
			// segments) must still not repeat within this pass.
			seen[video.ID] = struct{}{}
			processed++
		}
		if processed == 0 {
			offset += batchSize
		}
		if len(batch) < batchSize {
			return summary, nil
		}
	}
}

// PublishPending re-runs every pending ledger row that still has its
// compilation file, before new items are drained. Rows whose file
// vanished are left pending; the drain rebuilds them when the item
// comes around again. As in Drain, a pause suspends the pass between
// rows.
func (c *Coordinator) PublishPending(ctx context.Context) Summary {
	var summary Summary

	entries, err := c.store.PendingUploads(ctx)
	if err != nil {
		c.logger.Error("pending upload query failed", logging.Error(err))
		return summary
	}
	for _, entry := range entries {
		if err := c.waitWhilePaused(ctx); err != nil {
			return summary
		}
		if !fileutil.NonEmptyFile(entry.CompilationPath) {
			c.logger.Warn("pending compilation missing on disk",
				logging.String(logging.FieldItemID, entry.VideoID),
				logging.String("path", entry.CompilationPath))
			continue
		}
		result := c.processor.Process(ctx, youtube.Video{ID: entry.VideoID, Title: entry.Title})
		summary = summary.add(result.Outcome)
		summary.Examined++
	}
	return summary
}

// Run loops until stopped: inside an upload window it publishes
// pending rows and drains the catalog, then backs off past the window;
// outside it sleeps in short ticks so pause and stop stay responsive.
func (c *Coordinator) Run(ctx context.Context) error {
	tick := c.tick()
	c.logger.Info("scheduler started",
		logging.String("windows", c.describeWindows()),
		logging.Bool("strict_minute", c.cfg.Publish.StrictMinute))

	for {
		if err := c.checkRunState(ctx); err != nil {
			if c.control.Stopped() {
				return nil
			}
			return err
		}
		if c.control.Paused() || !c.windows.Within(c.now(), c.cfg.Publish.StrictMinute) {
			if err := c.sleep(ctx, tick); err != nil {
				return c.runExit(err)
			}
			continue
		}

		start := c.now()
		summary := c.PublishPending(ctx)
		drained, err := c.Drain(ctx)
		if err != nil && ctx.Err() == nil && !c.control.Stopped() {
			c.logger.Error("drain pass failed", logging.Error(err))
			c.notify(ctx, notifications.EventError, notifications.Payload{
				"scope": "drain",
				"error": err.Error(),
			})
		}
		summary.Examined += drained.Examined
		summary.Published += drained.Published
		summary.Skipped += drained.Skipped
		summary.Failed += drained.Failed

		duration := c.now().Sub(start).Round(time.Second)
		c.logger.Info("pass complete",
			logging.Int("examined", summary.Examined),
			logging.Int("published", summary.Published),
			logging.Int("skipped", summary.Skipped),
			logging.Int("failed", summary.Failed),
			logging.Duration("duration", duration))
		c.notify(ctx, notifications.EventPassCompleted, notifications.Payload{
			"published": strconv.Itoa(summary.Published),
			"skipped":   strconv.Itoa(summary.Skipped),
			"failed":    strconv.Itoa(summary.Failed),
			"duration":  duration.String(),
		})

		if err := c.sleep(ctx, c.backoff()); err != nil {
			return c.runExit(err)
		}
	}
}

// backoff keeps the loop out of the just-served window without
// overshooting the next one.
func (c *Coordinator) backoff() time.Duration {
	backoff := 2*windowSlack + time.Minute
	if gap := c.windows.MinGap() / 2; gap < backoff {
		backoff = gap
	}
	return backoff
}

func (c *Coordinator) runExit(err error) error {
	if c.control.Stopped() {
		return nil
	}
	return err
}

// sleep waits in one-tick slices so stop requests take effect quickly.
func (c *Coordinator) sleep(ctx context.Context, total time.Duration) error {
	tick := c.tick()
	deadline := c.now().Add(total)
	for c.now().Before(deadline) {
		if err := c.checkRunState(ctx); err != nil {
			return err
		}
		wait := tick
		if remaining := deadline.Sub(c.now()); remaining < wait {
			wait = remaining
		}
		if err := c.wait(ctx, wait); err != nil {
			return err
		}
	}
	return nil
}

// waitWhilePaused blocks between items while the control is paused,
// waking each tick so stop and cancellation still take effect.
func (c *Coordinator) waitWhilePaused(ctx context.Context) error {
	for {
		if err := c.checkRunState(ctx); err != nil {
			return err
		}
		if !c.control.Paused() {
			return nil
		}
		if err := c.wait(ctx, c.tick()); err != nil {
			return err
		}
	}
}

func (c *Coordinator) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Coordinator) tick() time.Duration {
	tick := time.Duration(c.cfg.Workflow.SleepTick) * time.Second
	if tick <= 0 {
		tick = time.Second
	}
	return tick
}

func (c *Coordinator) checkRunState(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.control.Stopped() {
		return context.Canceled
	}
	return nil
}

func (c *Coordinator) notify(ctx context.Context, event notifications.Event, payload notifications.Payload) {
	if err := c.notifier.Publish(ctx, event, payload); err != nil {
		c.logger.Debug("notification failed", logging.Error(err))
	}
}

func (c *Coordinator) describeWindows() string {
	out := ""
	for i, window := range c.windows {
		if i > 0 {
			out += ","
		}
		out += window.String()
	}
	return out
}
