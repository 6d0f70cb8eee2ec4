// Package wiring assembles the pipeline collaborators from configuration.
// Both the daemon bootstrap and the CLI's one-shot commands build the
// same component graph through it.
package wiring

import (
	"fmt"

	"log/slog"

	"reclip/internal/artifacts"
	"reclip/internal/config"
	"reclip/internal/ledger"
	"reclip/internal/notifications"
	"reclip/internal/pipeline"
	"reclip/internal/reconcile"
	"reclip/internal/scheduler"
	"reclip/internal/services/ffmpeg"
	"reclip/internal/services/youtube"
	"reclip/internal/services/ytdlp"
)

// Components holds every constructed collaborator. Store must be closed
// by the caller when done; Close does that.
type Components struct {
	Store        *ledger.Store
	Workspace    *artifacts.Workspace
	Catalog      *youtube.Client
	Downloader   *ytdlp.Client
	Transformer  *ffmpeg.Client
	Notifier     notifications.Service
	Control      *scheduler.Control
	Orchestrator *pipeline.Orchestrator
	Coordinator  *scheduler.Coordinator
}

// Build constructs the full component graph for the given config.
func Build(cfg *config.Config, logger *slog.Logger) (*Components, error) {
	store, err := ledger.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	catalog := youtube.NewClient(cfg, logger)
	downloader, err := ytdlp.New(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	transformer, err := ffmpeg.New(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	workspace := artifacts.NewWorkspace(cfg.Paths.DownloadDir)
	notifier := notifications.NewService(cfg)
	control := scheduler.NewControl()
	reconciler := reconcile.New(catalog, cfg.Publish.TitlePrefix, logger)

	orchestrator, err := pipeline.New(pipeline.Deps{
		Config:      cfg,
		Store:       store,
		Workspace:   workspace,
		Catalog:     catalog,
		Downloader:  downloader,
		Transformer: transformer,
		Reconciler:  reconciler,
		Notifier:    notifier,
		Gate:        control,
		Logger:      logger,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	coordinator := scheduler.NewCoordinator(cfg, store, orchestrator, catalog, control, notifier, logger)

	return &Components{
		Store:        store,
		Workspace:    workspace,
		Catalog:      catalog,
		Downloader:   downloader,
		Transformer:  transformer,
		Notifier:     notifier,
		Control:      control,
		Orchestrator: orchestrator,
		Coordinator:  coordinator,
	}, nil
}

// Close releases held resources.
func (c *Components) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
