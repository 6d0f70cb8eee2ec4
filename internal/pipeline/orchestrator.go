package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reclip/internal/artifacts"
	"reclip/internal/config"
	"reclip/internal/ledger"
	"reclip/internal/logging"
	"reclip/internal/notifications"
	"reclip/internal/reconcile"
	"reclip/internal/services"
	"reclip/internal/services/youtube"
	"reclip/internal/timestamps"
)

// Catalog is the slice of the API client the orchestrator needs.
type Catalog interface {
	FetchComments(ctx context.Context, videoID string, allowedAuthors []string) ([]timestamps.Comment, error)
	Publish(ctx context.Context, path string, meta youtube.UploadMetadata) (string, error)
	AddToPlaylist(ctx context.Context, playlistID, videoID string) error
}

// Downloader fetches source videos.
type Downloader interface {
	Download(ctx context.Context, videoID, destDir string, onProgress func(string)) (string, error)
}

// Transformer cuts and stitches media files.
type Transformer interface {
	Duration(ctx context.Context, input string) (int, error)
	Cut(ctx context.Context, input, output string, start, end int) error
	Concat(ctx context.Context, clips []string, output string) error
}

// Confirmer checks the remote channel for prior publications.
type Confirmer interface {
	Confirm(ctx context.Context, source youtube.Video) (reconcile.Match, bool, error)
}

// PublishGate serializes uploads across concurrent callers. A nil gate
// means publishing is never contended.
type PublishGate interface {
	TryLock() bool
	Unlock()
}

// Deps wires the orchestrator's collaborators.
type Deps struct {
	Config      *config.Config
	Store       *ledger.Store
	Workspace   *artifacts.Workspace
	Catalog     Catalog
	Downloader  Downloader
	Transformer Transformer
	Reconciler  Confirmer
	Notifier    notifications.Service
	Gate        PublishGate
	Logger      *slog.Logger
}

// Orchestrator processes catalog items one at a time.
type Orchestrator struct {
	cfg         *config.Config
	store       *ledger.Store
	workspace   *artifacts.Workspace
	catalog     Catalog
	downloader  Downloader
	transformer Transformer
	reconciler  Confirmer
	notifier    notifications.Service
	gate        PublishGate
	retry       services.RetryPolicy
	logger      *slog.Logger
}

// New validates deps and builds the orchestrator.
func New(deps Deps) (*Orchestrator, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("config required")
	case deps.Store == nil:
		return nil, errors.New("ledger store required")
	case deps.Workspace == nil:
		return nil, errors.New("workspace required")
	case deps.Catalog == nil:
		return nil, errors.New("catalog required")
	case deps.Downloader == nil:
		return nil, errors.New("downloader required")
	case deps.Transformer == nil:
		return nil, errors.New("transformer required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewService(deps.Config)
	}
	retry := services.RetryPolicy{
		MaxAttempts: deps.Config.Workflow.RetryMaxAttempts,
		BaseDelay:   time.Duration(deps.Config.Workflow.RetryBaseDelay) * time.Second,
	}
	return &Orchestrator{
		cfg:         deps.Config,
		store:       deps.Store,
		workspace:   deps.Workspace,
		catalog:     deps.Catalog,
		downloader:  deps.Downloader,
		transformer: deps.Transformer,
		reconciler:  deps.Reconciler,
		notifier:    notifier,
		gate:        deps.Gate,
		retry:       retry,
		logger:      logger.With(logging.String(logging.FieldComponent, "pipeline")),
	}, nil
}

// Process runs one catalog item through the workflow and reports its
// outcome. Errors are folded into the result; they never propagate so
// a bad item cannot abort the batch.
func (o *Orchestrator) Process(ctx context.Context, video youtube.Video) Result {
	ctx = services.WithItemID(ctx, video.ID)
	ctx = services.WithRequestID(ctx, uuid.NewString())

	result := o.process(ctx, video)
	result.VideoID = video.ID

	log := logging.WithContext(ctx, o.logger)
	switch result.Outcome {
	case OutcomePublished:
		log.Info("item published",
			logging.String("published_id", result.PublishedID))
		o.notify(ctx, notifications.EventItemPublished, notifications.Payload{
			"title":        result.PublishedTitle,
			"published_id": result.PublishedID,
		})
	case OutcomeSkipped:
		log.Info("item skipped", logging.String("reason", result.Reason))
	case OutcomeFailed:
		log.Error("item failed", logging.Error(result.Err))
		o.notify(ctx, notifications.EventError, notifications.Payload{
			"scope": video.ID,
			"error": result.Err.Error(),
		})
	}
	return result
}

func (o *Orchestrator) process(ctx context.Context, video youtube.Video) Result {
	if result, done := o.checkRemote(ctx, video); done {
		return result
	}
	if result, done := o.checkLedger(ctx, video); done {
		return result
	}

	refs, result, done := o.fetchReferences(ctx, video)
	if done {
		return result
	}
	segs, result, done := o.buildSegments(ctx, video, refs)
	if done {
		return result
	}

	acq, result, done := o.acquireMedia(ctx, video)
	if done {
		return result
	}
	if acq.compilation != "" {
		// A finished compilation from an interrupted run publishes as-is.
		return o.publish(ctx, video, publishInput{
			compilation: acq.compilation,
			segments:    segs,
			clips:       acq.clips,
			rawPath:     acq.rawPath,
			preexisting: true,
		})
	}

	built, result, done := o.cutAndMerge(ctx, video, segs, acq)
	if done {
		return result
	}
	return o.publish(ctx, video, built)
}

func (o *Orchestrator) notify(ctx context.Context, event notifications.Event, payload notifications.Payload) {
	if err := o.notifier.Publish(ctx, event, payload); err != nil {
		o.logger.Debug("notification failed", logging.Error(err))
	}
}

func (o *Orchestrator) stage(ctx context.Context, name string) (context.Context, *slog.Logger) {
	ctx = services.WithStage(ctx, name)
	log := logging.WithContext(ctx, o.logger)
	log.Debug("stage started")
	return ctx, log
}
