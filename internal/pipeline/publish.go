package pipeline

import (
	"context"

	"reclip/internal/logging"
	"reclip/internal/segments"
	"reclip/internal/services"
	"reclip/internal/services/youtube"
)

// publishInput is everything the publish stage needs about the built
// compilation. segments may be empty when resuming from a ledger row;
// the metadata then falls back to the source title.
type publishInput struct {
	compilation string
	segments    []segments.Segment
	clips       []string
	rawPath     string
	// preexisting marks a raw download that predates this run; it is
	// preserved during cleanup.
	preexisting bool
}

// publish uploads the compilation, records it in the ledger, and
// cleans up artifacts. Failures leave the pending ledger row and every
// artifact in place for the next pass.
func (o *Orchestrator) publish(ctx context.Context, video youtube.Video, input publishInput) Result {
	ctx, log := o.stage(ctx, "PUBLISH")

	if o.gate != nil {
		if !o.gate.TryLock() {
			return Result{
				Outcome: OutcomeFailed,
				Err:     services.Wrap(services.ErrPublish, "publish", "lock", "another publish is in flight", nil),
			}
		}
		defer o.gate.Unlock()
	}

	meta := o.uploadMetadata(video, input.segments)
	var publishedID string
	err := services.Retry(ctx, o.retry, func() error {
		var publishErr error
		publishedID, publishErr = o.catalog.Publish(ctx, input.compilation, meta)
		return publishErr
	})
	if err != nil {
		return Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrPublish, "publish", "upload", "", err),
		}
	}

	// A ledger miss here is recoverable: the remote tier confirms the
	// publication on the next pass and back-fills the row.
	if err := o.store.MarkPublished(ctx, video.ID); err != nil {
		log.Error("ledger publish record failed", logging.Error(err))
	}

	if playlistID := o.cfg.Publish.PlaylistID; playlistID != "" {
		if err := o.catalog.AddToPlaylist(ctx, playlistID, publishedID); err != nil {
			log.Warn("playlist add failed", logging.Error(err))
		}
	}

	o.cleanup(ctx, input)

	return Result{
		Outcome:        OutcomePublished,
		PublishedID:    publishedID,
		PublishedTitle: meta.Title,
	}
}

func (o *Orchestrator) uploadMetadata(video youtube.Video, segs []segments.Segment) youtube.UploadMetadata {
	base := video.Title
	leadLabel := ""
	if len(segs) > 0 {
		base = segs[0].Label
		leadLabel = segs[0].Label
	}
	description := youtube.SourceFragment(video.ID)
	if len(segs) > 0 {
		description = youtube.CompilationDescription(video.ID, segs)
	}
	return youtube.UploadMetadata{
		Title:       youtube.ComposeTitle(o.cfg.Publish.TitlePrefix, base),
		Description: description,
		Privacy:     o.cfg.Publish.Privacy,
		Tags:        youtube.MergeTags(o.cfg.Publish.Tags, leadLabel),
	}
}

// cleanup removes the published outputs and, when this run downloaded
// it, the raw source file. Failures are logged; leftover files only
// cost disk.
func (o *Orchestrator) cleanup(ctx context.Context, input publishInput) {
	_, log := o.stage(ctx, "CLEANUP")

	if err := o.workspace.RemoveOutputs(input.clips, input.compilation); err != nil {
		log.Warn("output cleanup failed", logging.Error(err))
	}
	if !input.preexisting {
		if err := o.workspace.RemoveRaw(input.rawPath); err != nil {
			log.Warn("raw cleanup failed", logging.Error(err))
		}
	}
}
