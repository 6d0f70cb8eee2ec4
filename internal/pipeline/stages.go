package pipeline

import (
	"context"

	"reclip/internal/fileutil"
	"reclip/internal/ledger"
	"reclip/internal/logging"
	"reclip/internal/segments"
	"reclip/internal/services"
	"reclip/internal/services/youtube"
	"reclip/internal/timestamps"
)

// checkRemote consults the remote channel before any local work. A
// confirmed prior publication back-fills the ledger so the next pass
// short-circuits on the cheaper tier. Remote check failures are logged
// and ignored: the ledger and filesystem tiers still protect against
// duplicates, and blocking the whole item on a search hiccup is worse.
func (o *Orchestrator) checkRemote(ctx context.Context, video youtube.Video) (Result, bool) {
	if o.reconciler == nil {
		return Result{}, false
	}
	ctx, log := o.stage(ctx, "CHECK_REMOTE")

	match, found, err := o.reconciler.Confirm(ctx, video)
	if err != nil {
		log.Warn("remote check failed, continuing", logging.Error(err))
		return Result{}, false
	}
	if !found {
		return Result{}, false
	}
	if err := o.store.RecordStarted(ctx, video.ID, video.Title, ""); err != nil {
		log.Warn("ledger back-fill insert failed", logging.Error(err))
	} else if err := o.store.MarkPublished(ctx, video.ID); err != nil {
		log.Warn("ledger back-fill publish failed", logging.Error(err))
	}
	return Result{
		Outcome:     OutcomeSkipped,
		PublishedID: match.PublishedID,
		Reason:      "already published remotely (" + match.Method + ")",
	}, true
}

// checkLedger short-circuits items the ledger already resolved. A
// pending row whose compilation file still exists resumes directly at
// publish.
func (o *Orchestrator) checkLedger(ctx context.Context, video youtube.Video) (Result, bool) {
	ctx, log := o.stage(ctx, "CHECK_LEDGER")

	entry, err := o.store.Get(ctx, video.ID)
	if err != nil {
		return Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrTransient, "check_ledger", "get", "", err),
		}, true
	}
	if entry == nil {
		return Result{}, false
	}
	if entry.Status == ledger.StatusUploaded {
		return Result{Outcome: OutcomeSkipped, Reason: "already published (ledger)"}, true
	}
	if entry.CompilationPath != "" && fileutil.NonEmptyFile(entry.CompilationPath) {
		log.Info("resuming pending item at publish",
			logging.String("compilation", entry.CompilationPath))
		result := o.publish(ctx, video, publishInput{
			compilation: entry.CompilationPath,
			preexisting: true,
		})
		return result, true
	}
	// Pending without a surviving compilation starts over.
	return Result{}, false
}

// fetchReferences pulls trusted comments and extracts timestamp
// references, writing the transcript audit file alongside the other
// artifacts.
func (o *Orchestrator) fetchReferences(ctx context.Context, video youtube.Video) ([]timestamps.Reference, Result, bool) {
	ctx, log := o.stage(ctx, "FETCH_REFERENCES")

	var comments []timestamps.Comment
	err := services.Retry(ctx, o.retry, func() error {
		var fetchErr error
		comments, fetchErr = o.catalog.FetchComments(ctx, video.ID, o.cfg.Source.AllowedCommenters)
		return fetchErr
	})
	if err != nil {
		return nil, Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrAcquisition, "fetch_references", "comments", "", err),
		}, true
	}

	refs := timestamps.Extract(comments)
	if len(refs) == 0 {
		return nil, Result{Outcome: OutcomeSkipped, Reason: "no timestamp references"}, true
	}
	log.Info("references extracted",
		logging.Int("comments", len(comments)),
		logging.Int("references", len(refs)))

	if err := o.workspace.EnsureVideoDir(video.ID); err != nil {
		return nil, Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrTransient, "fetch_references", "workspace", "", err),
		}, true
	}
	if err := timestamps.WriteTranscript(o.workspace.TranscriptPath(video.ID), video.ID, refs); err != nil {
		log.Warn("transcript write failed", logging.Error(err))
	}
	return refs, Result{}, false
}

// buildSegments selects keyword-matching runs of references.
func (o *Orchestrator) buildSegments(ctx context.Context, video youtube.Video, refs []timestamps.Reference) ([]segments.Segment, Result, bool) {
	_, log := o.stage(ctx, "BUILD_SEGMENTS")

	segs := segments.Find(refs, o.cfg.Source.IncludeKeywords, o.cfg.Source.ExcludeKeywords)
	if len(segs) == 0 {
		return nil, Result{Outcome: OutcomeSkipped, Reason: "no qualifying segments"}, true
	}
	log.Info("segments selected", logging.Int("segments", len(segs)))
	return segs, Result{}, false
}

// acquisition carries what the acquire stage learned about local and
// downloaded media.
type acquisition struct {
	rawPath     string
	preexisting bool
	clips       []string
	compilation string
}

// acquireMedia probes for earlier outputs and downloads the source
// when no usable raw file exists. An existing compilation short-cuts
// the whole build.
func (o *Orchestrator) acquireMedia(ctx context.Context, video youtube.Video) (acquisition, Result, bool) {
	ctx, log := o.stage(ctx, "ACQUIRE_MEDIA")

	probe, err := o.workspace.Probe(video.ID)
	if err != nil {
		return acquisition{}, Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrTransient, "acquire_media", "probe", "", err),
		}, true
	}
	acq := acquisition{
		rawPath:     probe.RawPath,
		preexisting: probe.RawPath != "",
		clips:       probe.Clips,
		compilation: probe.CompilationPath,
	}
	if acq.compilation != "" {
		log.Info("existing compilation found", logging.String("path", acq.compilation))
		return acq, Result{}, false
	}
	if acq.preexisting {
		log.Info("existing download found", logging.String("path", acq.rawPath))
		return acq, Result{}, false
	}

	err = services.Retry(ctx, o.retry, func() error {
		path, downloadErr := o.downloader.Download(ctx, video.ID, o.workspace.VideoDir(video.ID), func(line string) {
			log.Debug("download progress", logging.String("line", line))
		})
		if downloadErr != nil {
			return downloadErr
		}
		acq.rawPath = path
		return nil
	})
	if err != nil {
		return acquisition{}, Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrAcquisition, "acquire_media", "download", "", err),
		}, true
	}
	log.Info("download complete", logging.String("path", acq.rawPath))
	return acq, Result{}, false
}

// cutAndMerge produces one clip per segment, reusing survivors from
// earlier runs, then stitches them into the compilation and records
// the pending ledger row. A single failed cut drops that segment only.
func (o *Orchestrator) cutAndMerge(ctx context.Context, video youtube.Video, segs []segments.Segment, acq acquisition) (publishInput, Result, bool) {
	ctx, log := o.stage(ctx, "CUT_AND_MERGE")

	duration, err := o.transformer.Duration(ctx, acq.rawPath)
	if err != nil {
		return publishInput{}, Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrExternalTool, "cut_and_merge", "probe duration", "", err),
		}, true
	}

	var clips []string
	for _, seg := range segs {
		if seg.Start >= duration {
			log.Warn("segment starts beyond end of video",
				logging.Int("start", seg.Start),
				logging.Int("duration", duration))
			continue
		}
		end := seg.End
		if end > duration {
			end = duration
		}
		clipPath := o.workspace.ClipPath(video.ID, seg)
		if fileutil.NonEmptyFile(clipPath) {
			log.Debug("reusing existing clip", logging.String("path", clipPath))
			clips = append(clips, clipPath)
			continue
		}
		if err := o.transformer.Cut(ctx, acq.rawPath, clipPath, seg.Start, end); err != nil {
			log.Warn("clip failed, dropping segment",
				logging.Int("start", seg.Start),
				logging.Int("end", end),
				logging.Error(err))
			continue
		}
		clips = append(clips, clipPath)
	}
	if len(clips) == 0 {
		return publishInput{}, Result{Outcome: OutcomeSkipped, Reason: "no clips produced"}, true
	}

	compilation := o.workspace.CompilationPath(video.ID)
	if err := o.transformer.Concat(ctx, clips, compilation); err != nil {
		return publishInput{}, Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrExternalTool, "cut_and_merge", "concat", "", err),
		}, true
	}
	log.Info("compilation built",
		logging.Int("clips", len(clips)),
		logging.String("path", compilation))

	// The pending row lands only after the compilation exists, so a
	// crash between the two leaves the filesystem tier authoritative.
	if err := o.store.RecordStarted(ctx, video.ID, video.Title, compilation); err != nil {
		return publishInput{}, Result{
			Outcome: OutcomeFailed,
			Err:     services.Wrap(services.ErrTransient, "cut_and_merge", "record", "", err),
		}, true
	}
	if err := o.store.SetCompilationPath(ctx, video.ID, compilation); err != nil {
		log.Warn("compilation path update failed", logging.Error(err))
	}

	return publishInput{
		compilation: compilation,
		segments:    segs,
		clips:       clips,
		rawPath:     acq.rawPath,
		preexisting: acq.preexisting,
	}, Result{}, false
}
