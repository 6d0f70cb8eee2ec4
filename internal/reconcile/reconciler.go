package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reclip/internal/logging"
	"reclip/internal/services/youtube"
	"reclip/internal/textutil"
)

// searchLimit bounds how many own-channel candidates each heuristic
// inspects.
const searchLimit = 10

// similarityFloor is the cosine similarity above which a non-matching
// title is worth surfacing in the log.
const similarityFloor = 0.6

// Catalog is the slice of the API client the reconciler needs.
type Catalog interface {
	SearchMine(ctx context.Context, q string, max int) ([]youtube.Video, error)
	FetchVideo(ctx context.Context, videoID string) (youtube.Video, error)
}

// Match describes a confirmed prior publication.
type Match struct {
	// PublishedID is the already-published video.
	PublishedID string
	// Method names the heuristic that confirmed it: "fragment" or
	// "title".
	Method string
}

// Reconciler checks the remote channel for prior publications.
type Reconciler struct {
	catalog Catalog
	prefix  string
	logger  *slog.Logger
}

// New builds a reconciler. titlePrefix is the configured publish
// prefix, used to predict what a prior upload would have been named.
func New(catalog Catalog, titlePrefix string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconciler{
		catalog: catalog,
		prefix:  titlePrefix,
		logger:  logger.With(logging.String(logging.FieldComponent, "reconcile")),
	}
}

// Confirm reports whether a compilation derived from source already
// exists on the channel.
func (r *Reconciler) Confirm(ctx context.Context, source youtube.Video) (Match, bool, error) {
	match, found, err := r.byFragment(ctx, source.ID)
	if err != nil {
		return Match{}, false, err
	}
	if found {
		return match, true, nil
	}
	return r.byTitle(ctx, source)
}

// byFragment searches uploads for the source-URL line every published
// description carries. Search snippets truncate descriptions, so each
// candidate's full description is fetched before trusting the hit.
func (r *Reconciler) byFragment(ctx context.Context, sourceID string) (Match, bool, error) {
	fragment := youtube.SourceFragment(sourceID)
	candidates, err := r.catalog.SearchMine(ctx, fragment, searchLimit)
	if err != nil {
		return Match{}, false, fmt.Errorf("search by fragment: %w", err)
	}
	for _, candidate := range candidates {
		full, err := r.catalog.FetchVideo(ctx, candidate.ID)
		if err != nil {
			return Match{}, false, fmt.Errorf("verify candidate %s: %w", candidate.ID, err)
		}
		if strings.Contains(full.Description, fragment) {
			r.logger.Info("prior publication confirmed",
				logging.String("source_id", sourceID),
				logging.String("published_id", candidate.ID),
				logging.String("method", "fragment"))
			return Match{PublishedID: candidate.ID, Method: "fragment"}, true, nil
		}
	}
	return Match{}, false, nil
}

// byTitle compares normalized candidate titles against the title a
// republish of this source would carry.
func (r *Reconciler) byTitle(ctx context.Context, source youtube.Video) (Match, bool, error) {
	if strings.TrimSpace(source.Title) == "" {
		return Match{}, false, nil
	}
	expected := youtube.ComposeTitle(r.prefix, source.Title)
	expectedNorm := textutil.NormalizeTitle(expected)
	expectedPrint := textutil.NewFingerprint(expected)

	candidates, err := r.catalog.SearchMine(ctx, expected, searchLimit)
	if err != nil {
		return Match{}, false, fmt.Errorf("search by title: %w", err)
	}
	for _, candidate := range candidates {
		if textutil.NormalizeTitle(candidate.Title) == expectedNorm {
			r.logger.Info("prior publication confirmed",
				logging.String("source_id", source.ID),
				logging.String("published_id", candidate.ID),
				logging.String("method", "title"))
			return Match{PublishedID: candidate.ID, Method: "title"}, true, nil
		}
		similarity := textutil.CosineSimilarity(expectedPrint, textutil.NewFingerprint(candidate.Title))
		if similarity >= similarityFloor {
			r.logger.Warn("near-match treated as unpublished",
				logging.String("source_id", source.ID),
				logging.String("candidate_id", candidate.ID),
				logging.String("candidate_title", candidate.Title),
				logging.Float64("similarity", similarity))
		}
	}
	return Match{}, false, nil
}
