package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers classifying pipeline failures. Wrap tags errors with one
// of these so the orchestrator can map a failure to an item outcome without
// string matching.
var (
	// ErrParseSkip marks a single malformed comment reference; the
	// reference is dropped and extraction continues.
	ErrParseSkip = errors.New("reference parse skip")
	// ErrNoContent marks an item with zero references or zero qualifying
	// segments. The item is skipped; this is not a batch error.
	ErrNoContent = errors.New("no qualifying content")
	// ErrAcquisition marks a failed download, transform, or catalog call
	// after retries. The item is retried on the next scheduling pass.
	ErrAcquisition = errors.New("acquisition failure")
	// ErrPublish marks a failed remote publish. The ledger row stays
	// pending and built artifacts are preserved for the next pass.
	ErrPublish = errors.New("publish failure")
	// ErrAmbiguous marks a similar-but-not-exact remote title match.
	// Reconciliation treats the item as not yet published.
	ErrAmbiguous = errors.New("ambiguous remote match")
	// ErrConfiguration marks invalid or missing settings; fatal at startup.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks a subprocess (yt-dlp, ffmpeg) failure.
	ErrExternalTool = errors.New("external tool error")
	// ErrTransient marks an unclassified retryable failure.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later outcome classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsSkip reports whether an error represents a non-fatal skip condition
// rather than a failure the scheduler should retry.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoContent) || errors.Is(err, ErrParseSkip)
}

// IsRetryable reports whether an error should be retried on the next
// scheduling pass.
func IsRetryable(err error) bool {
	switch {
	case errors.Is(err, ErrAcquisition), errors.Is(err, ErrPublish),
		errors.Is(err, ErrExternalTool), errors.Is(err, ErrTransient):
		return true
	default:
		return false
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
