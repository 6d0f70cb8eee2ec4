package ledger

import (
	"strings"
	"time"
)

// Status represents the publication lifecycle of a source video.
type Status string

const (
	// StatusUnseen means the ledger has no row for the video.
	StatusUnseen Status = "unseen"
	// StatusPending means processing started but the compilation has not
	// been confirmed published.
	StatusPending Status = "pending"
	// StatusUploaded means the compilation was published and confirmed.
	StatusUploaded Status = "uploaded"
)

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, true
	case StatusUploaded:
		return StatusUploaded, true
	case StatusUnseen:
		return StatusUnseen, true
	default:
		return "", false
	}
}

// Entry is one ledger row keyed by source video ID.
type Entry struct {
	VideoID         string
	Title           string
	CompilationPath string
	ProcessedAt     time.Time
	PublishedAt     *time.Time
	Status          Status
}

// IsPublished reports whether the entry records a confirmed publish.
func (e *Entry) IsPublished() bool {
	return e != nil && e.Status == StatusUploaded
}
