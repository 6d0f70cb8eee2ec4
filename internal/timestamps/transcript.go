package timestamps

import (
	"fmt"
	"os"
	"strings"
)

// FormatClock renders a second offset as M:SS, switching to H:MM:SS at
// or above one hour.
func FormatClock(offset int) string {
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	seconds := offset % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// WriteTranscript writes a human-readable listing of every reference
// for the given video, one "clock: label" line per reference.
func WriteTranscript(path, videoID string, refs []Reference) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Timestamps for video %s\n", videoID)
	builder.WriteString(strings.Repeat("-", 50))
	builder.WriteString("\n\n")
	for _, ref := range refs {
		fmt.Fprintf(&builder, "%s: %s\n", FormatClock(ref.Offset), ref.Label)
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
