package youtube

import (
	"fmt"
	"regexp"
	"strings"

	"reclip/internal/segments"
	"reclip/internal/timestamps"
)

// titleLimit is the YouTube title length cap.
const titleLimit = 100

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// SourceURL returns the canonical short URL for a video ID.
func SourceURL(videoID string) string {
	return "https://youtu.be/" + videoID
}

// SourceFragment is the description line that marks a published
// compilation as derived from the given source video. Reconciliation
// searches uploads for this exact text.
func SourceFragment(videoID string) string {
	return "Original video: " + SourceURL(videoID)
}

// ExtractVideoID pulls an 11-character video ID out of a youtu.be or
// watch URL, or accepts a bare ID.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.Contains(raw, "youtu.be/"):
		tail := raw[strings.LastIndex(raw, "youtu.be/")+len("youtu.be/"):]
		if len(tail) > 11 {
			tail = tail[:11]
		}
		raw = tail
	case strings.Contains(raw, "watch?v="):
		tail := raw[strings.Index(raw, "watch?v=")+len("watch?v="):]
		if idx := strings.IndexAny(tail, "&#"); idx >= 0 {
			tail = tail[:idx]
		}
		raw = tail
	}
	if !videoIDPattern.MatchString(raw) {
		return "", fmt.Errorf("cannot extract a video id from %q", raw)
	}
	return raw, nil
}

// ComposeTitle prefixes a base title and enforces the length cap,
// truncating with an ellipsis.
func ComposeTitle(prefix, base string) string {
	title := strings.TrimSpace(strings.TrimSpace(prefix) + " " + strings.TrimSpace(base))
	runes := []rune(title)
	if len(runes) > titleLimit {
		title = string(runes[:titleLimit-3]) + "..."
	}
	return title
}

// CompilationDescription builds the published description: the source
// fragment for reconciliation, then one line per included clip range.
func CompilationDescription(sourceID string, segs []segments.Segment) string {
	var builder strings.Builder
	builder.WriteString(SourceFragment(sourceID))
	builder.WriteString("\n\n")
	builder.WriteString("Included clips:\n")
	for _, seg := range segs {
		fmt.Fprintf(&builder, "%s-%s %s\n",
			timestamps.FormatClock(seg.Start),
			timestamps.FormatClock(seg.End),
			seg.Label)
	}
	return strings.TrimRight(builder.String(), "\n")
}

// ReuploadDescription builds the description for a straight republish
// of a single source video.
func ReuploadDescription(sourceID string) string {
	return SourceFragment(sourceID) + "\n\nThis is a re-upload of the original video."
}

// MergeTags combines the configured default tags with a tag derived
// from the lead segment label, deduplicated in order.
func MergeTags(defaults []string, leadLabel string) []string {
	tags := make([]string, 0, len(defaults)+2)
	seen := make(map[string]struct{}, len(defaults)+2)
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	for _, tag := range defaults {
		add(tag)
	}
	if leadLabel != "" {
		compact := strings.ReplaceAll(leadLabel, " ", "")
		add(compact)
		add("ASMR" + compact)
	}
	return tags
}
