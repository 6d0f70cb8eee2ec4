package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"reclip/internal/fileutil"
	"reclip/internal/segments"
	"reclip/internal/textutil"
)

// rawExtensions lists download container formats in probe order.
var rawExtensions = []string{"mp4", "mkv", "webm"}

// labelLimit caps how much of a segment label ends up in a clip
// filename.
const labelLimit = 30

// Workspace resolves artifact paths under a single download root.
type Workspace struct {
	root string
}

// NewWorkspace returns a workspace rooted at downloadDir. The
// directory itself is created lazily by EnsureVideoDir.
func NewWorkspace(downloadDir string) *Workspace {
	return &Workspace{root: downloadDir}
}

// Root returns the download root directory.
func (w *Workspace) Root() string {
	return w.root
}

// VideoDir returns the per-video directory.
func (w *Workspace) VideoDir(videoID string) string {
	return filepath.Join(w.root, videoID)
}

// ClipsDir returns the directory holding individual clips for a video.
func (w *Workspace) ClipsDir(videoID string) string {
	return filepath.Join(w.VideoDir(videoID), "parts")
}

// EnsureVideoDir creates the per-video directory tree, including the
// clips subdirectory.
func (w *Workspace) EnsureVideoDir(videoID string) error {
	if err := os.MkdirAll(w.ClipsDir(videoID), 0o755); err != nil {
		return fmt.Errorf("create video directory: %w", err)
	}
	return nil
}

// RawPath returns the download target for a given container extension.
func (w *Workspace) RawPath(videoID, ext string) string {
	return filepath.Join(w.VideoDir(videoID), videoID+"."+ext)
}

// TranscriptPath returns the per-video timestamp listing path.
func (w *Workspace) TranscriptPath(videoID string) string {
	return filepath.Join(w.VideoDir(videoID), "timestamps.txt")
}

// CompilationPath returns the deterministic output path for the
// stitched compilation.
func (w *Workspace) CompilationPath(videoID string) string {
	return filepath.Join(w.VideoDir(videoID), videoID+"_compilation.mp4")
}

// ClipPath returns the output path for one segment's clip. The name
// embeds the video ID, start and end timecodes, and a sanitized slice
// of the label so a directory listing reads chronologically.
func (w *Workspace) ClipPath(videoID string, seg segments.Segment) string {
	name := fmt.Sprintf("%s_%s_to_%s_%s.mp4",
		videoID,
		FormatTimecode(seg.Start),
		FormatTimecode(seg.End),
		textutil.SanitizeLabel(seg.Label, labelLimit),
	)
	return filepath.Join(w.ClipsDir(videoID), name)
}

// FormatTimecode renders seconds as a filename-safe MMmSSs timecode.
func FormatTimecode(seconds int) string {
	return fmt.Sprintf("%02dm%02ds", seconds/60, seconds%60)
}

// Probe summarizes which artifacts already exist for a video.
type Probe struct {
	// RawPath is a non-empty existing download, or "" when absent.
	RawPath string
	// Clips lists existing clip files in the parts directory, sorted
	// by name.
	Clips []string
	// CompilationPath is a non-empty existing compilation, or "".
	CompilationPath string
}

// Probe inspects the per-video directory for earlier outputs. Empty
// files are treated as absent so truncated downloads get redone.
func (w *Workspace) Probe(videoID string) (Probe, error) {
	var probe Probe
	for _, ext := range rawExtensions {
		path := w.RawPath(videoID, ext)
		if fileutil.NonEmptyFile(path) {
			probe.RawPath = path
			break
		}
	}

	if fileutil.NonEmptyFile(w.CompilationPath(videoID)) {
		probe.CompilationPath = w.CompilationPath(videoID)
	}

	entries, err := os.ReadDir(w.ClipsDir(videoID))
	if err != nil {
		if os.IsNotExist(err) {
			return probe, nil
		}
		return Probe{}, fmt.Errorf("read clips directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, videoID) || !strings.HasSuffix(name, ".mp4") {
			continue
		}
		path := filepath.Join(w.ClipsDir(videoID), name)
		if fileutil.NonEmptyFile(path) {
			probe.Clips = append(probe.Clips, path)
		}
	}
	sort.Strings(probe.Clips)
	return probe, nil
}

// RemoveRaw deletes a downloaded source file. Missing files are fine;
// callers keep preexisting downloads by not calling this at all.
func (w *Workspace) RemoveRaw(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove raw download: %w", err)
	}
	return nil
}

// RemoveOutputs deletes the published compilation and the clips that
// fed it. The first failure is returned, but removal continues so a
// stuck file does not strand the rest.
func (w *Workspace) RemoveOutputs(clips []string, compilation string) error {
	var firstErr error
	remove := func(path string) {
		if path == "" {
			return
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("remove output: %w", err)
		}
	}
	for _, clip := range clips {
		remove(clip)
	}
	remove(compilation)
	return firstErr
}
