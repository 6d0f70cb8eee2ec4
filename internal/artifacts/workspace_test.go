package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"reclip/internal/segments"
	"reclip/internal/testsupport"
)

func TestClipPathEncodesSegment(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	seg := segments.Segment{Start: 70, End: 300, Label: "asmr tapping & more!"}

	got := ws.ClipPath("vid123", seg)
	want := filepath.Join(ws.ClipsDir("vid123"), "vid123_01m10s_to_05m00s_asmr_tapping___more_.mp4")
	if got != want {
		t.Fatalf("ClipPath = %q, want %q", got, want)
	}
}

func TestFormatTimecode(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00m00s"},
		{70, "01m10s"},
		{600, "10m00s"},
		{3725, "62m05s"},
	}
	for _, tc := range cases {
		if got := FormatTimecode(tc.seconds); got != tc.want {
			t.Errorf("FormatTimecode(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestProbeFindsExistingArtifacts(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	const videoID = "vid123"
	if err := ws.EnsureVideoDir(videoID); err != nil {
		t.Fatalf("EnsureVideoDir: %v", err)
	}

	testsupport.WriteFileString(t, ws.RawPath(videoID, "webm"), "raw bytes")
	testsupport.WriteFileString(t, ws.CompilationPath(videoID), "compilation bytes")
	clip := ws.ClipPath(videoID, segments.Segment{Start: 10, End: 70, Label: "intro"})
	testsupport.WriteFileString(t, clip, "clip bytes")
	testsupport.WriteFileString(t, filepath.Join(ws.ClipsDir(videoID), "other_file.txt"), "ignored")

	probe, err := ws.Probe(videoID)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if probe.RawPath != ws.RawPath(videoID, "webm") {
		t.Fatalf("RawPath = %q", probe.RawPath)
	}
	if probe.CompilationPath != ws.CompilationPath(videoID) {
		t.Fatalf("CompilationPath = %q", probe.CompilationPath)
	}
	if len(probe.Clips) != 1 || probe.Clips[0] != clip {
		t.Fatalf("Clips = %v", probe.Clips)
	}
}

func TestProbeIgnoresEmptyFiles(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	const videoID = "vid123"
	if err := ws.EnsureVideoDir(videoID); err != nil {
		t.Fatalf("EnsureVideoDir: %v", err)
	}
	testsupport.WriteFileString(t, ws.RawPath(videoID, "mp4"), "")

	probe, err := ws.Probe(videoID)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if probe.RawPath != "" {
		t.Fatalf("expected empty raw to be skipped, got %q", probe.RawPath)
	}
}

func TestProbeMissingDirectory(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	probe, err := ws.Probe("absent")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if probe.RawPath != "" || probe.CompilationPath != "" || len(probe.Clips) != 0 {
		t.Fatalf("expected empty probe, got %+v", probe)
	}
}

func TestRemoveRaw(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	const videoID = "vid123"
	if err := ws.EnsureVideoDir(videoID); err != nil {
		t.Fatalf("EnsureVideoDir: %v", err)
	}
	raw := ws.RawPath(videoID, "mp4")
	testsupport.WriteFileString(t, raw, "raw")

	if err := ws.RemoveRaw(raw); err != nil {
		t.Fatalf("RemoveRaw: %v", err)
	}
	if _, err := os.Stat(raw); !os.IsNotExist(err) {
		t.Fatalf("raw file still present")
	}
	if err := ws.RemoveRaw(raw); err != nil {
		t.Fatalf("RemoveRaw on missing file: %v", err)
	}
	if err := ws.RemoveRaw(""); err != nil {
		t.Fatalf("RemoveRaw on empty path: %v", err)
	}
}
