package youtube

import (
	"strings"
	"testing"

	"reclip/internal/segments"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10", "dQw4w9WgXcQ", false},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://example.com/video", "", true},
		{"short", "", true},
	}
	for _, tc := range cases {
		got, err := ExtractVideoID(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ExtractVideoID(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractVideoID(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestComposeTitleCapsLength(t *testing.T) {
	long := strings.Repeat("x", 120)
	title := ComposeTitle("[ASMR Clip]", long)
	if got := len([]rune(title)); got != 100 {
		t.Fatalf("title length = %d, want 100", got)
	}
	if !strings.HasSuffix(title, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", title)
	}

	short := ComposeTitle("[ASMR Clip]", "tapping")
	if short != "[ASMR Clip] tapping" {
		t.Fatalf("short title = %q", short)
	}
}

func TestCompilationDescriptionEmbedsSourceFragment(t *testing.T) {
	desc := CompilationDescription("vid123", []segments.Segment{
		{Start: 70, End: 300, Label: "asmr tapping"},
		{Start: 600, End: 660, Label: "asmr brushing"},
	})
	if !strings.HasPrefix(desc, "Original video: https://youtu.be/vid123\n") {
		t.Fatalf("missing source fragment: %q", desc)
	}
	if !strings.Contains(desc, "1:10-5:00 asmr tapping") {
		t.Fatalf("missing clip line: %q", desc)
	}
	if !strings.Contains(desc, "10:00-11:00 asmr brushing") {
		t.Fatalf("missing second clip line: %q", desc)
	}
}

func TestMergeTagsDeduplicates(t *testing.T) {
	tags := MergeTags([]string{"ASMR", "relaxing", "ASMR"}, "asmr tapping")
	want := []string{"ASMR", "relaxing", "asmrtapping", "ASMRasmrtapping"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}
