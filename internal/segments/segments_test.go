package segments

import (
	"reflect"
	"testing"

	"reclip/internal/timestamps"
)

func sampleRefs() []timestamps.Reference {
	return []timestamps.Reference{
		{Offset: 10, Label: "intro"},
		{Offset: 70, Label: "asmr tapping"},
		{Offset: 130, Label: "asmr tapping"},
		{Offset: 300, Label: "talk"},
		{Offset: 600, Label: "asmr brushing"},
	}
}

func TestFindMergesConsecutiveMatches(t *testing.T) {
	got := Find(sampleRefs(), []string{"asmr"}, nil)
	want := []Segment{
		{Start: 70, End: 300, Label: "asmr tapping"},
		{Start: 600, End: 660, Label: "asmr brushing"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments = %+v, want %+v", got, want)
	}
}

func TestFindAppliesExcludeKeywords(t *testing.T) {
	got := Find(sampleRefs(), []string{"asmr"}, []string{"tapping"})
	want := []Segment{
		{Start: 600, End: 660, Label: "asmr brushing"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments = %+v, want %+v", got, want)
	}
}

func TestFindPadsFinalReference(t *testing.T) {
	refs := []timestamps.Reference{
		{Offset: 0, Label: "asmr whisper"},
	}
	got := Find(refs, []string{"asmr"}, nil)
	want := []Segment{{Start: 0, End: 60, Label: "asmr whisper"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments = %+v, want %+v", got, want)
	}
}

func TestFindFinalRunTakesLastLabel(t *testing.T) {
	refs := []timestamps.Reference{
		{Offset: 0, Label: "asmr tapping"},
		{Offset: 60, Label: "asmr scratching"},
	}
	got := Find(refs, []string{"asmr"}, nil)
	want := []Segment{{Start: 0, End: 120, Label: "asmr scratching"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments = %+v, want %+v", got, want)
	}
}

func TestFindInteriorRunKeepsFirstLabel(t *testing.T) {
	refs := []timestamps.Reference{
		{Offset: 0, Label: "asmr tapping"},
		{Offset: 60, Label: "asmr scratching"},
		{Offset: 120, Label: "talking"},
		{Offset: 180, Label: "asmr brushing"},
	}
	got := Find(refs, []string{"asmr"}, nil)
	want := []Segment{
		{Start: 0, End: 120, Label: "asmr tapping"},
		{Start: 180, End: 240, Label: "asmr brushing"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments = %+v, want %+v", got, want)
	}
}

func TestFindMatchingIsCaseInsensitive(t *testing.T) {
	refs := []timestamps.Reference{
		{Offset: 0, Label: "ASMR Tapping"},
		{Offset: 60, Label: "outro"},
	}
	got := Find(refs, []string{" Asmr "}, nil)
	want := []Segment{{Start: 0, End: 60, Label: "ASMR Tapping"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments = %+v, want %+v", got, want)
	}
}

func TestFindNoMatches(t *testing.T) {
	if got := Find(sampleRefs(), []string{"cooking"}, nil); got != nil {
		t.Fatalf("expected no segments, got %+v", got)
	}
	if got := Find(nil, []string{"asmr"}, nil); got != nil {
		t.Fatalf("expected no segments for empty refs, got %+v", got)
	}
}

func TestSegmentDuration(t *testing.T) {
	if d := (Segment{Start: 70, End: 300}).Duration(); d != 230 {
		t.Fatalf("Duration = %d, want 230", d)
	}
}
