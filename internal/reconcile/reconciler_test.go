package reconcile

import (
	"context"
	"errors"
	"testing"

	"reclip/internal/services/youtube"
)

type fakeCatalog struct {
	searchResults map[string][]youtube.Video
	videos        map[string]youtube.Video
	searchErr     error
}

func (f *fakeCatalog) SearchMine(ctx context.Context, q string, max int) ([]youtube.Video, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[q], nil
}

func (f *fakeCatalog) FetchVideo(ctx context.Context, videoID string) (youtube.Video, error) {
	video, ok := f.videos[videoID]
	if !ok {
		return youtube.Video{}, errors.New("not found")
	}
	return video, nil
}

func TestConfirmByFragment(t *testing.T) {
	fragment := youtube.SourceFragment("src12345678")
	catalog := &fakeCatalog{
		searchResults: map[string][]youtube.Video{
			fragment: {{ID: "pub11111111", Title: "[ASMR Clip] tapping"}},
		},
		videos: map[string]youtube.Video{
			"pub11111111": {
				ID:          "pub11111111",
				Description: "some intro\n" + fragment + "\nmore text",
			},
		},
	}
	rec := New(catalog, "[ASMR Clip]", nil)

	match, found, err := rec.Confirm(context.Background(), youtube.Video{ID: "src12345678", Title: "tapping stream"})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !found || match.PublishedID != "pub11111111" || match.Method != "fragment" {
		t.Fatalf("match = %+v found = %v", match, found)
	}
}

func TestConfirmRejectsTruncatedFragmentHit(t *testing.T) {
	fragment := youtube.SourceFragment("src12345678")
	catalog := &fakeCatalog{
		searchResults: map[string][]youtube.Video{
			fragment: {{ID: "pub11111111"}},
		},
		videos: map[string]youtube.Video{
			// Search matched, but the full description lacks the fragment.
			"pub11111111": {ID: "pub11111111", Description: "unrelated upload"},
		},
	}
	rec := New(catalog, "[ASMR Clip]", nil)

	_, found, err := rec.Confirm(context.Background(), youtube.Video{ID: "src12345678"})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if found {
		t.Fatal("expected no confirmation from a stale search hit")
	}
}

func TestConfirmByNormalizedTitle(t *testing.T) {
	expected := youtube.ComposeTitle("[ASMR Clip]", "Tapping Stream")
	catalog := &fakeCatalog{
		searchResults: map[string][]youtube.Video{
			expected: {{ID: "pub22222222", Title: "[asmr clip]  TAPPING   stream"}},
		},
	}
	rec := New(catalog, "[ASMR Clip]", nil)

	match, found, err := rec.Confirm(context.Background(), youtube.Video{ID: "src12345678", Title: "Tapping Stream"})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !found || match.Method != "title" || match.PublishedID != "pub22222222" {
		t.Fatalf("match = %+v found = %v", match, found)
	}
}

func TestConfirmNearTitleIsNotPublished(t *testing.T) {
	expected := youtube.ComposeTitle("[ASMR Clip]", "Tapping Stream Part One")
	catalog := &fakeCatalog{
		searchResults: map[string][]youtube.Video{
			expected: {{ID: "pub33333333", Title: "[ASMR Clip] Tapping Stream Part Two"}},
		},
	}
	rec := New(catalog, "[ASMR Clip]", nil)

	_, found, err := rec.Confirm(context.Background(), youtube.Video{ID: "src12345678", Title: "Tapping Stream Part One"})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if found {
		t.Fatal("near match must not count as published")
	}
}

func TestConfirmSurfacesSearchFailure(t *testing.T) {
	catalog := &fakeCatalog{searchErr: errors.New("api down")}
	rec := New(catalog, "[ASMR Clip]", nil)

	_, _, err := rec.Confirm(context.Background(), youtube.Video{ID: "src12345678"})
	if err == nil {
		t.Fatal("expected search failure to propagate")
	}
}
