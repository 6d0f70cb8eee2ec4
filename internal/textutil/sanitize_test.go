package textutil_test

import (
	"testing"

	"reclip/internal/textutil"
)

func TestSanitizeLabel(t *testing.T) {
	cases := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"plain", "asmr tapping", 30, "asmr_tapping"},
		{"punctuation", "ear cleaning (left)", 30, "ear_cleaning__left_"},
		{"truncated", "abcdefghij", 5, "abcde"},
		{"truncate before replace", "ab cd", 3, "ab_"},
		{"unicode kept", "耳かき asmr", 30, "耳かき_asmr"},
		{"empty", "", 30, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.SanitizeLabel(tc.input, tc.max); got != tc.want {
				t.Fatalf("SanitizeLabel(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
			}
		})
	}
}

func TestSanitizeLabelDeterministic(t *testing.T) {
	first := textutil.SanitizeLabel("asmr tapping & brushing", 30)
	second := textutil.SanitizeLabel("asmr tapping & brushing", 30)
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := textutil.NormalizeTitle("  ASMR   Tapping Compilation "); got != "asmr tapping compilation" {
		t.Fatalf("NormalizeTitle = %q", got)
	}
	if textutil.NormalizeTitle("Some Title") != textutil.NormalizeTitle("some   title") {
		t.Fatal("expected case and whitespace insensitive equality")
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := textutil.NewFingerprint("asmr tapping compilation part one")
	b := textutil.NewFingerprint("asmr tapping compilation part two")
	c := textutil.NewFingerprint("cooking stream highlights")

	if sim := textutil.CosineSimilarity(a, a); sim < 0.999 {
		t.Fatalf("self similarity = %f, want ~1", sim)
	}
	near := textutil.CosineSimilarity(a, b)
	far := textutil.CosineSimilarity(a, c)
	if near <= far {
		t.Fatalf("expected near (%f) > far (%f)", near, far)
	}
	if sim := textutil.CosineSimilarity(nil, a); sim != 0 {
		t.Fatalf("nil fingerprint similarity = %f, want 0", sim)
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := textutil.NewFingerprint("a b -"); fp != nil {
		t.Fatalf("expected nil fingerprint for short-token input, got %d tokens", fp.TokenCount())
	}
}
