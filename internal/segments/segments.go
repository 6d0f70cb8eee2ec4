package segments

import (
	"strings"

	"reclip/internal/timestamps"
)

// finalPadSeconds extends a segment whose run reaches the last
// reference in the listing, since no later reference marks its end.
const finalPadSeconds = 60

// Segment is a half-open [Start, End) span of the source video, in
// whole seconds, with the label carried over from the references that
// produced it.
type Segment struct {
	Start int
	End   int
	Label string
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() int {
	return s.End - s.Start
}

// Find returns the continuous segments whose reference labels match at
// least one include keyword and none of the exclude keywords. Matching
// is case-insensitive substring containment. References must already be
// sorted by offset. A run's label is its first reference's label,
// except the final run, which takes its last reference's label.
func Find(refs []timestamps.Reference, include, exclude []string) []Segment {
	include = cleanKeywords(include)
	exclude = cleanKeywords(exclude)

	var matched []int
	for i, ref := range refs {
		lower := strings.ToLower(ref.Label)
		if !containsAny(lower, include) {
			continue
		}
		if containsAny(lower, exclude) {
			continue
		}
		matched = append(matched, i)
	}
	if len(matched) == 0 {
		return nil
	}

	var found []Segment
	start := refs[matched[0]].Offset
	label := refs[matched[0]].Label
	for i := 0; i < len(matched)-1; i++ {
		current := matched[i]
		next := matched[i+1]
		if next-current > 1 {
			found = append(found, Segment{
				Start: start,
				End:   refs[current+1].Offset,
				Label: label,
			})
			start = refs[next].Offset
			label = refs[next].Label
		}
	}

	last := matched[len(matched)-1]
	end := refs[last].Offset + finalPadSeconds
	if last < len(refs)-1 {
		end = refs[last+1].Offset
	}
	found = append(found, Segment{
		Start: start,
		End:   end,
		Label: refs[last].Label,
	})
	return found
}

func cleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			cleaned = append(cleaned, keyword)
		}
	}
	return cleaned
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
