package timestamps

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Comment is a single raw comment body with its author display name.
type Comment struct {
	Author string
	Text   string
}

// Reference is a timestamp anchor found inside a comment.
type Reference struct {
	// Offset is the position in the source video, in whole seconds.
	Offset int
	// Label describes the section starting at Offset. Never empty:
	// anchors with no trailing text fall back to the clock string.
	Label string
}

// Extract parses timestamp anchors out of the given comment bodies and
// returns the references sorted by offset. Comments that contain no
// parseable anchors contribute nothing; malformed HTML is skipped
// rather than failing the item.
func Extract(comments []Comment) []Reference {
	var refs []Reference
	for _, comment := range comments {
		refs = append(refs, parseComment(comment.Text)...)
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Offset < refs[j].Offset
	})
	return refs
}

// parseComment walks every anchor in one comment body. Timestamp
// anchors carry the offset in their href "t" parameter; the anchor
// text is the clock string and the text immediately following the
// anchor, up to the next tag, is the label.
func parseComment(body string) []Reference {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var refs []Reference
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		offset, ok := offsetFromHref(href)
		if !ok {
			return
		}
		label := trailingText(sel)
		if label == "" {
			label = strings.TrimSpace(sel.Text())
		}
		if label == "" {
			return
		}
		refs = append(refs, Reference{Offset: offset, Label: label})
	})
	return refs
}

// offsetFromHref pulls the "t" query parameter out of a watch link.
// Values are whole seconds, optionally with a trailing "s" suffix.
func offsetFromHref(href string) (int, bool) {
	parsed, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	raw := parsed.Query().Get("t")
	if raw == "" {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "s")
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, false
	}
	return offset, true
}

// trailingText returns the trimmed text node immediately following the
// anchor, stopping at the next element. A whitespace-only run counts
// as no label.
func trailingText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	next := sel.Nodes[0].NextSibling
	if next == nil || next.Type != html.TextNode {
		return ""
	}
	return strings.TrimSpace(next.Data)
}
