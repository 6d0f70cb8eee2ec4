// Package timestamps extracts chapter references from comment HTML and
// renders them as transcripts. A reference is a positive second offset
// paired with a short label; references are sorted by offset so later
// stages can rely on chronological order.
package timestamps
