package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// SanitizeLabel converts a clip label into a filename token: the label is
// truncated to max runes, then every non-alphanumeric rune becomes an
// underscore. The truncate-then-replace order is load-bearing: clip paths
// derived from the same label must be byte-identical across runs.
func SanitizeLabel(label string, max int) string {
	runes := []rune(label)
	if max > 0 && len(runes) > max {
		runes = runes[:max]
	}
	var b strings.Builder
	b.Grow(len(runes))
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
