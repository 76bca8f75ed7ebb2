package recipe

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the stable document id from a title: lowercase, every run
// of characters outside [a-z0-9] collapsed to a single hyphen, leading and
// trailing hyphens stripped. Must stay byte-for-byte stable across releases
// since ids double as object keys.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
