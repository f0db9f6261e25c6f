package portfolio

import (
	"regexp"
	"strings"

	"github.com/lithammer/shortuuid/v4"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumerics into a dash.
func Slugify(s string) string {
	s = nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

func slugSuffix() string {
	return strings.ToLower(shortuuid.New()[:6])
}
