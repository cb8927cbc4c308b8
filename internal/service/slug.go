package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// GenerateSlugFromName turns a page name into a URL path segment: accents
// are stripped, letters lowercased, anything outside [a-z0-9 -] dropped and
// whitespace runs become single hyphens. The result contains only [a-z0-9-]
// with no leading, trailing or doubled hyphen, so applying it twice yields
// the same value.
func GenerateSlugFromName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, name)
	if err != nil {
		result = name
	}

	// Letters such as "ł" have no decomposition; transliterate what is left.
	result = unidecode.Unidecode(result)

	result = strings.ToLower(result)
	result = slugDisallowed.ReplaceAllString(result, "")
	result = strings.TrimSpace(result)
	result = slugSpaces.ReplaceAllString(result, "-")
	result = slugHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
