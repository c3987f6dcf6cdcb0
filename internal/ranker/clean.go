package ranker

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripPolicy = bluemonday.StrictPolicy()

	reEmail    = regexp.MustCompile(`\S*@\S*\s?`)
	reURL      = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	reNonAlpha = regexp.MustCompile(`[^a-z\s]`)
	reSpace    = regexp.MustCompile(`\s+`)
)

// StripHTML removes markup and decodes entities.
func StripHTML(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// foldAccents maps "résumé" to "resume" so accented text survives the
// letters-only filter in CleanText.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CleanText reduces raw document text to lowercase ASCII words separated by
// single spaces. Markup, email addresses, URLs, digits, and punctuation are dropped.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	s = StripHTML(s)
	s = foldAccents(s)
	s = strings.ToLower(s)
	s = reEmail.ReplaceAllString(s, "")
	s = reURL.ReplaceAllString(s, "")
	s = reNonAlpha.ReplaceAllString(s, " ")
	s = reSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
