package usecase

import (
	"regexp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FallbackBrand is the brand key for names that yield no token
const FallbackBrand = "Digər"

var (
	zeroWidthRegex  = regexp.MustCompile("[\u200B-\u200D\uFEFF]")
	whitespaceRegex = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// collationTag drives every locale-aware ordering of brands and product names
var collationTag = language.Turkish

// CleanText strips zero-width characters, collapses whitespace and trims
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = zeroWidthRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Normalize cleans s and case-folds it for matching
func Normalize(s string) string {
	return strings.ToLower(CleanText(s))
}

// BrandOf derives the brand key of a product name: the text before the
// first slash, its first space-delimited token, upper-cased.
func BrandOf(name string) string {
	n := CleanText(name)
	if n == "" {
		return FallbackBrand
	}

	beforeSlash, _, _ := strings.Cut(n, "/")
	beforeSlash = strings.TrimSpace(beforeSlash)
	if beforeSlash == "" {
		beforeSlash = n
	}

	first, _, _ := strings.Cut(beforeSlash, " ")
	return strings.ToUpper(first)
}

// newCollator returns a collator for name ordering. Collators keep internal
// buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(collationTag)
}
