// Package textnorm normalizes user-facing names: URL slugs and title-cased
// display forms. Both functions are idempotent.
package textnorm

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// Slugify derives a lowercase, dash-separated, URL-safe form of name.
// Slugify(Slugify(x)) == Slugify(x).
func Slugify(name string) string {
	return goslug.Make(name)
}

// ProperNoun lowercases name and capitalizes the first letter of each word,
// giving the canonical display form stored in the database.
func ProperNoun(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(lowered))
	capitalize := true
	for _, r := range lowered {
		if capitalize && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
		} else {
			b.WriteRune(r)
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalize = true
		}
	}
	return b.String()
}

// CollapseSpaces trims and folds runs of whitespace into single spaces.
// Word forms arrive from many alphabets and input methods, so whitespace is
// normalized before any length or character checks.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
