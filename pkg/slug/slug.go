// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug converts between canonical category slugs and their
// human-readable display form.
//
// # Usage
//
// Categories are stored and filtered as ASCII slugs (e.g. "code-review")
// but rendered to users in Title Case (e.g. "Code Review"). Both directions
// of that mapping live here so the rest of the codebase never re-implements
// the normalization rule.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a canonical ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces non-alphanumeric characters with hyphens.
// 5. Collapses multiple hyphens and trims leading/trailing hyphens.
//
// "Code Review" and "code   review" both map to "code-review", which is the
// equality domain used by the category filter.
func From(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Replace whitespace and special chars with hyphens
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	// 4. Clean up hyphenation
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// Display converts a canonical slug back to its Title Case display form.
//
// Each hyphen-separated token is capitalized: "code-review" → "Code Review".
// The display form is for presentation only; filtering always happens on the
// slug produced by [From].
func Display(s string) string {
	if s == "" {
		return ""
	}

	tokens := strings.Split(s, "-")
	for i, token := range tokens {
		if token == "" {
			continue
		}
		runes := []rune(token)
		runes[0] = unicode.ToUpper(runes[0])
		tokens[i] = string(runes)
	}

	return strings.Join(tokens, " ")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
