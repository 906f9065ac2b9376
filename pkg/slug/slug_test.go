// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/promptdeck/pkg/slug"
)

/*
TestFrom verifies slug canonicalization across casing, whitespace, accents,
and punctuation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Code Review", "code-review"},
		{"code   review", "code-review"},
		{"Créative Writing!", "creative-writing"},
		{"  programming  ", "programming"},
		{"data_analysis", "data-analysis"},
		{"", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, slug.From(test.input), "input: %q", test.input)
	}
}

/*
TestDisplay verifies the slug-to-display mapping used for category labels.
*/
func TestDisplay(t *testing.T) {
	assert.Equal(t, "Code Review", slug.Display("code-review"))
	assert.Equal(t, "Programming", slug.Display("programming"))
	assert.Empty(t, slug.Display(""))
}

/*
TestRoundTrip verifies that display names re-normalize to the same slug,
which is what keeps category filtering stable however the value arrives.
*/
func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"code-review", "creative-writing", "productivity"} {
		assert.Equal(t, s, slug.From(slug.Display(s)))
	}
}
