// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/promptdeck/pkg/pagination"
)

/*
TestFromRequest_Clamping verifies that malformed or abusive query values
collapse to safe defaults.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults when absent", "", 1, pagination.FeedPageSize},
		{"explicit values pass through", "page=3&limit=20", 3, 20},
		{"zero page clamps to first", "page=0", 1, pagination.FeedPageSize},
		{"negative page clamps to first", "page=-4", 1, pagination.FeedPageSize},
		{"non-numeric page clamps to first", "page=abc", 1, pagination.FeedPageSize},
		{"excessive limit clamps to default", "limit=5000", 1, pagination.FeedPageSize},
		{"zero limit clamps to default", "limit=0", 1, pagination.FeedPageSize},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/prompts?"+test.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, test.wantPage, params.Page)
			assert.Equal(t, test.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the window arithmetic.
*/
func TestParams_Offset(t *testing.T) {
	assert.Zero(t, pagination.Params{Page: 1, Limit: 9}.Offset())
	assert.Equal(t, 9, pagination.Params{Page: 2, Limit: 9}.Offset())
	assert.Equal(t, 27, pagination.Params{Page: 4, Limit: 9}.Offset())
	// Defensive: a zero page never yields a negative offset.
	assert.Zero(t, pagination.Params{Page: 0, Limit: 9}.Offset())
}

/*
TestNewMeta verifies total page derivation, including the empty result set.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 9, 40)
	assert.Equal(t, 5, meta.TotalPages)
	assert.Equal(t, 40, meta.Total)

	assert.Zero(t, pagination.NewMeta(1, 9, 0).TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(1, 9, 9).TotalPages)
}
