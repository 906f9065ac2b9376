// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package refine_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/refine"
)

func newTestClient(t *testing.T, baseURL string) *refine.Client {
	t.Helper()
	return refine.NewClient(baseURL, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestImprove_FlattensUpstreamResponse verifies the preference order for the
improved content and the suggestion extraction.
*/
func TestImprove_FlattensUpstreamResponse(t *testing.T) {
	tests := []struct {
		name         string
		upstream     map[string]any
		wantImproved string
		wantHints    []string
	}{
		{
			name: "best variant wins",
			upstream: map[string]any{
				"best":     map[string]any{"content": "the best rewrite"},
				"variants": map[string]any{"detailed": "the detailed rewrite"},
				"analysis": map[string]any{"suggestions": []string{"be specific"}},
			},
			wantImproved: "the best rewrite",
			wantHints:    []string{"be specific"},
		},
		{
			name: "detailed variant as fallback",
			upstream: map[string]any{
				"variants": map[string]any{"detailed": "the detailed rewrite"},
			},
			wantImproved: "the detailed rewrite",
			wantHints:    []string{},
		},
		{
			name:         "original prompt when upstream is empty",
			upstream:     map[string]any{},
			wantImproved: "original prompt",
			wantHints:    []string{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				// The proxy forwards exactly {prompt, task_type}.
				var payload map[string]string
				require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
				assert.Equal(t, "original prompt", payload["prompt"])
				assert.Equal(t, refine.TaskCode, payload["task_type"])

				writer.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(writer).Encode(test.upstream)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			result, err := client.Improve(context.Background(), "original prompt", refine.TaskCode)

			require.NoError(t, err)
			assert.Equal(t, test.wantImproved, result.ImprovedContent)
			assert.Equal(t, test.wantHints, result.Suggestions)
			assert.Equal(t, refine.TaskCode, result.TaskType)
		})
	}
}

/*
TestImprove_UpstreamFailures verifies that every failure mode surfaces as a
service-unavailable error with no mock fallback.
*/
func TestImprove_UpstreamFailures(t *testing.T) {
	// 1. Unconfigured client
	client := newTestClient(t, "")
	_, err := client.Improve(context.Background(), "prompt", refine.TaskGeneral)
	requireServiceUnavailable(t, err)

	// 2. Upstream rejects the request
	rejecting := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer rejecting.Close()

	_, err = newTestClient(t, rejecting.URL).Improve(context.Background(), "prompt", refine.TaskGeneral)
	requireServiceUnavailable(t, err)

	// 3. Upstream returns garbage
	garbled := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("not json"))
	}))
	defer garbled.Close()

	_, err = newTestClient(t, garbled.URL).Improve(context.Background(), "prompt", refine.TaskGeneral)
	requireServiceUnavailable(t, err)

	// 4. Upstream unreachable
	unreachable := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	unreachable.Close()

	_, err = newTestClient(t, unreachable.URL).Improve(context.Background(), "prompt", refine.TaskGeneral)
	requireServiceUnavailable(t, err)
}

func requireServiceUnavailable(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "SERVICE_UNAVAILABLE", appError.Code)
}
