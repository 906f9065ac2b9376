// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package refine provides the outbound client for the prompt-improvement API.

The refine API is an external service that analyzes a prompt, generates
rewritten variants, and scores them. This package proxies the exchange and
flattens the upstream response into a stable shape for the SPA.

# Failure Policy

The upstream service is optional infrastructure. When it is unreachable,
misconfigured, or returns a non-2xx status, the client surfaces
apperr.ServiceUnavailable so the API reports an honest 503. There is no
server-side mock fallback; degrading gracefully is the caller's decision.
*/
package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
)

// # Types

// TaskType classifies the prompt being refined so the upstream model can
// pick an appropriate rewriting strategy.
const (
	TaskGeneral  = "general"
	TaskCode     = "code"
	TaskCreative = "creative"
)

// TaskTypes lists every accepted task type value.
var TaskTypes = []string{TaskGeneral, TaskCode, TaskCreative}

// Result is the flattened refinement outcome returned to the SPA.
type Result struct {
	ImprovedContent string   `json:"improved_content"`
	Suggestions     []string `json:"suggestions"`
	TaskType        string   `json:"task_type"`
}

// upstreamResponse mirrors the refine API's wire shape. Only the fields the
// flattening logic needs are decoded; the rest of the payload is ignored.
type upstreamResponse struct {
	Best *struct {
		Content string `json:"content"`
	} `json:"best"`
	Variants *struct {
		Detailed string `json:"detailed"`
	} `json:"variants"`
	Analysis *struct {
		Suggestions []string `json:"suggestions"`
	} `json:"analysis"`
}

// upstreamRequest is the outbound payload.
type upstreamRequest struct {
	Prompt   string `json:"prompt"`
	TaskType string `json:"task_type"`
}

// # Client

// requestTimeout bounds a single refinement round-trip. Generation-backed
// endpoints are slow, so this is deliberately longer than normal API calls.
const requestTimeout = 25 * time.Second

// Client calls the external refine API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a refine [Client]. An empty baseURL is allowed and
// produces a client whose calls always report the service as unavailable.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

/*
Improve submits a prompt to the refine API and flattens the response.

Description: Sends {prompt, task_type} to the configured endpoint. The
improved content resolves in preference order: the scored best variant, the
detailed variant, then the original prompt unchanged.

Parameters:
  - context: context.Context
  - prompt: string (Original prompt content)
  - taskType: string (One of TaskTypes)

Returns:
  - *Result: Flattened refinement outcome
  - error: apperr.ServiceUnavailable on any upstream failure
*/
func (client *Client) Improve(context context.Context, prompt, taskType string) (*Result, error) {
	if client.baseURL == "" {
		return nil, apperr.ServiceUnavailable("Prompt refinement is not configured")
	}

	payload, err := json.Marshal(upstreamRequest{Prompt: prompt, TaskType: taskType})
	if err != nil {
		return nil, fmt.Errorf("refine: failed to encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, client.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("refine: failed to build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("refine_upstream_unreachable", slog.String("error", err.Error()))
		return nil, apperr.ServiceUnavailable("Prompt refinement is temporarily unavailable")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		client.logger.Warn("refine_upstream_rejected", slog.Int("status", response.StatusCode))
		return nil, apperr.ServiceUnavailable("Prompt refinement is temporarily unavailable")
	}

	var decoded upstreamResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		client.logger.Warn("refine_upstream_malformed", slog.String("error", err.Error()))
		return nil, apperr.ServiceUnavailable("Prompt refinement returned a malformed response")
	}

	return flatten(prompt, taskType, decoded), nil
}

// flatten resolves the improved content and suggestions from the upstream
// shape, falling back to the original prompt when no variant is present.
func flatten(prompt, taskType string, decoded upstreamResponse) *Result {
	improved := prompt
	if decoded.Best != nil && decoded.Best.Content != "" {
		improved = decoded.Best.Content
	} else if decoded.Variants != nil && decoded.Variants.Detailed != "" {
		improved = decoded.Variants.Detailed
	}

	suggestions := []string{}
	if decoded.Analysis != nil && decoded.Analysis.Suggestions != nil {
		suggestions = decoded.Analysis.Suggestions
	}

	return &Result{
		ImprovedContent: improved,
		Suggestions:     suggestions,
		TaskType:        taskType,
	}
}
