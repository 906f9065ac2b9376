// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package refine

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/promptdeck/internal/platform/middleware"
	requestutil "github.com/taibuivan/promptdeck/internal/platform/request"
	"github.com/taibuivan/promptdeck/internal/platform/respond"
	"github.com/taibuivan/promptdeck/internal/platform/validate"
)

// # Definitions & Constructors

// Handler exposes the refinement proxy endpoint.
type Handler struct {
	client *Client
}

// NewHandler constructs a new [Handler] with its client dependency.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Register attaches the refine route onto the shared prompts router.
//
// The static "/refine" segment is registered alongside "/{id}" routes; chi
// resolves static segments ahead of wildcards, so detail lookups are safe.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/refine", handler.refinePrompt)
	})
}

// # Request Payloads

type refineRequest struct {
	Prompt   string `json:"prompt"`
	TaskType string `json:"task_type"`
}

const (
	fieldPrompt   = "prompt"
	fieldTaskType = "task_type"

	// maxPromptLength bounds the proxied payload so the upstream model is
	// never handed an unbounded body.
	maxPromptLength = 8000
)

/*
RefinePrompt proxies a prompt to the external improvement service.

POST /api/v1/prompts/refine

Request:
  - Body: refineRequest (Prompt, TaskType)

Response:
  - 200: Result: Improved content and suggestions
  - 400: ErrInvalidJSON: Missing prompt or unknown task type
  - 401: ErrUnauthorized: Authentication required
  - 503: ErrServiceUnavailable: Upstream unreachable or not configured
*/
func (handler *Handler) refinePrompt(writer http.ResponseWriter, request *http.Request) {
	var input refineRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.TaskType == "" {
		input.TaskType = TaskGeneral
	}

	validator := &validate.Validator{}
	validator.Required(fieldPrompt, input.Prompt).
		MaxLen(fieldPrompt, input.Prompt, maxPromptLength).
		OneOf(fieldTaskType, input.TaskType, TaskTypes...)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.client.Improve(request.Context(), input.Prompt, input.TaskType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
