// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package prompt provides the HTTP interface for discovery and creation of prompts.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /prompts).
  - Restricted (v1): Creation requires an authenticated member.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package prompt

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/promptdeck/internal/platform/middleware"
	requestutil "github.com/taibuivan/promptdeck/internal/platform/request"
	"github.com/taibuivan/promptdeck/internal/platform/respond"
	"github.com/taibuivan/promptdeck/pkg/pagination"
)

// Invalidator is the slice of the interaction overlay this handler needs.
//
// # Why an interface?
//
// The feed must clear stale optimistic like state after every successful
// page fetch, but the prompt domain must not depend on the social domain.
// The composition root wires the concrete overlay in.
type Invalidator interface {
	InvalidateAll()
}

// noopInvalidator satisfies [Invalidator] when no overlay is wired (tests).
type noopInvalidator struct{}

func (noopInvalidator) InvalidateAll() {}

// # Handler Implementation

// Handler implements the HTTP layer for prompt discovery and creation.
type Handler struct {
	service *Service
	overlay Invalidator
}

// NewHandler constructs a new prompt [Handler].
// A nil overlay is replaced with a no-op invalidator.
func NewHandler(service *Service, overlay Invalidator) *Handler {
	if overlay == nil {
		overlay = noopInvalidator{}
	}
	return &Handler{service: service, overlay: overlay}
}

// Register mounts the prompt domain's endpoints on the given router.
//
// The social and refine handlers register onto the same /prompts subtree,
// so this takes a router instead of building its own.
func (handler *Handler) Register(router chi.Router) {

	// ## Public Discovery Endpoints
	router.Get("/", handler.listPrompts)
	router.Get("/{id}", handler.getPrompt)

	// ## Creation (Member Protected)
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/", handler.createPrompt)
	})
}

// # Prompt Endpoints

/*
GET /api/v1/prompts.

Description: Retrieves one page of the prompt feed. Supports substring search,
category and language filtering. Every successful fetch clears the optimistic
like overlay so the freshly served counts are authoritative.

Request:
  - q: string (Case-insensitive substring search over title and body)
  - category: string (Category name or slug; slug-normalized server-side)
  - language: string (Exact language name)
  - limit: int (Defaults to the feed page size of 9)
  - page: int (Clamped to >= 1)

Response:
  - 200: []Prompt: Paginated page of the feed
*/
func (handler *Handler) listPrompts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:    requestutil.Query(request, "q", ""),
		Category: requestutil.Query(request, "category", ""),
		Language: requestutil.Query(request, "language", ""),
	}

	prompts, total, err := handler.service.ListPrompts(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Staleness invariant: optimistic overlay entries die with every
	// successful fetch; only failures leave the overlay untouched.
	handler.overlay.InvalidateAll()

	respond.Paginated(writer, prompts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/prompts/{id}.

Description: Retrieves a single prompt by UUID.

Request:
  - id: string (UUID)

Response:
  - 200: Prompt: Success
  - 404: 404: ErrNotFound: Prompt not found
*/
func (handler *Handler) getPrompt(writer http.ResponseWriter, request *http.Request) {
	promptID := requestutil.ID(request, "id")

	prompt, err := handler.service.GetPrompt(request.Context(), promptID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, prompt)
}

// # Request Payloads

// createPromptRequest defines the inbound JSON schema for prompt creation.
type createPromptRequest struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Categories []string `json:"categories"`
	Language   string   `json:"language"`
	Models     []string `json:"models"`
	Tags       []string `json:"tags"`
}

// # Mutation Endpoints

/*
POST /api/v1/prompts.

Description: Creates a new prompt owned by the authenticated user.
Categories are slug-normalized; slugs are auto-generated from the title.

Request (Body):
  - createPromptRequest: JSON object

Response:
  - 201: Prompt: Created prompt object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) createPrompt(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPromptRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	promptDto := &Prompt{
		Title:         input.Title,
		Body:          input.Body,
		CategorySlugs: input.Categories,
		Language:      input.Language,
		Models:        input.Models,
		Tags:          input.Tags,
		AuthorID:      claims.UserID,
		AuthorName:    claims.Username,
	}

	if err := handler.service.CreatePrompt(request.Context(), promptDto); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, promptDto)
}
