// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social provides the HTTP interface for the like relation.

# Routing Strategy

  - Toggle and status live under the prompt subtree (/prompts/{id}/like).
  - The favorites listing lives under the user subtree (/users/me/favorites).

Both sets are registered onto routers owned by the composition root.
*/
package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/promptdeck/internal/platform/middleware"
	requestutil "github.com/taibuivan/promptdeck/internal/platform/request"
	"github.com/taibuivan/promptdeck/internal/platform/respond"
	"github.com/taibuivan/promptdeck/internal/prompt"
	"github.com/taibuivan/promptdeck/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for like toggling and favorites.
type Handler struct {
	service *Service
}

// NewHandler constructs a new social [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPromptRoutes mounts the per-prompt like endpoints on the
// /prompts subtree router.
func (handler *Handler) RegisterPromptRoutes(router chi.Router) {
	router.Get("/{id}/like", handler.likeStatus)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/{id}/like", handler.toggleLike)
	})
}

// RegisterUserRoutes mounts the favorites listing on the /users/me subtree
// router. Anonymous access is allowed; it yields an empty page.
func (handler *Handler) RegisterUserRoutes(router chi.Router) {
	router.Get("/favorites", handler.listFavorites)
}

// # Request Payloads

// toggleRequest carries the tuple the client currently displays. Both fields
// are optional: when Liked is omitted the server derives the known state
// with a relation lookup before toggling.
type toggleRequest struct {
	Count int   `json:"count"`
	Liked *bool `json:"liked"`
}

// favoriteItem is one favorites entry: the prompt plus its like tuple. Every
// item on this listing is liked by definition, so Liked is always true and
// the count pairs with the prompt's stored likes_count.
type favoriteItem struct {
	*prompt.Prompt
	Liked bool `json:"liked"`
}

// # Like Endpoints

/*
POST /api/v1/prompts/{id}/like.

Description: Toggles the authenticated user's like on a prompt and returns
the reconciled state. The body may carry the client's known tuple; when it
is omitted the server resolves the current state first.

Request:
  - id: string (UUID)
  - body (optional): {"count": int, "liked": bool}

Response:
  - 200: LikeState: Reconciled count and engagement
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 404: 404: ErrNotFound: Prompt not found
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	promptID := requestutil.ID(request, "id")

	// The body is optional; only a present-but-malformed body is rejected.
	var input toggleRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	known, err := handler.resolveKnown(request, promptID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Toggle(request.Context(), promptID, known)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}

// resolveKnown returns the tuple the toggle starts from: the client's claim
// when supplied, a fresh relation lookup otherwise.
func (handler *Handler) resolveKnown(request *http.Request, promptID string, input toggleRequest) (LikeState, error) {
	if input.Liked != nil {
		return LikeState{Count: input.Count, Liked: *input.Liked}, nil
	}
	return handler.service.CurrentState(request.Context(), promptID)
}

/*
GET /api/v1/prompts/{id}/like.

Description: Reports whether the current user has liked the prompt along
with the displayed state (overlay-aware). Anonymous callers always read
liked=false.

Request:
  - id: string (UUID)

Response:
  - 200: LikeState
  - 404: 404: ErrNotFound: Prompt not found
*/
func (handler *Handler) likeStatus(writer http.ResponseWriter, request *http.Request) {
	promptID := requestutil.ID(request, "id")

	stored, err := handler.service.CurrentState(request.Context(), promptID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Overlay wins over the stored tuple while a toggle is in flight
	state := handler.service.StateFor(promptID, stored)

	respond.OK(writer, state)
}

/*
GET /api/v1/users/me/favorites.

Description: Pages through the prompts the current user has liked, newest
like first. Every item carries liked=true alongside the prompt fields.
Anonymous callers receive an empty page rather than an error.

Request:
  - limit: int
  - page: int

Response:
  - 200: []favoriteItem: Paginated liked prompts with their like tuple
*/
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	prompts, total, err := handler.service.Favorites(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items := make([]favoriteItem, 0, len(prompts))
	for _, favorite := range prompts {
		items = append(items, favoriteItem{Prompt: favorite, Liked: true})
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
