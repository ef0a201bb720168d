package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/services"
)

type PostHandlers struct {
	posts *services.PostService
}

func NewPostHandlers(posts *services.PostService) *PostHandlers {
	return &PostHandlers{posts: posts}
}

// ListPosts handles GET /posts.
func (h *PostHandlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.posts.GetAll(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Posts)
}

// MyPosts handles GET /posts/mine.
func (h *PostHandlers) MyPosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.posts.GetMine(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Posts)
}

// GetPost handles GET /posts/{id}.
func (h *PostHandlers) GetPost(w http.ResponseWriter, r *http.Request) {
	result, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Post)
}

// CreatePost handles POST /posts.
func (h *PostHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.posts.Create(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.Post)
}

// UpdatePost handles PATCH /posts/{id}.
func (h *PostHandlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.posts.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Post)
}

// LikePost handles POST /posts/{id}/like.
func (h *PostHandlers) LikePost(w http.ResponseWriter, r *http.Request) {
	result, err := h.posts.Like(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Post)
}

// AddComment handles POST /posts/{id}/comments.
func (h *PostHandlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var req dtos.AddCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.posts.AddComment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.Post)
}

// DeletePost handles DELETE /posts/{id}.
func (h *PostHandlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	result, err := h.posts.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}
