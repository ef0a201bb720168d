package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/services"
)

type StoryHandlers struct {
	stories *services.StoryService
}

func NewStoryHandlers(stories *services.StoryService) *StoryHandlers {
	return &StoryHandlers{stories: stories}
}

// ListStories handles GET /stories. ?all=true includes unpublished
// submissions and requires admin.
func (h *StoryHandlers) ListStories(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("all") != "true"

	result, err := h.stories.GetAll(r.Context(), publishedOnly)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Stories)
}

// MyStories handles GET /stories/mine.
func (h *StoryHandlers) MyStories(w http.ResponseWriter, r *http.Request) {
	result, err := h.stories.GetMine(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Stories)
}

// GetStory handles GET /stories/{id}.
func (h *StoryHandlers) GetStory(w http.ResponseWriter, r *http.Request) {
	result, err := h.stories.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Story)
}

// SubmitStory handles POST /stories.
func (h *StoryHandlers) SubmitStory(w http.ResponseWriter, r *http.Request) {
	var req dtos.SubmitStoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.stories.Submit(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.Story)
}

// UpdateStory handles PATCH /stories/{id}.
func (h *StoryHandlers) UpdateStory(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateStoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.stories.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Story)
}

// ToggleStory handles POST /stories/{id}/toggle.
func (h *StoryHandlers) ToggleStory(w http.ResponseWriter, r *http.Request) {
	result, err := h.stories.TogglePublished(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Story)
}

// DeleteStory handles DELETE /stories/{id}.
func (h *StoryHandlers) DeleteStory(w http.ResponseWriter, r *http.Request) {
	result, err := h.stories.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}
