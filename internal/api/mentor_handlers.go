package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/services"
)

type MentorHandlers struct {
	mentors  *services.MentorService
	messages *services.MentorMessageService
}

func NewMentorHandlers(mentors *services.MentorService, messages *services.MentorMessageService) *MentorHandlers {
	return &MentorHandlers{mentors: mentors, messages: messages}
}

// ListMentors handles GET /mentors. ?all=true includes pending and
// rejected applications and requires admin.
func (h *MentorHandlers) ListMentors(w http.ResponseWriter, r *http.Request) {
	approvedOnly := r.URL.Query().Get("all") != "true"

	result, err := h.mentors.GetAll(r.Context(), approvedOnly)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Mentors)
}

// GetMentor handles GET /mentors/{id}.
func (h *MentorHandlers) GetMentor(w http.ResponseWriter, r *http.Request) {
	result, err := h.mentors.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Mentor)
}

// MentorStatus handles GET /mentors/status: the caller's own application
// state.
func (h *MentorHandlers) MentorStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.mentors.GetStatus(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithSuccess(w, http.StatusOK, result)
}

// Apply handles POST /mentors.
func (h *MentorHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req dtos.ApplyMentorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.mentors.Apply(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.Mentor)
}

// UpdateStatus handles PATCH /mentors/{id}/status.
func (h *MentorHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateMentorStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.mentors.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Mentor)
}

// DeleteMentor handles DELETE /mentors/{id}.
func (h *MentorHandlers) DeleteMentor(w http.ResponseWriter, r *http.Request) {
	result, err := h.mentors.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}

// SendMessage handles POST /mentors/messages.
func (h *MentorHandlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dtos.SendMentorMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.messages.Send(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.MentorMessage)
}

// Inbox handles GET /mentors/messages.
func (h *MentorHandlers) Inbox(w http.ResponseWriter, r *http.Request) {
	result, err := h.messages.Inbox(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Messages)
}

// MarkMessageRead handles POST /mentors/messages/{id}/read.
func (h *MentorHandlers) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	result, err := h.messages.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.MentorMessage)
}
