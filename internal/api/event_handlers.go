package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/services"
)

type EventHandlers struct {
	events *services.EventService
}

func NewEventHandlers(events *services.EventService) *EventHandlers {
	return &EventHandlers{events: events}
}

// ListEvents handles GET /events. ?all=true includes inactive events and
// requires admin.
func (h *EventHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	result, err := h.events.GetAll(r.Context(), activeOnly)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Events)
}

// RecentEvents handles GET /events/recent?limit=N.
func (h *EventHandlers) RecentEvents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.events.GetRecent(r.Context(), limit)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Events)
}

// GetEvent handles GET /events/{id}.
func (h *EventHandlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	result, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Event)
}

// CreateEvent handles POST /events.
func (h *EventHandlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.events.Create(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.Event)
}

// UpdateEvent handles PATCH /events/{id}.
func (h *EventHandlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.events.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Event)
}

// ToggleEvent handles POST /events/{id}/toggle.
func (h *EventHandlers) ToggleEvent(w http.ResponseWriter, r *http.Request) {
	result, err := h.events.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Event)
}

// DeleteEvent handles DELETE /events/{id}.
func (h *EventHandlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	result, err := h.events.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}
