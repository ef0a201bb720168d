package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/services"
)

type InternshipHandlers struct {
	internships *services.InternshipService
}

func NewInternshipHandlers(internships *services.InternshipService) *InternshipHandlers {
	return &InternshipHandlers{internships: internships}
}

// ListInternships handles GET /internships. ?all=true includes listings
// past their deadline.
func (h *InternshipHandlers) ListInternships(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	result, err := h.internships.GetAll(r.Context(), activeOnly)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Internships)
}

// GetInternship handles GET /internships/{id}.
func (h *InternshipHandlers) GetInternship(w http.ResponseWriter, r *http.Request) {
	result, err := h.internships.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Internship)
}

// CreateInternship handles POST /internships.
func (h *InternshipHandlers) CreateInternship(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateInternshipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.internships.Create(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.Internship)
}

// DeleteInternship handles DELETE /internships/{id}.
func (h *InternshipHandlers) DeleteInternship(w http.ResponseWriter, r *http.Request) {
	result, err := h.internships.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}
