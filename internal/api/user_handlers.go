package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/services"
)

type UserHandlers struct {
	users *services.UserService
}

func NewUserHandlers(users *services.UserService) *UserHandlers {
	return &UserHandlers{users: users}
}

// Me handles GET /users/me.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.GetProfile(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.User)
}

// AssignRole handles POST /users/role: one-shot role self-selection.
func (h *UserHandlers) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req dtos.AssignRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.users.AssignRole(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}

// SaveProfile handles POST /users/profile: onboarding submission.
func (h *UserHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req dtos.SaveProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.users.SaveProfile(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}

// ListUsers handles GET /admin/users.
func (h *UserHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.ListUsers(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, &result.Users)
}

// CreateUser handles POST /admin/users.
func (h *UserHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.users.CreateUser(r.Context(), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusCreated, result.User)
}

// UpdateUser handles PATCH /admin/users/{id}.
func (h *UserHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.users.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}

// DeleteUser handles DELETE /admin/users/{id}.
func (h *UserHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult[struct{}](w, result.OperationResult, http.StatusOK, nil)
}
