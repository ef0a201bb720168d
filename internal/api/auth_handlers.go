package api

import (
	"errors"
	"net/http"
	"time"

	"alumnihub/portal/internal/auth"
	"alumnihub/portal/internal/identity"
)

const sessionTTL = 24 * time.Hour

type AuthHandlers struct {
	provider identity.Provider
	secret   []byte
	apiKey   string
}

func NewAuthHandlers(provider identity.Provider, secret []byte, apiKey string) *AuthHandlers {
	return &AuthHandlers{provider: provider, secret: secret, apiKey: apiKey}
}

type sessionRequest struct {
	UserID string `json:"userId"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// CreateSession handles POST /auth/session. The frontend authenticates
// users against the identity provider itself; once it holds a verified
// provider id it exchanges it here for a portal session token. The
// exchange is guarded by the shared API key, so only the trusted
// frontend can mint sessions.
func (h *AuthHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" || r.Header.Get("X-API-Key") != h.apiKey {
		respondWithError(w, http.StatusUnauthorized, "Invalid API key")
		return
	}

	var req sessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "userId is required")
		return
	}

	// The id must resolve to a live account before a session is issued.
	if _, err := h.provider.GetUser(r.Context(), req.UserID); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(w, r, err)
		return
	}

	token, err := auth.IssueSessionToken(h.secret, req.UserID, sessionTTL)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	resp := sessionResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(sessionTTL).UTC().Format(time.RFC3339),
	}
	respondWithSuccess(w, http.StatusCreated, &resp)
}
