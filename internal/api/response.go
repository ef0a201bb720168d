package api

import (
	"encoding/json"
	"net/http"
	"time"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/logging"
	"alumnihub/portal/internal/models/dtos"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := dtos.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithResult maps a workflow outcome onto the transport: failures
// become the matching HTTP status, successes wrap the payload.
func respondWithResult[T any](w http.ResponseWriter, result dtos.OperationResult, successCode int, data *T) {
	if !result.Success {
		respondWithError(w, failureStatus(result.Code), result.Message)
		return
	}
	respondWithSuccess(w, successCode, data)
}

func failureStatus(code constants.FailureCode) int {
	switch code {
	case constants.FailUnauthenticated:
		return http.StatusUnauthorized
	case constants.FailUnauthorized:
		return http.StatusForbidden
	case constants.FailNotFound:
		return http.StatusNotFound
	case constants.FailDuplicate:
		return http.StatusConflict
	case constants.FailValidation:
		return http.StatusBadRequest
	}
	return http.StatusBadRequest
}

// decodeJSON parses the request body into dst, answering 400 itself on
// malformed input. Returns false when the handler should bail out.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondInternal logs an infrastructure failure and answers 500 without
// leaking details.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	logging.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	respondWithError(w, http.StatusInternalServerError, "Something went wrong")
}
