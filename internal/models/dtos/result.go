package dtos

import "alumnihub/portal/internal/constants"

// OperationResult is the structured outcome of a workflow operation.
// Expected business-rule failures (unauthorized, duplicate, not-found,
// validation) come back as a value with Success=false so callers can
// branch without error handling; only infrastructure failures travel as
// Go errors.
type OperationResult struct {
	Success bool                  `json:"success"`
	Code    constants.FailureCode `json:"code,omitempty"`
	Message string                `json:"message,omitempty"`
}

// OK builds a successful result with a user-facing message.
func OK(message string) OperationResult {
	return OperationResult{Success: true, Message: message}
}

// Fail builds a structured failure with a code and user-facing message.
func Fail(code constants.FailureCode, message string) OperationResult {
	return OperationResult{Success: false, Code: code, Message: message}
}

// Unauthenticated is the canonical no-caller failure.
func Unauthenticated() OperationResult {
	return Fail(constants.FailUnauthenticated, constants.MsgUnauthenticated)
}

// Unauthorized is the canonical policy-denied failure.
func Unauthorized(message string) OperationResult {
	return Fail(constants.FailUnauthorized, message)
}

// NotFound is the canonical missing-target failure.
func NotFound(message string) OperationResult {
	return Fail(constants.FailNotFound, message)
}
