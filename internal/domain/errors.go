package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Status: 403}
}

// ErrRosterFull signals that the lineup already holds the required number of starters.
func ErrRosterFull(required int) *AppError {
	return &AppError{Code: "ROSTER_FULL", Message: fmt.Sprintf("lineup already has %d starters", required), Status: 409}
}

// ErrLineupIncomplete signals that match events cannot be recorded yet.
func ErrLineupIncomplete(have, required int) *AppError {
	return &AppError{Code: "LINEUP_INCOMPLETE", Message: fmt.Sprintf("lineup has %d of %d required starters", have, required), Status: 409}
}

func ErrInvalidEventType(got string) *AppError {
	return &AppError{Code: "INVALID_EVENT_TYPE", Message: fmt.Sprintf("unknown match event type: %s", got), Status: 400}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}

// ErrDependency wraps a failure of an external collaborator (storage, broker).
func ErrDependency(msg string, cause error) *AppError {
	return &AppError{Code: "DEPENDENCY_FAILURE", Message: msg, Status: 502, Cause: cause}
}
