package domain

import "fmt"

// AppError is the base domain error type. Status drives the HTTP response
// code; Message is the only field that reaches clients.
type AppError struct {
	Code    string `json:"-"`
	Message string `json:"error"`
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

func ErrNotFound(entity string, id int64) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %d not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 400}
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

func ErrLocked(msg string) *AppError {
	return &AppError{Code: "LOCKED", Message: msg, Status: 429}
}

func ErrMethodNotAllowed() *AppError {
	return &AppError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed", Status: 405}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
