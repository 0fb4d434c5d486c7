package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler layer free of
// per-error-type switch statements.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrStorageUnavailable marks transient backing-store failures. It is
	// the only error kind a caller may retry, and only by re-issuing the
	// whole operation.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Structural conflict codes. Each maps to a distinct, stable code in the
// API response so clients can tell the "would break the tree" cases apart.
const (
	CodeParentNotFound   = "parent_not_found"
	CodeTargetNotFound   = "target_not_found"
	CodeSelfParenting    = "self_parenting"
	CodeCyclicMove       = "cyclic_move"
	CodePhotoNotInFolder = "photo_not_in_folder"
)

// StructuralError represents an operation rejected because it would
// violate the folder tree's shape: re-parenting a folder under one of its
// own descendants, pointing a cover photo at a photo outside the folder,
// or referencing a parent folder in another gallery.
type StructuralError struct {
	Code    string // one of the Code* constants above
	Message string
}

// Error implements the error interface
func (e *StructuralError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *StructuralError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *StructuralError) Is(target error) bool {
	return target == ErrConflict
}
