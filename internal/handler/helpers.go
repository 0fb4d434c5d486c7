package handler

import (
	"errors"
	"net/http"

	"lumina/internal/domain"
	"lumina/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var structuralErr *domain.StructuralError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &structuralErr):
		httputil.RespondErrorWithCode(w, http.StatusConflict, structuralErr.Code, structuralErr.Message)
	case errors.Is(err, domain.ErrStorageUnavailable):
		// The one retryable kind: clients may re-issue the whole operation
		httputil.RespondError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
