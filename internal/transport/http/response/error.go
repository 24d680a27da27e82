package response

import (
	"errors"
	"net/http"

	"github.com/baechuer/contactbook/internal/domain"
	"github.com/baechuer/contactbook/internal/logger"
)

type ErrorBody struct {
	Message string `json:"message"`
}

// WriteError converts a domain error into the JSON error response the
// API speaks: {"message": "..."}. Non-domain errors and 5xx kinds are
// collapsed to "Server error" so internals never leak; the real cause
// is logged with the request id.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Server error"

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		if status < http.StatusInternalServerError {
			message = de.Message
		}
	}

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	WriteJSON(w, status, ErrorBody{Message: message})
}

func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
