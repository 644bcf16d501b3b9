package http

import (
	"errors"
	"net/http"

	"userhub/internal/adapters/http/request"
	"userhub/internal/adapters/http/response"
	"userhub/internal/domain"
	"userhub/internal/logger"
)

// writeDomainError maps service errors to status codes. Anything unknown is
// logged and hidden behind a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, writer response.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		writer.WriteError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writer.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		writer.WriteError(w, http.StatusUnauthorized, response.MsgUnauthorized)
	case errors.Is(err, domain.ErrUserNotFound):
		writer.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrTooManyAttempts):
		writer.WriteError(w, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
	default:
		log.Error("http: request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writer.WriteError(w, http.StatusInternalServerError, response.MsgUnexpected)
	}
}

// writeDecodeError reports an unreadable body without echoing decoder details.
func writeDecodeError(w http.ResponseWriter, writer response.ResponseWriter, err error) {
	if errors.Is(err, request.ErrEmptyBody) {
		writer.WriteError(w, http.StatusBadRequest, "Request body is empty")
		return
	}
	writer.WriteError(w, http.StatusBadRequest, "Malformed JSON request")
}
