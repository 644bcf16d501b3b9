// Package response renders JSON bodies and the uniform error envelope.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"userhub/internal/logger"
)

const (
	MsgValidationFailed = "Invalid input data"
	MsgUnauthorized     = "Unauthorized access"
	MsgUnexpected       = "An unexpected error occurred"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

type ResponseWriter interface {
	Write(w http.ResponseWriter, status int, body any)
	WriteError(w http.ResponseWriter, status int, message string)
	WriteValidationError(w http.ResponseWriter, errs map[string]string)
	NoContent(w http.ResponseWriter)
}

type JSONWriter struct {
	log logger.Logger
	now func() time.Time
}

func NewJSONWriter(log logger.Logger) *JSONWriter {
	return &JSONWriter{
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (j *JSONWriter) Write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		j.log.Error("http: failed to encode response", "error", err)
	}
}

func (j *JSONWriter) WriteError(w http.ResponseWriter, status int, message string) {
	j.Write(w, status, &ErrorResponse{
		Timestamp: j.now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

func (j *JSONWriter) WriteValidationError(w http.ResponseWriter, errs map[string]string) {
	j.Write(w, http.StatusBadRequest, &ErrorResponse{
		Timestamp: j.now(),
		Status:    http.StatusBadRequest,
		Error:     "Validation Failed",
		Message:   MsgValidationFailed,
		Details:   errs,
	})
}

func (j *JSONWriter) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
