package http

import (
	"net/http"

	"userhub/internal/adapters/http/middleware"
	"userhub/internal/adapters/http/request"
	"userhub/internal/adapters/http/response"
	"userhub/internal/adapters/http/validator"
	"userhub/internal/domain"
	"userhub/internal/logger"
)

type AuthHandler struct {
	svc domain.AuthService
	log logger.Logger

	decoder   request.RequestDecoder
	writer    response.ResponseWriter
	validator validator.Validator
}

func NewAuthHandler(
	svc domain.AuthService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
	v validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		svc:       svc,
		log:       log,
		decoder:   d,
		writer:    w,
		validator: v,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.RegisterRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeDecodeError(w, h.writer, err)
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.writer, h.log, err)
		return
	}

	h.writer.Write(w, http.StatusOK, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.LoginRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeDecodeError(w, h.writer, err)
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.writer, h.log, err)
		return
	}

	h.writer.Write(w, http.StatusOK, res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeDomainError(w, r, h.writer, h.log, domain.ErrUnauthorized)
		return
	}

	h.writer.Write(w, http.StatusOK, domain.NewUserResponse(user))
}
