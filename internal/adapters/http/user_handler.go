package http

import (
	"net/http"
	"strconv"

	"userhub/internal/adapters/http/middleware"
	"userhub/internal/adapters/http/request"
	"userhub/internal/adapters/http/response"
	"userhub/internal/adapters/http/validator"
	"userhub/internal/domain"
	"userhub/internal/logger"
)

type UserHandler struct {
	svc domain.UserService
	log logger.Logger

	decoder   request.RequestDecoder
	writer    response.ResponseWriter
	validator validator.Validator
}

func NewUserHandler(
	svc domain.UserService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
	v validator.Validator,
) *UserHandler {
	return &UserHandler{
		svc:       svc,
		log:       log,
		decoder:   d,
		writer:    w,
		validator: v,
	}
}

func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := domain.ListOptions{
		Page:   request.GetInt(q, "page", 1),
		Limit:  request.GetInt(q, "limit", domain.DefaultPageSize),
		Search: request.GetString(q, "search", ""),
	}

	result, err := h.svc.List(r.Context(), opts)
	if err != nil {
		writeDomainError(w, r, h.writer, h.log, err)
		return
	}

	h.writer.Write(w, http.StatusOK, &domain.ListResult[domain.UserResponse]{
		Data: domain.NewUserResponses(result.Data),
		Meta: result.Meta,
	})
}

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.writer, h.log, err)
		return
	}

	h.writer.Write(w, http.StatusOK, domain.NewUserResponse(user))
}

func (h *UserHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.UserSaveRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeDecodeError(w, h.writer, err)
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	user, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.writer, h.log, err)
		return
	}

	h.writer.Write(w, http.StatusCreated, domain.NewUserResponse(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req domain.UserSaveRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeDecodeError(w, h.writer, err)
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	user, err := h.svc.Update(r.Context(), req, userID)
	if err != nil {
		writeDomainError(w, r, h.writer, h.log, err)
		return
	}

	h.writer.Write(w, http.StatusOK, domain.NewUserResponse(user))
}

func (h *UserHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetUser(r.Context())
	if !ok {
		writeDomainError(w, r, h.writer, h.log, domain.ErrUnauthorized)
		return
	}

	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if userID == current.ID {
		h.writer.WriteError(w, http.StatusBadRequest, "You cannot delete yourself")
		return
	}

	if err := h.svc.Delete(r.Context(), userID); err != nil {
		writeDomainError(w, r, h.writer, h.log, err)
		return
	}

	h.writer.NoContent(w)
}

func (h *UserHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || userID < 1 {
		h.writer.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	return userID, true
}
