package team

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"globtek-backend/internal/httpx"
	"globtek-backend/internal/middleware"
	"globtek-backend/internal/transport"
	"globtek-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	profiles, err := h.service.List(ctx)
	if err != nil {
		log.Error("admin users list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	log.Info("admin users list: ok", slog.Int("count", len(profiles)))
	transport.WriteData(w, http.StatusOK, profiles)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin users create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin users create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	profile, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			log.Warn("admin users create: duplicate email", slog.String("email", req.Email))
			transport.WriteError(w, http.StatusConflict, ErrDuplicateEmail.Error(), nil)
			return
		}
		log.Error("admin users create: error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	log.Info("admin users create: ok", slog.String("user_id", profile.ID), slog.String("email", profile.Email))
	transport.WriteData(w, http.StatusCreated, profile)
}

func (h *Handler) AdminGetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin users get: not found", slog.String("user_id", id))
			transport.WriteError(w, http.StatusNotFound, "team member not found", nil)
			return
		}
		log.Error("admin users get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	transport.WriteData(w, http.StatusOK, profile)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin users update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin users update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	profile, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin users update: not found", slog.String("user_id", id))
			transport.WriteError(w, http.StatusNotFound, "team member not found", nil)
			return
		}
		log.Error("admin users update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	log.Info("admin users update: ok", slog.String("user_id", id))
	transport.WriteData(w, http.StatusOK, profile)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin users delete: not found", slog.String("user_id", id))
			transport.WriteError(w, http.StatusNotFound, "team member not found", nil)
			return
		}
		var orphan *OrphanProfileError
		if errors.As(err, &orphan) {
			log.Error("admin users delete: orphan profile",
				slog.String("user_id", orphan.ID),
				slog.String("error", orphan.Err.Error()),
			)
			transport.WriteError(w, http.StatusInternalServerError, "account deleted but profile removal failed", nil)
			return
		}
		log.Error("admin users delete: error", slog.String("user_id", id), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	log.Info("admin users delete: ok", slog.String("user_id", id))
	transport.WriteMessage(w, http.StatusOK, "team member deleted")
}

func (h *Handler) AdminUpdatePassword(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req PasswordRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin users password: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin users password: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.UpdatePassword(ctx, id, req.Password); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin users password: not found", slog.String("user_id", id))
			transport.WriteError(w, http.StatusNotFound, "team member not found", nil)
			return
		}
		log.Error("admin users password: error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	log.Info("admin users password: ok", slog.String("user_id", id))
	transport.WriteMessage(w, http.StatusOK, "password updated")
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
