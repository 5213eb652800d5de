package projects

import (
	"log/slog"
	"net/http"
	"strings"

	"globtek-backend/internal/middleware"
	"globtek-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	catalog *Catalog
	log     *slog.Logger
}

func NewHandler(catalog *Catalog, log *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		log:     log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	filter := Filter{
		Category: r.URL.Query().Get("category"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("featured")); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}

	items := h.catalog.List(filter)
	log.Info("projects list: ok", slog.Int("count", len(items)))
	transport.WriteData(w, http.StatusOK, items)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	project, ok := h.catalog.GetBySlug(slug)
	if !ok {
		log.Warn("projects get: not found", slog.String("slug", slug))
		transport.WriteError(w, http.StatusNotFound, "project not found", nil)
		return
	}

	transport.WriteData(w, http.StatusOK, project)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	transport.WriteData(w, http.StatusOK, h.catalog.Categories())
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
