package team

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"globtek-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

const (
	maxAvatarBytes = 2 << 20 // 2 MiB

	msgAvatarTooLarge    = "avatar must be 2MB or smaller"
	msgAvatarBadType     = "avatar must be a JPEG, PNG or GIF image"
	msgAvatarMissingFile = "missing avatar file"
)

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// AdminUploadAvatar validates the multipart upload before the storage client
// is involved: an oversized or wrong-type file never leaves the process.
func (h *Handler) AdminUploadAvatar(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+(1<<20))
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		log.Warn("avatar upload: invalid multipart form", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, msgAvatarTooLarge, nil)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		log.Warn("avatar upload: missing file")
		transport.WriteError(w, http.StatusBadRequest, msgAvatarMissingFile, nil)
		return
	}
	defer file.Close()

	if header.Size > maxAvatarBytes {
		log.Warn("avatar upload: too large", slog.Int64("size", header.Size))
		transport.WriteError(w, http.StatusBadRequest, msgAvatarTooLarge, nil)
		return
	}

	// Sniff the real content type rather than trusting the part header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		log.Error("avatar upload: read error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "could not read avatar file", nil)
		return
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		log.Warn("avatar upload: unsupported type", slog.String("content_type", contentType))
		transport.WriteError(w, http.StatusBadRequest, msgAvatarBadType, nil)
		return
	}

	body := io.MultiReader(bytes.NewReader(head), file)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	url, err := h.service.StoreAvatar(ctx, id, ext, contentType, body, header.Size)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("avatar upload: not found", slog.String("user_id", id))
			transport.WriteError(w, http.StatusNotFound, "team member not found", nil)
			return
		}
		log.Error("avatar upload: error", slog.String("user_id", id), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	log.Info("avatar upload: ok", slog.String("user_id", id), slog.String("avatar_url", url))
	transport.WriteData(w, http.StatusOK, map[string]string{"avatar_url": url})
}
