package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"globtek-backend/internal/auth"
	"globtek-backend/internal/config"
	"globtek-backend/internal/middleware"
	"globtek-backend/internal/models"
	"globtek-backend/internal/team"
	"globtek-backend/internal/transport"
	"globtek-backend/internal/validation"
)

// ContactMailer sends the two contact-flow emails. Both are attempted on every
// submission; the endpoint only reports success when both went out.
type ContactMailer interface {
	SendContactNotification(ctx context.Context, inbox string, msg models.ContactMessage) (string, error)
	SendContactConfirmation(ctx context.Context, msg models.ContactMessage) (string, error)
}

// AccountStore is the credential lookup used by login.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (models.Account, error)
}

// ContactStore persists contact messages before dispatch.
type ContactStore interface {
	Insert(ctx context.Context, msg models.ContactMessage) error
	List(ctx context.Context, limit, offset int64) ([]models.ContactMessage, int64, error)
}

type Server struct {
	Cfg      *config.Config
	Val      *validation.Validator
	Log      *slog.Logger
	JWT      *auth.Manager
	Accounts AccountStore
	Contacts ContactStore
	Team     *team.Service
	Mailer   ContactMailer
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
