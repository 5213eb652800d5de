package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"globtek-backend/internal/httpx"
	"globtek-backend/internal/models"
	"globtek-backend/internal/transport"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Company     string `json:"company"`
	ProjectType string `json:"projectType" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Budget      string `json:"budget"`
	Timeframe   string `json:"timeframe"`
}

// CreateContact stores the enquiry and dispatches exactly two emails: the team
// notification first, then the submitter confirmation. Each outcome is logged
// on its own, but the endpoint only reports success when both sends succeeded.
func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req ContactRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("contact create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	if s.Mailer == nil || s.Cfg.ContactInbox == "" {
		log.Warn("contact create: mailer not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "contact dispatch not configured", nil)
		return
	}

	msg := models.ContactMessage{
		ID:          primitive.NewObjectID().Hex(),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Company:     strings.TrimSpace(req.Company),
		ProjectType: strings.TrimSpace(req.ProjectType),
		Message:     strings.TrimSpace(req.Message),
		Budget:      strings.TrimSpace(req.Budget),
		Timeframe:   strings.TrimSpace(req.Timeframe),
		CreatedAt:   time.Now().In(s.Cfg.Timezone),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	if err := s.Contacts.Insert(ctx, msg); err != nil {
		log.Error("contact create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	notificationID, notifyErr := s.Mailer.SendContactNotification(ctx, s.Cfg.ContactInbox, msg)
	if notifyErr != nil {
		log.Error("contact email: notification failed",
			slog.String("contact_id", msg.ID),
			slog.String("error", notifyErr.Error()),
		)
	} else {
		log.Info("contact email: notification sent",
			slog.String("contact_id", msg.ID),
			slog.String("message_id", notificationID),
		)
	}

	confirmationID, confirmErr := s.Mailer.SendContactConfirmation(ctx, msg)
	if confirmErr != nil {
		log.Error("contact email: confirmation failed",
			slog.String("contact_id", msg.ID),
			slog.String("email", msg.Email),
			slog.String("error", confirmErr.Error()),
		)
	} else {
		log.Info("contact email: confirmation sent",
			slog.String("contact_id", msg.ID),
			slog.String("message_id", confirmationID),
		)
	}

	if notifyErr != nil || confirmErr != nil {
		transport.WriteError(w, http.StatusInternalServerError, "message could not be sent, please try again later", nil)
		return
	}

	log.Info("contact create: ok", slog.String("contact_id", msg.ID))
	transport.WriteJSON(w, http.StatusCreated, transport.SuccessResponse{
		Success: true,
		Data:    map[string]string{"id": msg.ID},
		Message: "message sent",
	})
}

func (s *Server) AdminListContacts(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 20, 100)
	if err != nil {
		log.Warn("admin contacts list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := s.Contacts.List(ctx, limit, offset)
	if err != nil {
		log.Error("admin contacts list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	log.Info("admin contacts list: ok", slog.Int("count", len(items)))
	transport.WriteData(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}
