package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"globtek-backend/internal/auth"
	"globtek-backend/internal/httpx"
	"globtek-backend/internal/team"
	"globtek-backend/internal/transport"
)

const (
	accessCookieName  = "gt_access"
	refreshCookieName = "gt_refresh"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	SetupKey string `json:"setupKey" validate:"required"`
}

// Login exchanges credentials for the session cookie pair. Both fields are
// required up front; nothing is looked up until they are present. Credential
// failures always surface the same generic message, with the real cause kept
// in the log.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.Val.Struct(req); err != nil {
		log.Warn("login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	account, err := s.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Warn("login: account lookup failed", slog.String("email", req.Email), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	if err := auth.ComparePassword(account.PasswordHash, req.Password); err != nil {
		log.Warn("login: password mismatch", slog.String("email", req.Email))
		transport.WriteError(w, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	session := auth.Session{ID: account.ID, Email: account.Email}
	if profile, err := s.Team.GetByID(ctx, account.ID); err == nil {
		session.Name = profile.FullName
	}

	if err := s.issueSession(w, session); err != nil {
		log.Error("login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("login: ok", slog.String("user_id", account.ID))
	transport.WriteData(w, http.StatusOK, session)
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	refreshCookie, err := r.Cookie(refreshCookieName)
	if err != nil || refreshCookie.Value == "" {
		log.Warn("refresh: missing refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	claims, err := s.JWT.Parse(refreshCookie.Value)
	if err != nil || claims.Role != "admin" || claims.TokenType != auth.TokenTypeRefresh {
		log.Warn("refresh: invalid refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	session := claims.Session()
	if err := s.issueSession(w, session); err != nil {
		log.Error("refresh: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("refresh: ok", slog.String("user_id", session.ID))
	transport.WriteData(w, http.StatusOK, session)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	clearAuthCookies(w, s.Cfg.CookieSecure)
	log.Info("logout: ok")
	transport.WriteMessage(w, http.StatusOK, "logged out")
}

// GetSession returns the identity behind the access cookie so the frontend can
// render the admin shell without a second credential exchange.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(accessCookieName)
	if err != nil || cookie.Value == "" {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	claims, err := s.JWT.Parse(cookie.Value)
	if err != nil || claims.Role != "admin" || claims.TokenType != auth.TokenTypeAccess {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	transport.WriteData(w, http.StatusOK, claims.Session())
}

// Register bootstraps the first admin with the one-time setup key; later
// members are created through the admin users API.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req RegisterRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("register: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.Val.Struct(req); err != nil {
		log.Warn("register: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	if s.Cfg.AdminSetupKey == "" {
		log.Warn("register: setup key missing")
		transport.WriteError(w, http.StatusServiceUnavailable, "registration not configured", nil)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(s.Cfg.AdminSetupKey)) != 1 {
		log.Warn("register: invalid setup key", slog.String("email", req.Email))
		transport.WriteError(w, http.StatusUnauthorized, "invalid setup key", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	profile, err := s.Team.Create(ctx, team.CreateRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     "admin",
	})
	if err != nil {
		if err == team.ErrDuplicateEmail {
			log.Warn("register: duplicate email", slog.String("email", req.Email))
			transport.WriteError(w, http.StatusConflict, team.ErrDuplicateEmail.Error(), nil)
			return
		}
		log.Error("register: error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	session := auth.Session{ID: profile.ID, Email: profile.Email, Name: profile.FullName}
	if err := s.issueSession(w, session); err != nil {
		log.Error("register: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("register: ok", slog.String("user_id", profile.ID))
	transport.WriteData(w, http.StatusCreated, session)
}

func (s *Server) issueSession(w http.ResponseWriter, session auth.Session) error {
	accessToken, err := s.JWT.NewAccessToken(session)
	if err != nil {
		return err
	}
	refreshToken, err := s.JWT.NewRefreshToken(session)
	if err != nil {
		return err
	}
	setAuthCookies(w, accessToken, refreshToken, s.JWT.AccessTTL, s.JWT.RefreshTTL, s.Cfg.CookieSecure)
	return nil
}

func setAuthCookies(w http.ResponseWriter, access, refresh string, accessTTL, refreshTTL time.Duration, secure bool) {
	accessCookie := &http.Cookie{
		Name:     accessCookieName,
		Value:    access,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(accessTTL.Seconds()),
	}
	refreshCookie := &http.Cookie{
		Name:     refreshCookieName,
		Value:    refresh,
		Path:     "/api",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(refreshTTL.Seconds()),
	}
	http.SetCookie(w, accessCookie)
	http.SetCookie(w, refreshCookie)
}

func clearAuthCookies(w http.ResponseWriter, secure bool) {
	expire := time.Now().Add(-1 * time.Hour)
	accessCookie := &http.Cookie{
		Name:     accessCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expire,
		MaxAge:   -1,
	}
	refreshCookie := &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expire,
		MaxAge:   -1,
	}
	http.SetCookie(w, accessCookie)
	http.SetCookie(w, refreshCookie)
}
