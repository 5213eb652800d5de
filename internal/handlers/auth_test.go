package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"globtek-backend/internal/auth"
	"globtek-backend/internal/config"
	"globtek-backend/internal/models"
	"globtek-backend/internal/team"
	"globtek-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeAccountStore struct {
	byEmail map[string]models.Account
	lookups int
}

func (f *fakeAccountStore) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	f.lookups++
	account, ok := f.byEmail[email]
	if !ok {
		return models.Account{}, mongo.ErrNoDocuments
	}
	return account, nil
}

// nullAccountRepo and nullProfileRepo satisfy the team repositories for flows
// that only read profiles, like resolving the display name during login.
type nullAccountRepo struct{}

func (nullAccountRepo) Create(ctx context.Context, account models.Account) error { return nil }
func (nullAccountRepo) Delete(ctx context.Context, id string) (bool, error)      { return false, nil }
func (nullAccountRepo) UpdatePasswordHash(ctx context.Context, id, hash string) (bool, error) {
	return false, nil
}

type nullProfileRepo struct{}

func (nullProfileRepo) Create(ctx context.Context, profile team.Profile) error { return nil }
func (nullProfileRepo) Update(ctx context.Context, id string, set bson.M) (team.Profile, error) {
	return team.Profile{}, mongo.ErrNoDocuments
}
func (nullProfileRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }
func (nullProfileRepo) GetByID(ctx context.Context, id string) (team.Profile, error) {
	return team.Profile{}, mongo.ErrNoDocuments
}
func (nullProfileRepo) List(ctx context.Context) ([]team.Profile, error) { return nil, nil }

func newAuthServer(t *testing.T, accounts *fakeAccountStore) *Server {
	t.Helper()
	return &Server{
		Cfg: &config.Config{Timezone: time.UTC},
		Val: validation.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWT: &auth.Manager{
			Secret:     []byte("test-secret"),
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
			Issuer:     "globtek-backend",
		},
		Accounts: accounts,
		Team:     team.NewService(nullAccountRepo{}, nullProfileRepo{}, nil, time.UTC),
	}
}

func seedAccount(t *testing.T, store *fakeAccountStore, email, password string) models.Account {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	account := models.Account{
		ID:           "acc-1",
		Email:        email,
		PasswordHash: hash,
		Role:         models.AccountRoleAdmin,
	}
	store.byEmail[email] = account
	return account
}

func postLogin(s *Server, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Login(w, r)
	return w
}

func TestLoginMissingFieldsSkipsLookup(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"secret-pass"}`},
		{"missing password", `{"email":"admin@globtek.co.za"}`},
		{"bad email", `{"email":"not-an-email","password":"secret-pass"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeAccountStore{byEmail: map[string]models.Account{}}
			s := newAuthServer(t, store)

			w := postLogin(s, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, store.lookups, "no credential lookup before validation passes")
		})
	}
}

func TestLoginUnknownEmailGenericError(t *testing.T) {
	store := &fakeAccountStore{byEmail: map[string]models.Account{}}
	s := newAuthServer(t, store)

	w := postLogin(s, `{"email":"ghost@globtek.co.za","password":"secret-pass"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLoginWrongPasswordGenericError(t *testing.T) {
	store := &fakeAccountStore{byEmail: map[string]models.Account{}}
	seedAccount(t, store, "admin@globtek.co.za", "right-password")
	s := newAuthServer(t, store)

	w := postLogin(s, `{"email":"admin@globtek.co.za","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLoginSetsCookiePair(t *testing.T) {
	store := &fakeAccountStore{byEmail: map[string]models.Account{}}
	seedAccount(t, store, "admin@globtek.co.za", "right-password")
	s := newAuthServer(t, store)

	// email comparison is case-insensitive
	w := postLogin(s, `{"email":"Admin@Globtek.co.za","password":"right-password"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	var access, refresh *http.Cookie
	for _, c := range cookies {
		switch c.Name {
		case "gt_access":
			access = c
		case "gt_refresh":
			refresh = c
		}
	}
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, "/api", refresh.Path)

	claims, err := s.JWT.Parse(access.Value)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestGetSessionRoundTrip(t *testing.T) {
	store := &fakeAccountStore{byEmail: map[string]models.Account{}}
	seedAccount(t, store, "admin@globtek.co.za", "right-password")
	s := newAuthServer(t, store)

	login := postLogin(s, `{"email":"admin@globtek.co.za","password":"right-password"}`)
	require.Equal(t, http.StatusOK, login.Code)

	r := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	for _, c := range login.Result().Cookies() {
		if c.Name == "gt_access" {
			r.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	s.GetSession(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@globtek.co.za")
}

func TestGetSessionWithoutCookie(t *testing.T) {
	s := newAuthServer(t, &fakeAccountStore{byEmail: map[string]models.Account{}})

	r := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	w := httptest.NewRecorder()
	s.GetSession(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotatesSession(t *testing.T) {
	store := &fakeAccountStore{byEmail: map[string]models.Account{}}
	seedAccount(t, store, "admin@globtek.co.za", "right-password")
	s := newAuthServer(t, store)

	login := postLogin(s, `{"email":"admin@globtek.co.za","password":"right-password"}`)
	require.Equal(t, http.StatusOK, login.Code)

	r := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	for _, c := range login.Result().Cookies() {
		if c.Name == "gt_refresh" {
			r.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	s.Refresh(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	names := make([]string, 0, 2)
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "gt_access")
	assert.Contains(t, names, "gt_refresh")
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	store := &fakeAccountStore{byEmail: map[string]models.Account{}}
	seedAccount(t, store, "admin@globtek.co.za", "right-password")
	s := newAuthServer(t, store)

	login := postLogin(s, `{"email":"admin@globtek.co.za","password":"right-password"}`)
	require.Equal(t, http.StatusOK, login.Code)

	// the short-lived access token must not mint new pairs
	r := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	for _, c := range login.Result().Cookies() {
		if c.Name == "gt_access" {
			r.AddCookie(&http.Cookie{Name: "gt_refresh", Value: c.Value})
		}
	}
	w := httptest.NewRecorder()
	s.Refresh(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSessionRejectsRefreshToken(t *testing.T) {
	store := &fakeAccountStore{byEmail: map[string]models.Account{}}
	seedAccount(t, store, "admin@globtek.co.za", "right-password")
	s := newAuthServer(t, store)

	login := postLogin(s, `{"email":"admin@globtek.co.za","password":"right-password"}`)
	require.Equal(t, http.StatusOK, login.Code)

	r := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	for _, c := range login.Result().Cookies() {
		if c.Name == "gt_refresh" {
			r.AddCookie(&http.Cookie{Name: "gt_access", Value: c.Value})
		}
	}
	w := httptest.NewRecorder()
	s.GetSession(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
	s := newAuthServer(t, &fakeAccountStore{byEmail: map[string]models.Account{}})

	r := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	w := httptest.NewRecorder()
	s.Refresh(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
