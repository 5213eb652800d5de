package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"globtek-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items      map[string]Service
	createdIDs []string
	calls      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Service)}
}

func (f *fakeRepo) Create(ctx context.Context, item Service) error {
	f.calls++
	for _, existing := range f.items {
		if existing.Slug == item.Slug {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	f.items[item.ID] = item
	f.createdIDs = append(f.createdIDs, item.ID)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Service, error) {
	f.calls++
	item, ok := f.items[id]
	if !ok {
		return Service{}, mongo.ErrNoDocuments
	}
	if v, ok := set["title"].(string); ok {
		item.Title = v
	}
	if v, ok := set["slug"].(string); ok {
		item.Slug = v
	}
	if v, ok := set["description"].(string); ok {
		item.Description = v
	}
	f.items[id] = item
	return item, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	f.calls++
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Service, error) {
	f.calls++
	item, ok := f.items[id]
	if !ok {
		return Service{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Service, error) {
	f.calls++
	for _, item := range f.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return Service{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) List(ctx context.Context) ([]Service, error) {
	f.calls++
	out := make([]Service, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) ListPage(ctx context.Context, limit, offset int64) ([]Service, error) {
	return f.List(ctx)
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	manager := NewManager(repo, time.UTC)
	log := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewHandler(manager, validation.New(), log, nil, time.Minute), repo
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func doRequest(h http.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestAdminCreateMissingFieldsSkipsRepo(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"title":"","slug":"fire-safety","description":"desc"}`},
		{"missing description", `{"title":"Fire Safety","slug":"fire-safety","description":""}`},
		{"unsluggable title", `{"title":"!!!","description":"desc"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, repo := newTestHandler(t)
			w := doRequest(h.AdminCreate, http.MethodPost, "/admin/services", tc.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, repo.calls, "repository must not be called on validation failure")
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestAdminCreateDerivesSlug(t *testing.T) {
	h, repo := newTestHandler(t)
	body := `{"title":"Fire & Safety!!","description":"Fire protection engineering"}`
	w := doRequest(h.AdminCreate, http.MethodPost, "/admin/services", body, nil)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, repo.createdIDs, 1)
	created := repo.items[repo.createdIDs[0]]
	assert.Equal(t, "fire-safety", created.Slug)
	assert.Equal(t, "Fire & Safety!!", created.Title)
}

func TestAdminCreateDuplicateSlug(t *testing.T) {
	h, _ := newTestHandler(t)
	body := `{"title":"Fire Safety","description":"desc"}`

	w := doRequest(h.AdminCreate, http.MethodPost, "/admin/services", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(h.AdminCreate, http.MethodPost, "/admin/services", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminGetByIDNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	w := doRequest(h.AdminGetByID, http.MethodGet, "/admin/services/nope", "", map[string]string{"id": "nope"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAdminUpdateNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	body := `{"title":"Fire Safety","slug":"fire-safety","description":"desc"}`
	w := doRequest(h.AdminUpdate, http.MethodPut, "/admin/services/nope", body, map[string]string{"id": "nope"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicListOK(t *testing.T) {
	h, repo := newTestHandler(t)
	require.NoError(t, repo.Create(context.Background(), Service{ID: "1", Title: "Surveys", Slug: "surveys", Description: "d"}))

	w := doRequest(h.PublicList, http.MethodGet, "/services", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "surveys")
}
