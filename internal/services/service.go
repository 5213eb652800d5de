package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("service not found")
	ErrDuplicate = errors.New("service slug already exists")
)

type Manager struct {
	repo     Repository
	location *time.Location
}

func NewManager(repo Repository, location *time.Location) *Manager {
	return &Manager{
		repo:     repo,
		location: location,
	}
}

func (s *Manager) Create(ctx context.Context, req UpsertRequest) (Service, error) {
	now := time.Now().In(s.location)
	item := Service{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Slug:        strings.TrimSpace(req.Slug),
		Description: strings.TrimSpace(req.Description),
		Icon:        strings.TrimSpace(req.Icon),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Service{}, ErrDuplicate
		}
		return Service{}, err
	}
	return item, nil
}

func (s *Manager) Update(ctx context.Context, id string, req UpsertRequest) (Service, error) {
	set := bson.M{
		"title":       strings.TrimSpace(req.Title),
		"slug":        strings.TrimSpace(req.Slug),
		"description": strings.TrimSpace(req.Description),
		"icon":        strings.TrimSpace(req.Icon),
		"updatedAt":   time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Service{}, ErrDuplicate
		}
		return Service{}, err
	}
	return updated, nil
}

func (s *Manager) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Manager) GetByID(ctx context.Context, id string) (Service, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return item, nil
}

func (s *Manager) GetBySlug(ctx context.Context, slug string) (Service, error) {
	item, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return item, nil
}

func (s *Manager) List(ctx context.Context) ([]Service, error) {
	return s.repo.List(ctx)
}

func (s *Manager) ListAdmin(ctx context.Context, limit, offset int64) ([]Service, int64, error) {
	items, err := s.repo.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
