package team

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"globtek-backend/internal/auth"
	"globtek-backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("team member not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// OrphanProfileError reports the partial-failure window of the two-step
// delete: the account is gone but the profile row survived both attempts.
type OrphanProfileError struct {
	ID  string
	Err error
}

func (e *OrphanProfileError) Error() string {
	return fmt.Sprintf("account deleted but profile %s retained: %v", e.ID, e.Err)
}

func (e *OrphanProfileError) Unwrap() error { return e.Err }

// AvatarStore is the external object storage holding avatar images.
type AvatarStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PublicURL(key string) string
}

type Service struct {
	accounts AccountRepository
	profiles ProfileRepository
	avatars  AvatarStore
	location *time.Location
}

func NewService(accounts AccountRepository, profiles ProfileRepository, avatars AvatarStore, location *time.Location) *Service {
	return &Service{
		accounts: accounts,
		profiles: profiles,
		avatars:  avatars,
		location: location,
	}
}

// Create writes the account first, then the profile under the same id. A
// failed profile insert deletes the just-created account so no login exists
// without a profile.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Profile, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return Profile{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().In(s.location)
	id := uuid.NewString()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "team"
	}

	account := models.Account{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Role:         models.AccountRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Profile{}, ErrDuplicateEmail
		}
		return Profile{}, fmt.Errorf("create account: %w", err)
	}

	profile := Profile{
		ID:        id,
		Email:     email,
		FullName:  strings.TrimSpace(req.FullName),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		_, _ = s.accounts.Delete(ctx, id)
		if mongo.IsDuplicateKeyError(err) {
			return Profile{}, ErrDuplicateEmail
		}
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}

	return profile, nil
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.profiles.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	profile, err := s.profiles.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return profile, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Profile, error) {
	set := bson.M{
		"full_name":  strings.TrimSpace(req.FullName),
		"role":       strings.TrimSpace(req.Role),
		"updated_at": time.Now().In(s.location),
	}

	updated, err := s.profiles.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return updated, nil
}

// Delete removes the auth identity first and the profile second. An identity
// failure aborts before the profile is touched. When the identity is gone and
// the profile delete keeps failing, the caller gets an OrphanProfileError so
// the window is visible instead of silent.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	accountDeleted, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	profileDeleted, err := s.profiles.Delete(ctx, id)
	if err != nil {
		// one retry before reporting the orphan
		profileDeleted, err = s.profiles.Delete(ctx, id)
	}
	if err != nil {
		if accountDeleted {
			return &OrphanProfileError{ID: id, Err: err}
		}
		return fmt.Errorf("delete profile: %w", err)
	}

	if !accountDeleted && !profileDeleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	matched, err := s.accounts.UpdatePasswordHash(ctx, strings.TrimSpace(id), hash)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

// StoreAvatar uploads the already-validated image under a deterministic key
// (overwriting any previous upload for the member) and persists the public
// URL on the profile. A stored object is not rolled back when the profile
// write fails.
func (s *Service) StoreAvatar(ctx context.Context, id, ext, contentType string, body io.Reader, size int64) (string, error) {
	id = strings.TrimSpace(id)

	if _, err := s.GetByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s.%s", id, ext)
	if err := s.avatars.Upload(ctx, key, contentType, body, size); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	url := s.avatars.PublicURL(key)
	if url == "" {
		return "", errors.New("resolve avatar url: empty public url")
	}

	set := bson.M{
		"avatar_url": url,
		"updated_at": time.Now().In(s.location),
	}
	if _, err := s.profiles.Update(ctx, id, set); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("update profile avatar: %w", err)
	}

	return url, nil
}
