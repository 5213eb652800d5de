package team

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"globtek-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeAccounts struct {
	byID       map[string]models.Account
	createErr  error
	deleteErr  error
	deleteLog  []string
	updateHash map[string]string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byID:       make(map[string]models.Account),
		updateHash: make(map[string]string),
	}
}

func (f *fakeAccounts) Create(ctx context.Context, account models.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == account.Email {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	f.byID[account.ID] = account
	return nil
}

func (f *fakeAccounts) Delete(ctx context.Context, id string) (bool, error) {
	f.deleteLog = append(f.deleteLog, id)
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeAccounts) UpdatePasswordHash(ctx context.Context, id, hash string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	f.updateHash[id] = hash
	return true, nil
}

type fakeProfiles struct {
	byID       map[string]Profile
	createErr  error
	deleteErrs []error // consumed one per Delete call
	deleteLog  []string
	updates    []bson.M
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: make(map[string]Profile)}
}

func (f *fakeProfiles) Create(ctx context.Context, profile Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[profile.ID] = profile
	return nil
}

func (f *fakeProfiles) Update(ctx context.Context, id string, set bson.M) (Profile, error) {
	profile, ok := f.byID[id]
	if !ok {
		return Profile{}, mongo.ErrNoDocuments
	}
	if v, ok := set["avatar_url"].(string); ok {
		profile.AvatarURL = v
	}
	if v, ok := set["full_name"].(string); ok {
		profile.FullName = v
	}
	f.byID[id] = profile
	f.updates = append(f.updates, set)
	return profile, nil
}

func (f *fakeProfiles) Delete(ctx context.Context, id string) (bool, error) {
	f.deleteLog = append(f.deleteLog, id)
	if len(f.deleteErrs) > 0 {
		err := f.deleteErrs[0]
		f.deleteErrs = f.deleteErrs[1:]
		if err != nil {
			return false, err
		}
	}
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeProfiles) GetByID(ctx context.Context, id string) (Profile, error) {
	profile, ok := f.byID[id]
	if !ok {
		return Profile{}, mongo.ErrNoDocuments
	}
	return profile, nil
}

func (f *fakeProfiles) List(ctx context.Context) ([]Profile, error) {
	out := make([]Profile, 0, len(f.byID))
	for _, profile := range f.byID {
		out = append(out, profile)
	}
	return out, nil
}

type fakeAvatars struct {
	uploads   []string
	uploadErr error
	baseURL   string
}

func (f *fakeAvatars) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeAvatars) PublicURL(key string) string {
	return f.baseURL + "/" + key
}

func seedMember(t *testing.T, accounts *fakeAccounts, profiles *fakeProfiles, id string) {
	t.Helper()
	now := time.Now().UTC()
	accounts.byID[id] = models.Account{ID: id, Email: id + "@globtek.co.za", Role: models.AccountRoleAdmin, CreatedAt: now}
	profiles.byID[id] = Profile{ID: id, Email: id + "@globtek.co.za", FullName: "Member " + id, Role: "team", CreatedAt: now}
}

func TestCreateSharesIDAcrossStores(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	svc := NewService(accounts, profiles, nil, time.UTC)

	profile, err := svc.Create(context.Background(), CreateRequest{
		Email:    "Thandi.Nkosi@Globtek.co.za",
		Password: "correct-horse",
		FullName: "Thandi Nkosi",
	})
	require.NoError(t, err)

	assert.Equal(t, "thandi.nkosi@globtek.co.za", profile.Email, "email is normalised")
	assert.Equal(t, "team", profile.Role, "role defaults when omitted")

	account, ok := accounts.byID[profile.ID]
	require.True(t, ok, "account stored under the same id as the profile")
	assert.Equal(t, profile.Email, account.Email)
	assert.NotEqual(t, "correct-horse", account.PasswordHash)
}

func TestCreateRollsBackAccountOnProfileFailure(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	profiles.createErr = errors.New("profile write failed")
	svc := NewService(accounts, profiles, nil, time.UTC)

	_, err := svc.Create(context.Background(), CreateRequest{
		Email:    "sipho@globtek.co.za",
		Password: "correct-horse",
		FullName: "Sipho Dlamini",
	})
	require.Error(t, err)

	assert.Empty(t, accounts.byID, "account insert is rolled back")
	require.Len(t, accounts.deleteLog, 1, "rollback issues exactly one account delete")
}

func TestCreateDuplicateEmail(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	svc := NewService(accounts, profiles, nil, time.UTC)

	req := CreateRequest{Email: "lindi@globtek.co.za", Password: "correct-horse", FullName: "Lindi"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDeleteAccountErrorAbortsProfileDelete(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	seedMember(t, accounts, profiles, "m1")
	accounts.deleteErr = errors.New("auth store unavailable")
	svc := NewService(accounts, profiles, nil, time.UTC)

	err := svc.Delete(context.Background(), "m1")
	require.Error(t, err)

	assert.Empty(t, profiles.deleteLog, "profile delete must not run when account delete fails")
	_, ok := profiles.byID["m1"]
	assert.True(t, ok, "profile survives an aborted delete")
}

func TestDeleteHappyPathRemovesBoth(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	seedMember(t, accounts, profiles, "m1")
	svc := NewService(accounts, profiles, nil, time.UTC)

	require.NoError(t, svc.Delete(context.Background(), "m1"))
	assert.Empty(t, accounts.byID)
	assert.Empty(t, profiles.byID)
}

func TestDeleteProfileFailureRetriesOnce(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	seedMember(t, accounts, profiles, "m1")
	profiles.deleteErrs = []error{errors.New("transient")}
	svc := NewService(accounts, profiles, nil, time.UTC)

	require.NoError(t, svc.Delete(context.Background(), "m1"))
	assert.Len(t, profiles.deleteLog, 2, "second attempt succeeds")
	assert.Empty(t, profiles.byID)
}

func TestDeleteReportsOrphanedProfile(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	seedMember(t, accounts, profiles, "m1")
	cause := errors.New("profile store down")
	profiles.deleteErrs = []error{cause, cause}
	svc := NewService(accounts, profiles, nil, time.UTC)

	err := svc.Delete(context.Background(), "m1")
	require.Error(t, err)

	var orphan *OrphanProfileError
	require.ErrorAs(t, err, &orphan)
	assert.Equal(t, "m1", orphan.ID)
	assert.ErrorIs(t, err, cause)

	assert.Empty(t, accounts.byID, "account side of the delete stands")
	_, ok := profiles.byID["m1"]
	assert.True(t, ok, "orphaned profile row is still present")
}

func TestDeleteUnknownMember(t *testing.T) {
	svc := NewService(newFakeAccounts(), newFakeProfiles(), nil, time.UTC)
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreAvatarUpsertsDeterministicKey(t *testing.T) {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	avatars := &fakeAvatars{baseURL: "https://cdn.globtek.co.za"}
	seedMember(t, accounts, profiles, "m1")
	svc := NewService(accounts, profiles, avatars, time.UTC)

	url, err := svc.StoreAvatar(context.Background(), "m1", "png", "image/png", bytes8(), 8)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.globtek.co.za/avatars/m1.png", url)
	assert.Equal(t, url, profiles.byID["m1"].AvatarURL)

	_, err = svc.StoreAvatar(context.Background(), "m1", "png", "image/png", bytes8(), 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"avatars/m1.png", "avatars/m1.png"}, avatars.uploads, "same member overwrites the same key")
}

func TestStoreAvatarUnknownMemberSkipsUpload(t *testing.T) {
	avatars := &fakeAvatars{baseURL: "https://cdn.globtek.co.za"}
	svc := NewService(newFakeAccounts(), newFakeProfiles(), avatars, time.UTC)

	_, err := svc.StoreAvatar(context.Background(), "missing", "png", "image/png", bytes8(), 8)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, avatars.uploads)
}

func bytes8() io.Reader {
	return io.LimitReader(neverEnding('a'), 8)
}

type neverEnding byte

func (b neverEnding) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b)
	}
	return len(p), nil
}
