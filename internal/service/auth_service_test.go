package service

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/QuiambaoMichael/safetap-backend/internal/config"
	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
	apperrors "github.com/QuiambaoMichael/safetap-backend/pkg/util"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	f.byEmail[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byEmail {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) ExistsByEmailAndName(_ context.Context, email, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	return ok && user.Name == name, nil
}

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
}

func TestRegisterUserAlwaysGetsUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	user, token, _, err := svc.RegisterUser(context.Background(), "Ann", "a@x.com", "secret")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, token)

	stored := repo.byEmail["a@x.com"]
	require.Equal(t, domain.RoleUser, stored.Role, "signup must not grant any other role")
}

func TestRegisterUserDuplicateEmailConflicts(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	_, _, _, err := svc.RegisterUser(context.Background(), "Ann", "a@x.com", "secret")
	require.NoError(t, err)

	_, _, _, err = svc.RegisterUser(context.Background(), "Another Ann", "a@x.com", "secret")
	require.Error(t, err)
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestRegisterUserRequiresAllFields(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	_, _, _, err := svc.RegisterUser(context.Background(), "", "a@x.com", "secret")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	registered, _, _, err := svc.RegisterUser(context.Background(), "Ann", "a@x.com", "secret")
	require.NoError(t, err)

	user, token, _, err := svc.LoginUser(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	_, _, _, err = svc.LoginUser(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.LoginUser(context.Background(), "nobody@x.com", "secret")
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

// The registered-user directory is what Submit consults; a fresh signup must
// immediately satisfy the identity check.
func TestRegisteredUserPassesIdentityLookup(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, _, err := svc.RegisterUser(context.Background(), "Ann", "a@x.com", "secret")
	require.NoError(t, err)

	found, err := repo.ExistsByEmailAndName(context.Background(), "a@x.com", "Ann")
	require.NoError(t, err)
	require.True(t, found)

	found, err = repo.ExistsByEmailAndName(context.Background(), "a@x.com", "ann")
	require.NoError(t, err)
	require.False(t, found, "name match is case-sensitive")
}
