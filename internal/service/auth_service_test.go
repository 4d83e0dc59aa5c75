package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumamail/lumamail-backend/internal/auth"
	"github.com/lumamail/lumamail-backend/internal/config"
	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
)

type mockUserRepo struct {
	byEmail map[string]*model.User
	nextID  int
}

func (m *mockUserRepo) Create(u *model.User) error {
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	if m.byEmail == nil {
		m.byEmail = map[string]*model.User{}
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetByEmail(email string) (*model.User, error) {
	return m.byEmail[email], nil
}

var _ repository.UserRepositoryInterface = (*mockUserRepo)(nil)

func newAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	tokens, err := auth.NewManager(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
	require.NoError(t, err)

	repo := &mockUserRepo{}
	return &AuthService{
		Users:  repo,
		Tokens: tokens,
		Now:    time.Now,
	}, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	id, err := svc.Register("admin", "Admin@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	// Email comparison is case-insensitive on login.
	token, err := svc.Login("admin@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("admin", "admin@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register("admin2", "admin@example.com", "other")
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc, repo := newAuthService(t)

	_, err := svc.Register("", "admin@example.com", "pw")
	require.Error(t, err)
	_, err = svc.Register("admin", "", "pw")
	require.Error(t, err)
	_, err = svc.Register("admin", "admin@example.com", "")
	require.Error(t, err)

	assert.Empty(t, repo.byEmail)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("admin", "admin@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login("admin@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))

	_, err = svc.Login("nobody@example.com", "hunter22")
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}
