package service

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumamail/lumamail-backend/internal/auth"
	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
)

type AuthService struct {
	Users  repository.UserRepositoryInterface
	Tokens *auth.Manager
	Now    func() time.Time
}

// Register creates an admin user with a bcrypt-hashed password and returns
// the new user id.
func (s *AuthService) Register(username, email, password string) (int, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return 0, appErrors.NewValidation("username, email, and password are required")
	}

	existing, err := s.Users.GetByEmail(email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, appErrors.NewValidation("a user with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Users.Create(user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login verifies credentials and issues an access token. Wrong email and
// wrong password produce the same error text.
func (s *AuthService) Login(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.Users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", appErrors.NewValidation("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", appErrors.NewValidation("invalid email or password")
	}

	return s.Tokens.Issue(s.Now(), user.ID, user.Username)
}
