package repository

import (
	"database/sql"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
)

type UserRepositoryInterface interface {
	Create(u *model.User) error
	GetByEmail(email string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) Create(u *model.User) error {
	query := `
        INSERT INTO users (username, email, password)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.DB.QueryRow(query, u.Username, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return appErrors.NewPersistence("insert user", err)
	}
	return nil
}

// GetByEmail returns nil without error when no user matches.
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	query := `SELECT id, username, email, password, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.DB.QueryRow(query, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, appErrors.NewPersistence("get user", err)
	}
	return &u, nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
