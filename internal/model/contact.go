package model

import "time"

type Contact struct {
	ID        int        `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	Status    string     `db:"status" json:"status"` // subscribed, unsubscribed
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
