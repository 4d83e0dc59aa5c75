package model

import "time"

// EmailTemplate is reusable subject/body content the compose page can copy
// into a new campaign.
type EmailTemplate struct {
	ID        int        `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Subject   string     `db:"subject" json:"subject"`
	BodyHTML  string     `db:"body_html" json:"body_html"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
