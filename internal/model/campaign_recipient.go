package model

import "time"

// RecipientStatus tracks a materialised recipient row. Rows are created as
// targeted and moved to sim_sent by the scheduler when the campaign goes out.
type RecipientStatus string

const (
	RecipientTargeted RecipientStatus = "targeted"
	RecipientSimSent  RecipientStatus = "sim_sent"
)

// CampaignRecipient snapshots a contact's email address at the moment it was
// attached to a campaign, so later contact edits never rewrite history.
type CampaignRecipient struct {
	ID           int             `db:"id" json:"id"`
	CampaignID   int             `db:"campaign_id" json:"campaign_id"`
	ContactID    int             `db:"contact_id" json:"contact_id"`
	EmailAddress string          `db:"email_address" json:"email_address"`
	Status       RecipientStatus `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}
