package model

import (
	"strings"
	"time"
)

// CampaignStatus is the closed set of campaign lifecycle states. A draft can
// be scheduled and unscheduled freely; once a campaign is sent it stays sent.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusScheduled CampaignStatus = "scheduled"
	StatusSent      CampaignStatus = "sent"
)

// ParseCampaignStatus normalises a raw status string. Anything that is not
// scheduled or sent (in any casing) falls back to draft.
func ParseCampaignStatus(s string) CampaignStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusScheduled):
		return StatusScheduled
	case string(StatusSent):
		return StatusSent
	default:
		return StatusDraft
	}
}

type Campaign struct {
	ID               int            `db:"id" json:"id"`
	Name             string         `db:"name" json:"name"`
	Subject          string         `db:"subject" json:"subject"`
	BodyHTML         string         `db:"body_html" json:"body_html"`
	Status           CampaignStatus `db:"status" json:"status"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	ScheduledAt      *time.Time     `db:"scheduled_at" json:"scheduled_at,omitempty"`
	SentAt           *time.Time     `db:"sent_at" json:"sent_at,omitempty"`
	TotalRecipients  int            `db:"total_recipients" json:"total_recipients"`
	SuccessfullySent int            `db:"successfully_sent" json:"successfully_sent"`
	OpensCount       int            `db:"opens_count" json:"opens_count"`
	ClicksCount      int            `db:"clicks_count" json:"clicks_count"`
	BouncesCount     int            `db:"bounces_count" json:"bounces_count"`
}
