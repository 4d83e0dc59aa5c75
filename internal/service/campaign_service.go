package service

import (
	"strings"
	"time"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
)

// scheduleLayouts are the accepted input formats for a scheduled send time,
// tried in order. The first is what an HTML datetime-local input produces.
var scheduleLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	Now          func() time.Time
}

// SaveCampaignInput carries the raw compose/edit form submission.
type SaveCampaignInput struct {
	CampaignID  int    `json:"campaign_id,omitempty"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	BodyHTML    string `json:"body_html"`
	Status      string `json:"status"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	ContactIDs  []int  `json:"contact_ids"`
}

// SaveCampaign validates and normalises the submission, then hands the
// repository one atomic save. Validation failures surface before any
// persistence is attempted.
//
// Timestamp rules: sent gets sent_at=now and never a scheduled_at, even if
// one was submitted; scheduled requires a parseable schedule time; anything
// else is coerced to draft with both timestamps null.
func (s *CampaignService) SaveCampaign(in SaveCampaignInput) (int, error) {
	name := strings.TrimSpace(in.Name)
	subject := strings.TrimSpace(in.Subject)
	bodyHTML := strings.TrimSpace(in.BodyHTML)
	if name == "" || subject == "" || bodyHTML == "" {
		return 0, appErrors.NewValidation("campaign name, subject, and body are required")
	}

	status := model.ParseCampaignStatus(in.Status)

	var scheduledAt, sentAt *time.Time
	switch status {
	case model.StatusSent:
		now := s.Now()
		sentAt = &now
	case model.StatusScheduled:
		if strings.TrimSpace(in.ScheduledAt) == "" {
			return 0, appErrors.NewValidation("scheduled date/time is required for scheduled campaigns")
		}
		t, err := ParseScheduleTime(in.ScheduledAt)
		if err != nil {
			return 0, appErrors.NewValidation("invalid scheduled date/time format: %s", in.ScheduledAt)
		}
		scheduledAt = &t
	}

	return s.CampaignRepo.Save(repository.SaveParams{
		CampaignID:  in.CampaignID,
		Name:        name,
		Subject:     subject,
		BodyHTML:    bodyHTML,
		Status:      status,
		ScheduledAt: scheduledAt,
		SentAt:      sentAt,
		ContactIDs:  in.ContactIDs,
	})
}

// ParseScheduleTime normalises a schedule input to a canonical UTC timestamp
// at second precision.
func ParseScheduleTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range scheduleLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (s *CampaignService) GetCampaign(id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) GetRecipients(campaignID int) ([]model.CampaignRecipient, error) {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return nil, err
	}
	return s.CampaignRepo.ListRecipients(campaignID)
}

// ListCampaigns fetches campaigns with pagination.
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}
