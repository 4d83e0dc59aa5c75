package repository

import (
	"database/sql"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
)

// OverallTotals aggregates counters across all sent campaigns.
type OverallTotals struct {
	CampaignsSent    int `json:"total_campaigns_sent"`
	TotalRecipients  int `json:"grand_total_recipients"`
	SuccessfullySent int `json:"grand_total_successfully_sent"`
	Opens            int `json:"grand_total_opens"`
	Clicks           int `json:"grand_total_clicks"`
	Bounces          int `json:"grand_total_bounces"`
}

// DashboardStats is the at-a-glance view of the whole workspace.
type DashboardStats struct {
	TotalContacts      int `json:"total_contacts"`
	TotalCampaigns     int `json:"total_campaigns"`
	DraftCampaigns     int `json:"draft_campaigns"`
	ScheduledCampaigns int `json:"scheduled_campaigns"`
	SentCampaigns      int `json:"sent_campaigns"`
}

type AnalyticsRepositoryInterface interface {
	ListCampaignPerformance() ([]*model.Campaign, error)
	OverallTotals() (OverallTotals, error)
	DashboardStats() (DashboardStats, error)
}

type AnalyticsRepository struct {
	DB *sql.DB
}

// ListCampaignPerformance returns every non-draft campaign, most recently
// sent first (created_at stands in for campaigns not yet sent).
func (r *AnalyticsRepository) ListCampaignPerformance() ([]*model.Campaign, error) {
	query := `
        SELECT id, name, subject, body_html, status, created_at, scheduled_at, sent_at,
               total_recipients, successfully_sent, opens_count, clicks_count, bounces_count
        FROM campaigns
        WHERE status != 'draft'
        ORDER BY COALESCE(sent_at, created_at) DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, appErrors.NewPersistence("list campaign performance", err)
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Subject, &c.BodyHTML, &c.Status, &c.CreatedAt, &c.ScheduledAt, &c.SentAt,
			&c.TotalRecipients, &c.SuccessfullySent, &c.OpensCount, &c.ClicksCount, &c.BouncesCount,
		); err != nil {
			return nil, appErrors.NewPersistence("scan campaign performance", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewPersistence("list campaign performance", err)
	}
	return campaigns, nil
}

func (r *AnalyticsRepository) OverallTotals() (OverallTotals, error) {
	query := `
        SELECT COUNT(id),
               COALESCE(SUM(total_recipients), 0),
               COALESCE(SUM(successfully_sent), 0),
               COALESCE(SUM(opens_count), 0),
               COALESCE(SUM(clicks_count), 0),
               COALESCE(SUM(bounces_count), 0)
        FROM campaigns
        WHERE status='sent'
    `
	var t OverallTotals
	err := r.DB.QueryRow(query).Scan(
		&t.CampaignsSent, &t.TotalRecipients, &t.SuccessfullySent,
		&t.Opens, &t.Clicks, &t.Bounces,
	)
	if err != nil {
		return OverallTotals{}, appErrors.NewPersistence("overall totals", err)
	}
	return t, nil
}

func (r *AnalyticsRepository) DashboardStats() (DashboardStats, error) {
	var s DashboardStats
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&s.TotalContacts); err != nil {
		return DashboardStats{}, appErrors.NewPersistence("dashboard contacts", err)
	}

	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM campaigns GROUP BY status`)
	if err != nil {
		return DashboardStats{}, appErrors.NewPersistence("dashboard campaigns", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return DashboardStats{}, appErrors.NewPersistence("scan dashboard row", err)
		}
		switch model.CampaignStatus(status) {
		case model.StatusDraft:
			s.DraftCampaigns = count
		case model.StatusScheduled:
			s.ScheduledCampaigns = count
		case model.StatusSent:
			s.SentCampaigns = count
		}
		s.TotalCampaigns += count
	}
	if err := rows.Err(); err != nil {
		return DashboardStats{}, appErrors.NewPersistence("dashboard campaigns", err)
	}
	return s, nil
}

var _ AnalyticsRepositoryInterface = (*AnalyticsRepository)(nil)
