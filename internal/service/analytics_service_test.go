package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
)

type mockAnalyticsRepo struct {
	campaigns []*model.Campaign
	totals    repository.OverallTotals
}

func (m *mockAnalyticsRepo) ListCampaignPerformance() ([]*model.Campaign, error) {
	return m.campaigns, nil
}

func (m *mockAnalyticsRepo) OverallTotals() (repository.OverallTotals, error) {
	return m.totals, nil
}

func (m *mockAnalyticsRepo) DashboardStats() (repository.DashboardStats, error) {
	return repository.DashboardStats{}, nil
}

var _ repository.AnalyticsRepositoryInterface = (*mockAnalyticsRepo)(nil)

func TestRate(t *testing.T) {
	assert.Equal(t, 50.0, Rate(1, 2))
	assert.Equal(t, 33.33, Rate(1, 3))
	assert.Equal(t, 66.67, Rate(2, 3))
	assert.Equal(t, 0.0, Rate(5, 0))  // zero-guard
	assert.Equal(t, 0.0, Rate(5, -1)) // zero-guard
	assert.Equal(t, 0.0, Rate(0, 10))
}

func TestCampaignPerformanceRates(t *testing.T) {
	repo := &mockAnalyticsRepo{campaigns: []*model.Campaign{
		{
			ID:               1,
			Status:           model.StatusSent,
			TotalRecipients:  200,
			SuccessfullySent: 100,
			OpensCount:       40,
			ClicksCount:      10,
			BouncesCount:     5,
		},
		{
			// Scheduled campaign with nothing sent yet: every rate stays 0.
			ID:              2,
			Status:          model.StatusScheduled,
			TotalRecipients: 0,
		},
	}}
	svc := &AnalyticsService{AnalyticsRepo: repo}

	rows, err := svc.CampaignPerformance()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 40.0, rows[0].OpenRate)
	assert.Equal(t, 10.0, rows[0].ClickRate)
	assert.Equal(t, 2.5, rows[0].BounceRate)

	assert.Zero(t, rows[1].OpenRate)
	assert.Zero(t, rows[1].ClickRate)
	assert.Zero(t, rows[1].BounceRate)
}

func TestSummaryRates(t *testing.T) {
	repo := &mockAnalyticsRepo{totals: repository.OverallTotals{
		CampaignsSent:    3,
		TotalRecipients:  1000,
		SuccessfullySent: 800,
		Opens:            200,
		Clicks:           80,
		Bounces:          50,
	}}
	svc := &AnalyticsService{AnalyticsRepo: repo}

	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.Equal(t, 3, summary.CampaignsSent)
	assert.Equal(t, 25.0, summary.OverallOpenRate)
	assert.Equal(t, 10.0, summary.OverallClickRate)
	assert.Equal(t, 5.0, summary.OverallBounceRate)
}
