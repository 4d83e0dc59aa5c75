package service

import (
	"math"

	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
)

// CampaignPerformance is a campaign decorated with derived engagement rates
// for the analytics view.
type CampaignPerformance struct {
	model.Campaign
	OpenRate   float64 `json:"open_rate"`
	ClickRate  float64 `json:"click_rate"`
	BounceRate float64 `json:"bounce_rate"`
}

// OverallSummary is the whole-account rollup over sent campaigns.
type OverallSummary struct {
	repository.OverallTotals
	OverallOpenRate   float64 `json:"overall_open_rate"`
	OverallClickRate  float64 `json:"overall_click_rate"`
	OverallBounceRate float64 `json:"overall_bounce_rate"`
}

type AnalyticsService struct {
	AnalyticsRepo repository.AnalyticsRepositoryInterface
}

// Rate expresses part of whole as a percentage rounded to two decimals.
// A zero whole yields zero rather than dividing.
func Rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}

// CampaignPerformance lists non-draft campaigns with open/click/bounce rates.
// Open and click rates are relative to successful sends; bounce rate is
// relative to total recipients.
func (s *AnalyticsService) CampaignPerformance() ([]CampaignPerformance, error) {
	campaigns, err := s.AnalyticsRepo.ListCampaignPerformance()
	if err != nil {
		return nil, err
	}

	rows := make([]CampaignPerformance, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, CampaignPerformance{
			Campaign:   *c,
			OpenRate:   Rate(c.OpensCount, c.SuccessfullySent),
			ClickRate:  Rate(c.ClicksCount, c.SuccessfullySent),
			BounceRate: Rate(c.BouncesCount, c.TotalRecipients),
		})
	}
	return rows, nil
}

func (s *AnalyticsService) Summary() (OverallSummary, error) {
	totals, err := s.AnalyticsRepo.OverallTotals()
	if err != nil {
		return OverallSummary{}, err
	}
	return OverallSummary{
		OverallTotals:     totals,
		OverallOpenRate:   Rate(totals.Opens, totals.SuccessfullySent),
		OverallClickRate:  Rate(totals.Clicks, totals.SuccessfullySent),
		OverallBounceRate: Rate(totals.Bounces, totals.TotalRecipients),
	}, nil
}

func (s *AnalyticsService) Dashboard() (repository.DashboardStats, error) {
	return s.AnalyticsRepo.DashboardStats()
}
