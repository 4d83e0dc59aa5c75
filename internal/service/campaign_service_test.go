package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
)

// mockCampaignRepo records the params of the last Save call.
type mockCampaignRepo struct {
	saved     []repository.SaveParams
	saveErr   error
	campaigns map[int]*model.Campaign
}

func (m *mockCampaignRepo) Save(p repository.SaveParams) (int, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.saved = append(m.saved, p)
	if p.CampaignID != 0 {
		return p.CampaignID, nil
	}
	return 42, nil
}

func (m *mockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	if c, ok := m.campaigns[id]; ok {
		return c, nil
	}
	return nil, appErrors.NewNotFound("campaign", id)
}

func (m *mockCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	return []*model.Campaign{}, 0, nil
}

func (m *mockCampaignRepo) ListRecipients(campaignID int) ([]model.CampaignRecipient, error) {
	return []model.CampaignRecipient{}, nil
}

func (m *mockCampaignRepo) FindDueCampaigns(now time.Time) ([]int, error) { return nil, nil }

func (m *mockCampaignRepo) FinalizeCampaign(id int, now time.Time) (bool, error) {
	return false, nil
}

var _ repository.CampaignRepositoryInterface = (*mockCampaignRepo)(nil)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestService(repo *mockCampaignRepo) *CampaignService {
	return &CampaignService{
		CampaignRepo: repo,
		Now:          func() time.Time { return testNow },
	}
}

func validInput() SaveCampaignInput {
	return SaveCampaignInput{
		Name:       "Spring Sale",
		Subject:    "Big savings inside",
		BodyHTML:   "<p>Hello</p>",
		Status:     "draft",
		ContactIDs: []int{1, 2, 3},
	}
}

func TestSaveCampaignRequiresCoreFields(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newTestService(repo)

	for _, mutate := range []func(*SaveCampaignInput){
		func(in *SaveCampaignInput) { in.Name = "" },
		func(in *SaveCampaignInput) { in.Subject = "   " },
		func(in *SaveCampaignInput) { in.BodyHTML = "" },
	} {
		in := validInput()
		mutate(&in)

		_, err := svc.SaveCampaign(in)
		require.Error(t, err)
		assert.True(t, appErrors.IsValidation(err))
	}

	// Validation failures must reject before the repository is touched.
	assert.Empty(t, repo.saved)
}

func TestSaveCampaignDraftHasNoTimestamps(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newTestService(repo)

	id, err := svc.SaveCampaign(validInput())
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	require.Len(t, repo.saved, 1)
	p := repo.saved[0]
	assert.Equal(t, model.StatusDraft, p.Status)
	assert.Nil(t, p.ScheduledAt)
	assert.Nil(t, p.SentAt)
}

func TestSaveCampaignUnknownStatusCoercesToDraft(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newTestService(repo)

	in := validInput()
	in.Status = "archived"
	in.ScheduledAt = "2025-07-01T09:00"

	_, err := svc.SaveCampaign(in)
	require.NoError(t, err)

	p := repo.saved[0]
	assert.Equal(t, model.StatusDraft, p.Status)
	assert.Nil(t, p.ScheduledAt)
	assert.Nil(t, p.SentAt)
}

func TestSaveCampaignScheduledNormalizesTime(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newTestService(repo)

	in := validInput()
	in.Status = "scheduled"
	in.ScheduledAt = "2025-07-01T09:00"

	_, err := svc.SaveCampaign(in)
	require.NoError(t, err)

	p := repo.saved[0]
	assert.Equal(t, model.StatusScheduled, p.Status)
	require.NotNil(t, p.ScheduledAt)
	assert.Equal(t, time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC), *p.ScheduledAt)
	assert.Nil(t, p.SentAt)
}

func TestSaveCampaignScheduledRequiresParseableTime(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newTestService(repo)

	for _, raw := range []string{"", "   ", "next tuesday", "2025-13-45T99:99"} {
		in := validInput()
		in.Status = "scheduled"
		in.ScheduledAt = raw

		_, err := svc.SaveCampaign(in)
		require.Error(t, err, "input %q", raw)
		assert.True(t, appErrors.IsValidation(err))
	}
	assert.Empty(t, repo.saved)
}

func TestSaveCampaignSentForcesTimestamps(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newTestService(repo)

	in := validInput()
	in.Status = "sent"
	in.ScheduledAt = "2025-07-01T09:00" // must be ignored

	_, err := svc.SaveCampaign(in)
	require.NoError(t, err)

	p := repo.saved[0]
	assert.Equal(t, model.StatusSent, p.Status)
	assert.Nil(t, p.ScheduledAt)
	require.NotNil(t, p.SentAt)
	assert.Equal(t, testNow, *p.SentAt)
}

func TestSaveCampaignPropagatesRepoErrors(t *testing.T) {
	repo := &mockCampaignRepo{saveErr: appErrors.NewPersistence("insert campaign", assert.AnError)}
	svc := newTestService(repo)

	_, err := svc.SaveCampaign(validInput())
	require.Error(t, err)
	assert.True(t, appErrors.IsPersistence(err))
}

func TestParseScheduleTimeLayouts(t *testing.T) {
	want := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

	for _, raw := range []string{
		"2025-07-01T09:30",
		"2025-07-01T09:30:00Z",
		"2025-07-01T09:30:00",
		"2025-07-01 09:30:00",
	} {
		got, err := ParseScheduleTime(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}
}

func TestListCampaignsClampsPagination(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newTestService(repo)

	_, pagination, err := svc.ListCampaigns(-1, 500, "")
	require.NoError(t, err)
	assert.Equal(t, 1, pagination["page"])
	assert.Equal(t, 100, pagination["page_size"])
}
