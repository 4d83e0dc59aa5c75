package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
	"github.com/lumamail/lumamail-backend/internal/service"
)

type stubCampaignRepo struct {
	campaigns map[int]*model.Campaign
	saved     []repository.SaveParams
}

func (s *stubCampaignRepo) Save(p repository.SaveParams) (int, error) {
	s.saved = append(s.saved, p)
	id := p.CampaignID
	if id == 0 {
		id = 42
	}
	if s.campaigns == nil {
		s.campaigns = map[int]*model.Campaign{}
	}
	s.campaigns[id] = &model.Campaign{
		ID:       id,
		Name:     p.Name,
		Subject:  p.Subject,
		BodyHTML: p.BodyHTML,
		Status:   p.Status,
	}
	return id, nil
}

func (s *stubCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	if c, ok := s.campaigns[id]; ok {
		return c, nil
	}
	return nil, appErrors.NewNotFound("campaign", id)
}

func (s *stubCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	return []*model.Campaign{}, 0, nil
}

func (s *stubCampaignRepo) ListRecipients(campaignID int) ([]model.CampaignRecipient, error) {
	return []model.CampaignRecipient{}, nil
}

func (s *stubCampaignRepo) FindDueCampaigns(now time.Time) ([]int, error) { return nil, nil }

func (s *stubCampaignRepo) FinalizeCampaign(id int, now time.Time) (bool, error) {
	return false, nil
}

var _ repository.CampaignRepositoryInterface = (*stubCampaignRepo)(nil)

func newCampaignRouter(repo *stubCampaignRepo) http.Handler {
	h := &CampaignHandler{Service: &service.CampaignService{
		CampaignRepo: repo,
		Now:          time.Now,
	}}
	r := chi.NewRouter()
	r.Post("/campaigns", h.CreateCampaign)
	r.Get("/campaigns/{id}", h.GetCampaign)
	r.Put("/campaigns/{id}", h.UpdateCampaign)
	return r
}

func TestCreateCampaignHandler(t *testing.T) {
	repo := &stubCampaignRepo{}
	router := newCampaignRouter(repo)

	body := `{"name":"Spring Sale","subject":"Hi","body_html":"<p>Hi</p>","status":"draft","contact_ids":[1,2]}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, []int{1, 2}, repo.saved[0].ContactIDs)
	assert.Contains(t, rec.Body.String(), `"id":42`)
}

func TestCreateCampaignHandlerValidation(t *testing.T) {
	router := newCampaignRouter(&stubCampaignRepo{})

	body := `{"name":"","subject":"Hi","body_html":"<p>Hi</p>","status":"draft"}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCampaignHandlerNotFound(t *testing.T) {
	router := newCampaignRouter(&stubCampaignRepo{})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCampaignHandler(t *testing.T) {
	repo := &stubCampaignRepo{campaigns: map[int]*model.Campaign{
		5: {ID: 5, Name: "Old", Status: model.StatusDraft},
	}}
	router := newCampaignRouter(repo)

	body := `{"name":"New Name","subject":"Hi","body_html":"<p>Hi</p>","status":"draft","contact_ids":[3]}`
	req := httptest.NewRequest(http.MethodPut, "/campaigns/5", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, 5, repo.saved[0].CampaignID)
	assert.Contains(t, rec.Body.String(), "New Name")
}
