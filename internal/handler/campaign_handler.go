package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lumamail/lumamail-backend/internal/service"
)

// CampaignHandler exposes the compose/edit workflow over HTTP.
type CampaignHandler struct {
	Service *service.CampaignService
}

// CreateCampaign handles POST /campaigns: the compose form's save draft,
// schedule, and send now actions all land here.
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in service.SaveCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	in.CampaignID = 0

	id, err := h.Service.SaveCampaign(in)
	if err != nil {
		writeError(w, err)
		return
	}

	campaign, err := h.Service.GetCampaign(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

// UpdateCampaign handles PUT /campaigns/{id}: a full re-save, replacing the
// recipient selection wholesale.
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var in service.SaveCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	in.CampaignID = id

	if _, err := h.Service.SaveCampaign(in); err != nil {
		writeError(w, err)
		return
	}

	campaign, err := h.Service.GetCampaign(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := h.Service.GetCampaign(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	campaigns, pagination, err := h.Service.ListCampaigns(page, pageSize, status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func (h *CampaignHandler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	recipients, err := h.Service.GetRecipients(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaign_id": id,
		"recipients":  recipients,
	})
}
