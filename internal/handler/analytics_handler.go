package handler

import (
	"net/http"

	"github.com/lumamail/lumamail-backend/internal/service"
)

type AnalyticsHandler struct {
	Service *service.AnalyticsService
}

func (h *AnalyticsHandler) CampaignPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.CampaignPerformance()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Dashboard()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
