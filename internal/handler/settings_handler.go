package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lumamail/lumamail-backend/internal/repository"
)

type SettingsHandler struct {
	Repo repository.SettingsRepositoryInterface
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.GetAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings upserts every key in the request body as one atomic save.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpsertAll(body); err != nil {
		writeError(w, err)
		return
	}

	settings, err := h.Repo.GetAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
