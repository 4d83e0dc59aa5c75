package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
	"github.com/lumamail/lumamail-backend/internal/model"
	"github.com/lumamail/lumamail-backend/internal/repository"
)

type TemplateHandler struct {
	Repo repository.TemplateRepositoryInterface
}

type templatePayload struct {
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

func (p templatePayload) validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Subject) == "" || strings.TrimSpace(p.BodyHTML) == "" {
		return appErrors.NewValidation("template name, subject, and body are required")
	}
	return nil
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// GetTemplate feeds the compose page when the operator picks a template to
// copy into a new campaign.
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	template, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var p templatePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := p.validate(); err != nil {
		writeError(w, err)
		return
	}

	template := &model.EmailTemplate{
		Name:     strings.TrimSpace(p.Name),
		Subject:  strings.TrimSpace(p.Subject),
		BodyHTML: p.BodyHTML,
	}
	if err := h.Repo.Create(template); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	var p templatePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := p.validate(); err != nil {
		writeError(w, err)
		return
	}

	template := &model.EmailTemplate{
		ID:       id,
		Name:     strings.TrimSpace(p.Name),
		Subject:  strings.TrimSpace(p.Subject),
		BodyHTML: p.BodyHTML,
	}
	if err := h.Repo.Update(template); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
