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

type ContactHandler struct {
	Repo repository.ContactRepositoryInterface
}

type contactPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"`
}

func (p contactPayload) validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return appErrors.NewValidation("contact email is required")
	}
	if !strings.Contains(p.Email, "@") {
		return appErrors.NewValidation("contact email is not a valid address")
	}
	return nil
}

func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}
	contact, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var p contactPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := p.validate(); err != nil {
		writeError(w, err)
		return
	}

	contact := &model.Contact{
		Email:     strings.TrimSpace(strings.ToLower(p.Email)),
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Status:    p.Status,
	}
	if err := h.Repo.Create(contact); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	var p contactPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := p.validate(); err != nil {
		writeError(w, err)
		return
	}

	contact := &model.Contact{
		ID:        id,
		Email:     strings.TrimSpace(strings.ToLower(p.Email)),
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Status:    p.Status,
	}
	if err := h.Repo.Update(contact); err != nil {
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

func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
