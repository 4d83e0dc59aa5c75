package handler

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses. The error text is
// shown verbatim to the operator.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case appErrors.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case appErrors.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
