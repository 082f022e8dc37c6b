package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/Nnvvee96/planora.ai-sub005/internal/application/preferences"
	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

// PreferencesHandler handles travel preference endpoints.
type PreferencesHandler struct {
	svc preferences.Service
}

func NewPreferencesHandler(svc preferences.Service) *PreferencesHandler {
	return &PreferencesHandler{svc: svc}
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req domain.TravelPreferences
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.Put(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
