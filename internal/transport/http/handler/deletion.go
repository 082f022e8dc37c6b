package handler

import (
	"net/http"

	"github.com/Nnvvee96/planora.ai-sub005/internal/application/deletion"
	"github.com/go-chi/chi/v5"
)

// DeletionHandler creates account deletion requests.
type DeletionHandler struct {
	svc deletion.Service
}

func NewDeletionHandler(svc deletion.Service) *DeletionHandler {
	return &DeletionHandler{svc: svc}
}

func (h *DeletionHandler) Request(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.Request(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, req)
}
