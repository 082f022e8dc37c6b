package handler

import (
	"net/http"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/application/purge"
)

// PurgeHandler exposes the purge trigger for the external scheduler.
type PurgeHandler struct {
	svc purge.Service
}

func NewPurgeHandler(svc purge.Service) *PurgeHandler {
	return &PurgeHandler{svc: svc}
}

// Run executes one purge cycle. Per-user failures land in the report; only a
// failure to enumerate candidates is a 500.
func (h *PurgeHandler) Run(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.RunCycle(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}
