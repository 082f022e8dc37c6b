package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Nnvvee96/planora.ai-sub005/internal/application/signup"
	"github.com/Nnvvee96/planora.ai-sub005/internal/pkg/validate"
)

// SignupHandler handles the verification-code signup endpoint.
type SignupHandler struct {
	svc signup.Service
}

func NewSignupHandler(svc signup.Service) *SignupHandler {
	return &SignupHandler{svc: svc}
}

// signupRequest is the tagged-union request body: action selects which typed
// payload the endpoint decodes.
type signupRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Action dispatches initiate-signup / complete-signup. Every handled failure
// maps to 400 with an error body; retrying is the caller's responsibility.
func (h *SignupHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Action {
	case "initiate-signup":
		var payload signup.InitiateRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid initiate-signup payload")
			return
		}
		if err := validate.Struct(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.svc.InitiateSignup(r.Context(), payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
	case "complete-signup":
		var payload signup.CompleteRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid complete-signup payload")
			return
		}
		if err := validate.Struct(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		userID, err := h.svc.CompleteSignup(r.Context(), payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, SignupEnvelope{Message: "signup completed", UserID: userID})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
