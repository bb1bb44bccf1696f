package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otp-auth-api/internal/application/allowlist"
	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/pkg/validate"
)

// AllowListHandler handles allow-list management endpoints.
type AllowListHandler struct {
	svc allowlist.Service
}

func NewAllowListHandler(svc allowlist.Service) *AllowListHandler {
	return &AllowListHandler{svc: svc}
}

func (h *AllowListHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": entries})
}

func (h *AllowListHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAllowListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	e, err := h.svc.Add(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *AllowListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	mobile := chi.URLParam(r, "mobile")
	if !validate.Mobile(mobile) {
		writeError(w, http.StatusBadRequest, "invalid mobile")
		return
	}
	if err := h.svc.Remove(r.Context(), mobile); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "entry removed"})
}
