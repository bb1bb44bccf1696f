package handler

import (
	"encoding/json"
	"net/http"

	"github.com/otp-auth-api/internal/application/verification"
	"github.com/otp-auth-api/internal/pkg/validate"
)

// AuthHandler handles the code-based authentication flows.
type AuthHandler struct {
	svc verification.Service
}

func NewAuthHandler(svc verification.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SendCodeRequest struct {
	Mobile string `json:"mobile" validate:"required,mobile"`
}

type LoginVerifyRequest struct {
	Mobile string `json:"mobile" validate:"required,mobile"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

func (h *AuthHandler) SendRegisterCode(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSendCode(w, r)
	if !ok {
		return
	}
	if err := h.svc.RequestRegisterCode(r.Context(), req.Mobile); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "code sent"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req verification.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	u, pair, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		User:         toSafeUser(u),
	})
}

func (h *AuthHandler) SendLoginCode(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSendCode(w, r)
	if !ok {
		return
	}
	if err := h.svc.RequestLoginCode(r.Context(), req.Mobile); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "code sent"})
}

func (h *AuthHandler) LoginVerify(w http.ResponseWriter, r *http.Request) {
	var req LoginVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	u, pair, err := h.svc.LoginWithCode(r.Context(), req.Mobile, req.Code)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		User:         toSafeUser(u),
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSendCode(w, r)
	if !ok {
		return
	}
	if err := h.svc.RequestPasswordReset(r.Context(), req.Mobile); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "code sent"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req verification.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password updated"})
}

func decodeSendCode(w http.ResponseWriter, r *http.Request) (SendCodeRequest, bool) {
	var req SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return req, false
	}
	return req, true
}
