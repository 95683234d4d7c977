package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/tasklist/backend/internal/auth/service"
	commonhttp "github.com/AlibekovAA/tasklist/backend/internal/common/http"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
)

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewHandler(auth *service.AuthService, log *logger.Logger) *Handler {
	return &Handler{auth: auth, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req service.Credentials
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "register_invalid_json"}).Warnf("register failed: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if err := h.auth.Register(context.WithoutCancel(r.Context()), req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteSuccess(w)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req service.Credentials
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_invalid_json"}).Warnf("login failed: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	result, err := h.auth.Login(context.WithoutCancel(r.Context()), req)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}
