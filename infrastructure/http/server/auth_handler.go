package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"chirptalks/auth"
	"chirptalks/domain"
	"chirptalks/errors"
	"chirptalks/services"
)

type AuthHandler struct {
	authService services.IAuthService
	log         *slog.Logger
}

func NewAuthHandler(authService services.IAuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register handles POST /auth/register. Success returns 201 without a
// token: the client logs in afterwards.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: invalid request body", errors.ErrInvalidInput))
		return
	}

	if err := h.authService.Register(req.Username, req.Email, req.Password); err != nil {
		writeError(w, h.log, err)
		return
	}

	h.log.Info("User registered", "username", req.Username)
	writeJSON(w, h.log, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

type loginResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// Login handles POST /auth/login. Unknown email and wrong password yield
// the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: invalid request body", errors.ErrInvalidInput))
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.log.Info("User logged in", "username", user.Username)
	writeJSON(w, h.log, http.StatusOK, loginResponse{Token: string(token), User: user})
}
