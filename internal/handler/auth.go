// Package handler provides HTTP handlers for the stub auth server.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"auwalk/internal/auth"
	"auwalk/internal/middleware"
	"auwalk/pkg/errors"
	"auwalk/pkg/logger"
	"auwalk/pkg/validator"
)

// LoginService is the part of auth.Service the handler needs.
type LoginService interface {
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	service   LoginService
	validator *validator.Validator
	logger    logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service LoginService, val *validator.Validator, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: val,
		logger:    log,
	}
}

// loginBody keeps missing fields apart from empty ones: a missing or null
// field is a bad request, an empty one is just a wrong credential.
type loginBody struct {
	Email *string `json:"email" validate:"required"`
	Senha *string `json:"senha" validate:"required"`
}

// Login checks credentials. Wrong credentials still answer 200 with
// success=false and a null token, as the legacy backend does. Unknown
// fields are ignored.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if err == io.EOF {
			h.respondError(w, http.StatusBadRequest, "Request body is required")
			return
		}
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.ValidateStructured(&body); fields != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": fields,
		})
		return
	}

	req := auth.LoginRequest{Email: *body.Email, Senha: *body.Senha}
	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidCredentials) {
			h.logger.Info("Login rejected", map[string]interface{}{
				"email":      req.Email,
				"request_id": middleware.RequestIDFromContext(r.Context()),
			})
			h.respondJSON(w, http.StatusOK, &auth.LoginResponse{Success: false})
			return
		}

		h.logger.Error("Login failed", map[string]interface{}{
			"error":      err.Error(),
			"request_id": middleware.RequestIDFromContext(r.Context()),
		})
		h.respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// Me returns the email carried by the caller's token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"email": email})
}

func (h *AuthHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *AuthHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
