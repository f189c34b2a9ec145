package api

import (
	"log/slog"
	"net/http"

	"github.com/denizak/lootledger/internal/auth"
	"github.com/denizak/lootledger/internal/middleware"
)

// AuthHandler serves login, logout and session checks.
type AuthHandler struct {
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.Authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Username)
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.JWT.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	slog.Info("Login successful", "username", user.Username, "role", user.Role)
	respondOK(w, envelope{
		"token": token,
		"user":  envelope{"username": user.Username, "role": user.Role},
	})
}

// Logout acknowledges the logout. Sessions are stateless tokens, so the
// client discards the token; nothing is kept server side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondOK(w, envelope{"message": "logged out"})
}

// Session reports whether the request carries a valid session and who it
// belongs to.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := middleware.SessionClaims(r.Context())
	if claims == nil {
		respondOK(w, envelope{"authenticated": false})
		return
	}
	respondOK(w, envelope{
		"authenticated": true,
		"user":          envelope{"username": claims.Username, "role": claims.Role},
	})
}
