package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"transitdesk/internal/security"
	"transitdesk/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	APIToken string `json:"apiToken"`
}

// Login authenticates a user, sets the session cookie and returns a
// bearer token for API clients
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Login failed", "Login error", err)
		return
	}

	apiToken, err := h.authService.IssueAPIToken(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Login failed", "Token issue error", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))

	respondWithJSON(w, http.StatusOK, loginResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     string(user.Role),
		APIToken: apiToken,
	})
}

// Logout invalidates the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Logout failed", "Logout error", err)
			return
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}
