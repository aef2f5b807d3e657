package handlers

import (
	"encoding/json"
	"net/http"

	"transitdesk/internal/models"
	"transitdesk/internal/query"
	"transitdesk/internal/repository"
	"transitdesk/internal/validation"
)

var userQueryOptions = query.Options{
	Filters: []query.FilterRule{
		{Param: "email", Field: "email", Kind: query.KindContains},
		{Param: "name", Field: "name", Kind: query.KindContains},
		{Param: "role", Field: "role", Kind: query.KindEquals},
	},
	SortFields: map[string]string{
		"email":     "email",
		"name":      "name",
		"createdAt": "created_at",
	},
	DefaultSort: query.SortKey{Field: "created_at", Direction: query.Desc},
}

// UserHandler handles back-office user administration
type UserHandler struct {
	userRepo *repository.UserRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo *repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// List returns one page of back-office users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	spec := query.Build(r.URL.Query(), userQueryOptions)

	page, err := h.userRepo.List(spec)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list users", "User list error", err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

type updateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Update modifies a user's profile fields
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	if err := validation.ValidateName(req.Name); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	role := models.Role(req.Role)
	if role != models.RoleAdmin && role != models.RoleOperator {
		respondWithError(w, http.StatusBadRequest, "Unknown role", "", nil)
		return
	}

	user, err := h.userRepo.GetUserByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get user", "User get error", err)
		return
	}
	if user == nil {
		respondWithError(w, http.StatusNotFound, "User not found", "", nil)
		return
	}

	if err := h.userRepo.UpdateUser(id, req.Email, req.Name, role); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update user", "User update error", err)
		return
	}

	user.Email = req.Email
	user.Name = req.Name
	user.Role = role
	respondWithJSON(w, http.StatusOK, user)
}

// Delete removes a user and their sessions
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	// An administrator cannot delete their own account.
	if current := GetUserFromContext(r.Context()); current != nil && current.ID == id {
		respondWithError(w, http.StatusConflict, "Cannot delete your own account", "", nil)
		return
	}

	user, err := h.userRepo.GetUserByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get user", "User get error", err)
		return
	}
	if user == nil {
		respondWithError(w, http.StatusNotFound, "User not found", "", nil)
		return
	}

	if err := h.userRepo.DeleteUser(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete user", "User delete error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
