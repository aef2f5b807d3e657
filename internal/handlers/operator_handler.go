package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"transitdesk/internal/models"
	"transitdesk/internal/query"
	"transitdesk/internal/repository"
	"transitdesk/internal/service"
	"transitdesk/internal/token"
	"transitdesk/internal/validation"
)

// operatorQueryOptions maps listing parameters onto the operators table
var operatorQueryOptions = query.Options{
	Filters: []query.FilterRule{
		{Param: "name", Field: "name", Kind: query.KindContains},
		{Param: "email", Field: "email", Kind: query.KindContains},
		{Param: "status", Field: "status", Kind: query.KindInSet},
		{Param: "source", Field: "source", Kind: query.KindEquals},
		{Param: "createdFrom", Field: "created_at", Kind: query.KindDateFrom},
		{Param: "createdTo", Field: "created_at", Kind: query.KindDateTo},
	},
	SortFields: map[string]string{
		"name":      "name",
		"status":    "status",
		"createdAt": "created_at",
	},
	DefaultSort: query.SortKey{Field: "created_at", Direction: query.Desc},
}

// OperatorHandler handles operator management requests
type OperatorHandler struct {
	operatorService *service.OperatorService
	operatorRepo    *repository.OperatorRepository
}

// NewOperatorHandler creates a new operator handler
func NewOperatorHandler(operatorService *service.OperatorService, operatorRepo *repository.OperatorRepository) *OperatorHandler {
	return &OperatorHandler{
		operatorService: operatorService,
		operatorRepo:    operatorRepo,
	}
}

// List returns one page of operators
func (h *OperatorHandler) List(w http.ResponseWriter, r *http.Request) {
	spec := query.Build(r.URL.Query(), operatorQueryOptions)

	page, err := h.operatorRepo.List(spec)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list operators", "Operator list error", err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// Get returns a single operator by ID
func (h *OperatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid operator ID", "", nil)
		return
	}

	op, err := h.operatorRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get operator", "Operator get error", err)
		return
	}
	if op == nil {
		respondWithError(w, http.StatusNotFound, "Operator not found", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, op)
}

type inviteRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// Invite creates a new operator and emails a signup invitation
func (h *OperatorHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	op, err := h.operatorService.Invite(r.Context(), req.Name, req.Email, req.Description, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOperatorNameTaken):
			respondWithError(w, http.StatusConflict, "An operator with this name already exists", "", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "An operator with this email already exists", "", nil)
		default:
			var vErr validation.ValidationError
			if errors.As(err, &vErr) {
				respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to invite operator", "Operator invite error", err)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, op)
}

type resendRequest struct {
	Message string `json:"message"`
}

// ResendInvite issues a fresh invitation token for an operator
func (h *OperatorHandler) ResendInvite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid operator ID", "", nil)
		return
	}

	var req resendRequest
	if r.Body != nil {
		// A body is optional; ignore decode errors from an empty one.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.operatorService.ResendInvite(r.Context(), id, req.Message); err != nil {
		switch {
		case errors.Is(err, service.ErrOperatorNotFound):
			respondWithError(w, http.StatusNotFound, "Operator not found", "", nil)
		case errors.Is(err, service.ErrInviteNotFound):
			respondWithError(w, http.StatusNotFound, "No invitation found for operator", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to resend invitation", "Invite resend error", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "invitation sent"})
}

type statusRequest struct {
	Action string `json:"action"`
}

// SetStatus applies a lifecycle action (SUSPEND or REACTIVATE) to an operator
func (h *OperatorHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid operator ID", "", nil)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	action, err := models.ParseAction(req.Action)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown action", "", nil)
		return
	}

	op, err := h.operatorService.SetStatus(id, action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOperatorNotFound):
			respondWithError(w, http.StatusNotFound, "Operator not found", "", nil)
		case errors.Is(err, models.ErrInvalidTransition):
			respondWithError(w, http.StatusConflict, err.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update operator status", "Status update error", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, op)
}

type signupRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// CompleteSignup redeems an invitation token and creates the operator's
// back-office account. Public endpoint; the token is the credential.
func (h *OperatorHandler) CompleteSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	user, err := h.operatorService.CompleteSignup(req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrDecode):
			respondWithError(w, http.StatusUnauthorized, "Invalid invitation token", "", nil)
		case errors.Is(err, service.ErrInviteExpired):
			respondWithError(w, http.StatusUnauthorized, "This invitation has expired", "", nil)
		case errors.Is(err, service.ErrInviteNotFound):
			respondWithError(w, http.StatusUnauthorized, "This invitation is no longer valid", "", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "An account already exists for this email", "", nil)
		default:
			var vErr validation.ValidationError
			if errors.As(err, &vErr) {
				respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to complete signup", "Signup error", err)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// pathID parses the {id} path segment
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
