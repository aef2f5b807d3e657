package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"transitdesk/internal/models"
	"transitdesk/internal/security"
	"transitdesk/internal/token"
	"transitdesk/internal/validation"
)

var (
	ErrOperatorNameTaken = errors.New("operator name already taken")
	ErrEmailTaken        = errors.New("email already taken")
	ErrOperatorNotFound  = errors.New("operator not found")
	ErrInviteNotFound    = errors.New("no invitation found for operator")
	ErrInviteExpired     = errors.New("invitation has expired")
)

// OperatorStore is the persistence surface the lifecycle manager needs
// for operator records
type OperatorStore interface {
	Create(op *models.Operator) (*models.Operator, error)
	GetByID(id int64) (*models.Operator, error)
	GetByName(name string) (*models.Operator, error)
	GetByEmail(email string) (*models.Operator, error)
	UpdateStatus(id int64, status models.Status, isLive bool) error
	Delete(id int64) error
}

// InviteStore is the persistence surface for invitation sessions
type InviteStore interface {
	Upsert(sess *models.OperatorSession) error
	GetByOperatorID(operatorID int64) (*models.OperatorSession, error)
	GetActiveByEmail(email string) (*models.OperatorSession, error)
	Deactivate(id int64) error
	DeleteByEmail(email string) error
}

// SignupStore creates the back-office account when an invited operator
// completes registration
type SignupStore interface {
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(email, passwordHash, name string, role models.Role, operatorID *int64) (*models.User, error)
}

// Notifier dispatches invitation emails
type Notifier interface {
	SendOperatorInvitation(ctx context.Context, toEmail, toName, message, inviteToken string) error
}

// OperatorService handles the operator invitation lifecycle
type OperatorService struct {
	operators OperatorStore
	invites   InviteStore
	users     SignupStore
	notifier  Notifier
	codec     *token.Codec
	inviteTTL time.Duration
}

// NewOperatorService creates a new operator service
func NewOperatorService(operators OperatorStore, invites InviteStore, users SignupStore, notifier Notifier, codec *token.Codec, inviteTTL time.Duration) *OperatorService {
	return &OperatorService{
		operators: operators,
		invites:   invites,
		users:     users,
		notifier:  notifier,
		codec:     codec,
		inviteTTL: inviteTTL,
	}
}

// Invite creates an operator in INVITED state, records an invitation
// session and emails a time-boxed signup token. The operator and session
// rows are removed again if the email cannot be dispatched, so a failed
// invite leaves no half-created operator behind.
func (s *OperatorService) Invite(ctx context.Context, name, email, description, message string) (*models.Operator, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	existing, err := s.operators.GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check operator name: %w", err)
	}
	if existing != nil {
		return nil, ErrOperatorNameTaken
	}

	existing, err = s.operators.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check operator email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// An email already owned by a back-office user could never complete
	// signup, so reject it up front.
	existingUser, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	op, err := s.operators.Create(&models.Operator{
		Name:        name,
		Email:       email,
		Description: description,
		Status:      models.StatusInvited,
		Source:      models.SourceKupi,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create operator: %w", err)
	}

	if err := s.dispatchInvite(ctx, op, message); err != nil {
		// Compensate so the invite can be retried from scratch.
		if delErr := s.invites.DeleteByEmail(op.Email); delErr != nil {
			log.Printf("Failed to clean up invitation session for %s: %v", op.Email, delErr)
		}
		if delErr := s.operators.Delete(op.ID); delErr != nil {
			log.Printf("Failed to clean up operator %d after invite failure: %v", op.ID, delErr)
		}
		return nil, err
	}

	return op, nil
}

// ResendInvite issues a fresh token for an already invited operator and
// re-dispatches the email. The stored session is replaced in place, which
// invalidates the previously emailed token.
func (s *OperatorService) ResendInvite(ctx context.Context, operatorID int64, message string) error {
	op, err := s.operators.GetByID(operatorID)
	if err != nil {
		return fmt.Errorf("failed to get operator: %w", err)
	}
	if op == nil {
		return ErrOperatorNotFound
	}

	sess, err := s.invites.GetByOperatorID(operatorID)
	if err != nil {
		return fmt.Errorf("failed to get invitation session: %w", err)
	}
	if sess == nil {
		return ErrInviteNotFound
	}

	if message == "" {
		message = sess.Message
	}
	return s.dispatchInvite(ctx, op, message)
}

// dispatchInvite encodes a fresh token, upserts the invitation session
// and sends the email. The session write happens before the send so a
// delivered email always references a stored token.
func (s *OperatorService) dispatchInvite(ctx context.Context, op *models.Operator, message string) error {
	expiresAt := time.Now().Add(s.inviteTTL)
	inviteToken, err := s.codec.Encode(token.Payload{
		Email:     op.Email,
		Name:      op.Name,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode invitation token: %w", err)
	}

	err = s.invites.Upsert(&models.OperatorSession{
		OperatorID:   op.ID,
		Email:        op.Email,
		Message:      message,
		ExpiresAt:    expiresAt,
		SessionToken: inviteToken,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to store invitation session: %w", err)
	}

	if err := s.notifier.SendOperatorInvitation(ctx, op.Email, op.Name, message, inviteToken); err != nil {
		return fmt.Errorf("failed to send invitation: %w", err)
	}

	log.Printf("Invitation sent: operator=%s, email=%s, expires=%s", op.Name, op.Email, expiresAt.Format(time.RFC3339))
	return nil
}

// SetStatus applies a lifecycle action to an operator. Only registered
// operators can be suspended and only suspended ones reactivated; every
// other combination fails with models.ErrInvalidTransition.
func (s *OperatorService) SetStatus(operatorID int64, action models.Action) (*models.Operator, error) {
	op, err := s.operators.GetByID(operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}

	next, err := models.Transition(op.Status, action)
	if err != nil {
		return nil, err
	}

	isLive := next == models.StatusRegistered
	if err := s.operators.UpdateStatus(op.ID, next, isLive); err != nil {
		return nil, fmt.Errorf("failed to update operator status: %w", err)
	}

	op.Status = next
	op.IsLive = isLive
	return op, nil
}

// CompleteSignup redeems an invitation token, creates the operator's
// back-office account and moves the operator to REGISTERED. The session
// is deactivated so the token cannot be redeemed twice.
func (s *OperatorService) CompleteSignup(tokenString, password string) (*models.User, error) {
	payload, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if payload.IsExpired() {
		return nil, ErrInviteExpired
	}

	sess, err := s.invites.GetActiveByEmail(payload.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation session: %w", err)
	}
	if sess == nil {
		return nil, ErrInviteNotFound
	}

	op, err := s.operators.GetByEmail(payload.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}

	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existingUser, err := s.users.GetUserByEmail(payload.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(payload.Email, passwordHash, payload.Name, models.RoleOperator, &op.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.operators.UpdateStatus(op.ID, models.StatusRegistered, true); err != nil {
		return nil, fmt.Errorf("failed to register operator: %w", err)
	}
	if err := s.invites.Deactivate(sess.ID); err != nil {
		return nil, fmt.Errorf("failed to deactivate invitation session: %w", err)
	}

	log.Printf("Operator signup completed: operator=%s, user=%d", op.Name, user.ID)
	return user, nil
}
