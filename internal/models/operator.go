package models

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of an operator account
type Status string

const (
	StatusInvited    Status = "INVITED"
	StatusRegistered Status = "REGISTERED"
	StatusSuspended  Status = "SUSPENDED"
)

// Source records where an operator record originated
type Source string

const (
	SourceKupi  Source = "KUPI"
	SourceCarma Source = "CARMA"
)

// Action is a requested lifecycle change for an operator
type Action string

const (
	ActionSuspend    Action = "SUSPEND"
	ActionReactivate Action = "REACTIVATE"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Operator represents a bus operator on the platform
type Operator struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Source      Source    `json:"source"`
	IsLive      bool      `json:"isLive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Transition applies a lifecycle action to the current status.
// Only REGISTERED and SUSPENDED are reachable through actions; INVITED is
// entered at creation and left by signup completion, never by an action.
func Transition(current Status, action Action) (Status, error) {
	switch action {
	case ActionSuspend:
		if current == StatusRegistered {
			return StatusSuspended, nil
		}
	case ActionReactivate:
		if current == StatusSuspended {
			return StatusRegistered, nil
		}
	}
	return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, action)
}

// ParseSource validates a source string
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceKupi:
		return SourceKupi, nil
	case SourceCarma:
		return SourceCarma, nil
	}
	return "", fmt.Errorf("unknown operator source: %q", s)
}

// ParseAction validates a lifecycle action string
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionSuspend:
		return ActionSuspend, nil
	case ActionReactivate:
		return ActionReactivate, nil
	}
	return "", fmt.Errorf("unknown lifecycle action: %q", s)
}
