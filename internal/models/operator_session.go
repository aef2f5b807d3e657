package models

import "time"

// OperatorSession is the invitation record coupled to an operator.
// At most one session exists per email; re-invites update it in place.
type OperatorSession struct {
	ID           int64
	OperatorID   int64
	Email        string
	Message      string
	ExpiresAt    time.Time
	SessionToken string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsExpired checks if the invitation window has closed
func (s *OperatorSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
