package repository

import (
	"database/sql"
	"fmt"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
)

const sessionColumns = "id, operator_id, email, COALESCE(message, ''), expires_at, session_token, is_active, created_at, updated_at"

// OperatorSessionRepository handles invitation session records.
// The operator_sessions table carries a unique constraint on email; the
// upsert rides on it so concurrent invites cannot create duplicates.
type OperatorSessionRepository struct {
	db database.DBTX
}

// NewOperatorSessionRepository creates a new session repository
func NewOperatorSessionRepository(db database.DBTX) *OperatorSessionRepository {
	return &OperatorSessionRepository{db: db}
}

// Upsert writes the invitation session, updating in place when a row for the
// email already exists. Atomic at the database level.
func (r *OperatorSessionRepository) Upsert(sess *models.OperatorSession) error {
	q := r.db.GetDialect().UpsertOperatorSession()
	_, err := r.db.Exec(q,
		sess.OperatorID,
		sess.Email,
		sess.Message,
		sess.ExpiresAt,
		sess.SessionToken,
		sess.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert operator session: %w", err)
	}
	return nil
}

// GetByOperatorID retrieves the invitation session for an operator, nil when absent
func (r *OperatorSessionRepository) GetByOperatorID(operatorID int64) (*models.OperatorSession, error) {
	q := fmt.Sprintf("SELECT %s FROM operator_sessions WHERE operator_id = ?", sessionColumns)
	return r.scanOne(r.db.QueryRow(q, operatorID))
}

// GetActiveByEmail retrieves the active invitation session for an email, nil when absent
func (r *OperatorSessionRepository) GetActiveByEmail(email string) (*models.OperatorSession, error) {
	q := fmt.Sprintf("SELECT %s FROM operator_sessions WHERE email = ? AND is_active = ?", sessionColumns)
	return r.scanOne(r.db.QueryRow(q, email, true))
}

// Deactivate marks a session consumed. The token cannot be redeemed twice.
func (r *OperatorSessionRepository) Deactivate(id int64) error {
	q := "UPDATE operator_sessions SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(q, false, id); err != nil {
		return fmt.Errorf("failed to deactivate operator session: %w", err)
	}
	return nil
}

// DeleteByEmail removes a session row. Used as the compensating action when
// an invite cannot complete.
func (r *OperatorSessionRepository) DeleteByEmail(email string) error {
	if _, err := r.db.Exec("DELETE FROM operator_sessions WHERE email = ?", email); err != nil {
		return fmt.Errorf("failed to delete operator session: %w", err)
	}
	return nil
}

func (r *OperatorSessionRepository) scanOne(row *sql.Row) (*models.OperatorSession, error) {
	sess := &models.OperatorSession{}
	err := row.Scan(
		&sess.ID,
		&sess.OperatorID,
		&sess.Email,
		&sess.Message,
		&sess.ExpiresAt,
		&sess.SessionToken,
		&sess.IsActive,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator session: %w", err)
	}
	return sess, nil
}
