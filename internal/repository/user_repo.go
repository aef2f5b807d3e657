package repository

import (
	"database/sql"
	"fmt"
	"time"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
	"transitdesk/internal/query"
)

const userColumns = "id, email, password_hash, name, role, operator_id, created_at, updated_at"

// UserRepository handles database operations for back-office users and sessions
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(email, passwordHash, name string, role models.Role, operatorID *int64) (*models.User, error) {
	q := `
		INSERT INTO users (email, password_hash, name, role, operator_id)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(q, email, passwordHash, name, role, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		OperatorID:   operatorID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetUserByEmail retrieves a user by email address, nil when absent
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	q := fmt.Sprintf("SELECT %s FROM users WHERE email = ?", userColumns)
	return r.scanOne(r.db.QueryRow(q, email))
}

// GetUserByID retrieves a user by ID, nil when absent
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	q := fmt.Sprintf("SELECT %s FROM users WHERE id = ?", userColumns)
	return r.scanOne(r.db.QueryRow(q, id))
}

// List returns one page of users matching the spec
func (r *UserRepository) List(spec query.Spec) (query.Page[models.User], error) {
	page := query.EmptyPage[models.User](spec)
	where, args := spec.WhereClause()

	if err := r.db.QueryRow("SELECT COUNT(*) FROM users "+where, args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count users: %w", err)
	}

	limit, offset := spec.Window()
	rowQuery := fmt.Sprintf("SELECT %s FROM users %s %s LIMIT ? OFFSET ?",
		userColumns, where, spec.OrderClause())
	rows, err := r.db.Query(rowQuery, append(args, limit, offset)...)
	if err != nil {
		return page, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		var operatorID sql.NullInt64
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.Name,
			&user.Role,
			&operatorID,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return page, fmt.Errorf("failed to scan user: %w", err)
		}
		if operatorID.Valid {
			user.OperatorID = &operatorID.Int64
		}
		page.Rows = append(page.Rows, user)
	}
	return page, rows.Err()
}

// UpdateUser updates a user's profile fields
func (r *UserRepository) UpdateUser(id int64, email, name string, role models.Role) error {
	q := `
		UPDATE users
		SET email = ?, name = ?, role = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(q, email, name, role, id); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser deletes a user and all associated sessions in one transaction
func (r *UserRepository) DeleteUser(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return tx.Commit()
}

// CreateSession creates a new session for a user
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	q := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(q, sessionID, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID, nil when absent
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	q := `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(q, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session from the database
func (r *UserRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var operatorID sql.NullInt64
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&operatorID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if operatorID.Valid {
		user.OperatorID = &operatorID.Int64
	}
	return user, nil
}
