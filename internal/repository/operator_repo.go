package repository

import (
	"database/sql"
	"fmt"
	"time"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
	"transitdesk/internal/query"
)

const operatorColumns = "id, name, email, COALESCE(description, ''), status, source, is_live, created_at, updated_at"

// OperatorRepository handles database operations for operators and their
// invitation sessions
type OperatorRepository struct {
	db database.DBTX
}

// NewOperatorRepository creates a new operator repository
func NewOperatorRepository(db database.DBTX) *OperatorRepository {
	return &OperatorRepository{db: db}
}

// Create inserts a new operator
func (r *OperatorRepository) Create(op *models.Operator) (*models.Operator, error) {
	q := `
		INSERT INTO operators (name, email, description, status, source, is_live)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(q, op.Name, op.Email, op.Description, op.Status, op.Source, op.IsLive)
	if err != nil {
		return nil, fmt.Errorf("failed to create operator: %w", err)
	}

	created := *op
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetByID retrieves an operator by ID, nil when absent
func (r *OperatorRepository) GetByID(id int64) (*models.Operator, error) {
	q := fmt.Sprintf("SELECT %s FROM operators WHERE id = ?", operatorColumns)
	return r.scanOne(r.db.QueryRow(q, id))
}

// GetByName retrieves an operator by exact name, nil when absent
func (r *OperatorRepository) GetByName(name string) (*models.Operator, error) {
	q := fmt.Sprintf("SELECT %s FROM operators WHERE name = ?", operatorColumns)
	return r.scanOne(r.db.QueryRow(q, name))
}

// GetByEmail retrieves an operator by email, nil when absent
func (r *OperatorRepository) GetByEmail(email string) (*models.Operator, error) {
	q := fmt.Sprintf("SELECT %s FROM operators WHERE email = ?", operatorColumns)
	return r.scanOne(r.db.QueryRow(q, email))
}

// UpdateStatus sets an operator's lifecycle status and live flag
func (r *OperatorRepository) UpdateStatus(id int64, status models.Status, isLive bool) error {
	q := `
		UPDATE operators
		SET status = ?, is_live = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(q, status, isLive, id)
	if err != nil {
		return fmt.Errorf("failed to update operator status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an operator row. Used as the compensating action when an
// invite cannot complete.
func (r *OperatorRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM operators WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete operator: %w", err)
	}
	return nil
}

// List returns one page of operators matching the spec. The total count is
// computed over the filters only, independent of the pagination window.
func (r *OperatorRepository) List(spec query.Spec) (query.Page[models.Operator], error) {
	page := query.EmptyPage[models.Operator](spec)
	where, args := spec.WhereClause()

	countQuery := "SELECT COUNT(*) FROM operators " + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count operators: %w", err)
	}

	limit, offset := spec.Window()
	rowQuery := fmt.Sprintf("SELECT %s FROM operators %s %s LIMIT ? OFFSET ?",
		operatorColumns, where, spec.OrderClause())
	rows, err := r.db.Query(rowQuery, append(args, limit, offset)...)
	if err != nil {
		return page, fmt.Errorf("failed to query operators: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var op models.Operator
		if err := scanOperator(rows, &op); err != nil {
			return page, fmt.Errorf("failed to scan operator: %w", err)
		}
		page.Rows = append(page.Rows, op)
	}
	return page, rows.Err()
}

// Count returns the total number of operators
func (r *OperatorRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM operators").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count operators: %w", err)
	}
	return n, nil
}

// NamesByIDs resolves operator display names for a set of IDs
func (r *OperatorRepository) NamesByIDs(ids []int64) (map[int64]string, error) {
	names := make(map[int64]string)
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := ""
	args := make([]any, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args[i] = id
	}

	rows, err := r.db.Query("SELECT id, name FROM operators WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve operator names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan operator name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// ExistingNames returns the set of all operator names, for reconciliation
// against the carrier registry
func (r *OperatorRepository) ExistingNames() (map[string]bool, error) {
	rows, err := r.db.Query("SELECT name FROM operators")
	if err != nil {
		return nil, fmt.Errorf("failed to query operator names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan operator name: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

func (r *OperatorRepository) scanOne(row *sql.Row) (*models.Operator, error) {
	op := &models.Operator{}
	err := row.Scan(
		&op.ID,
		&op.Name,
		&op.Email,
		&op.Description,
		&op.Status,
		&op.Source,
		&op.IsLive,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	return op, nil
}

func scanOperator(rows *sql.Rows, op *models.Operator) error {
	return rows.Scan(
		&op.ID,
		&op.Name,
		&op.Email,
		&op.Description,
		&op.Status,
		&op.Source,
		&op.IsLive,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
}
