package repository

import (
	"database/sql"
	"fmt"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
	"transitdesk/internal/query"
)

const busColumns = "id, operator_id, registration, name, class, capacity, is_active, created_at, updated_at"

// BusRepository handles database operations for fleet vehicles
type BusRepository struct {
	db database.DBTX
}

// NewBusRepository creates a new bus repository
func NewBusRepository(db database.DBTX) *BusRepository {
	return &BusRepository{db: db}
}

// List returns one page of buses matching the spec
func (r *BusRepository) List(spec query.Spec) (query.Page[models.Bus], error) {
	page := query.EmptyPage[models.Bus](spec)
	where, args := spec.WhereClause()

	if err := r.db.QueryRow("SELECT COUNT(*) FROM buses "+where, args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count buses: %w", err)
	}

	limit, offset := spec.Window()
	rowQuery := fmt.Sprintf("SELECT %s FROM buses %s %s LIMIT ? OFFSET ?",
		busColumns, where, spec.OrderClause())
	rows, err := r.db.Query(rowQuery, append(args, limit, offset)...)
	if err != nil {
		return page, fmt.Errorf("failed to query buses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bus models.Bus
		if err := rows.Scan(
			&bus.ID,
			&bus.OperatorID,
			&bus.Registration,
			&bus.Name,
			&bus.Class,
			&bus.Capacity,
			&bus.IsActive,
			&bus.CreatedAt,
			&bus.UpdatedAt,
		); err != nil {
			return page, fmt.Errorf("failed to scan bus: %w", err)
		}
		page.Rows = append(page.Rows, bus)
	}
	return page, rows.Err()
}

// GetByID retrieves a bus by ID, nil when absent
func (r *BusRepository) GetByID(id int64) (*models.Bus, error) {
	q := fmt.Sprintf("SELECT %s FROM buses WHERE id = ?", busColumns)
	bus := &models.Bus{}
	err := r.db.QueryRow(q, id).Scan(
		&bus.ID,
		&bus.OperatorID,
		&bus.Registration,
		&bus.Name,
		&bus.Class,
		&bus.Capacity,
		&bus.IsActive,
		&bus.CreatedAt,
		&bus.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}
	return bus, nil
}

// Count returns the total number of buses
func (r *BusRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM buses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count buses: %w", err)
	}
	return n, nil
}
