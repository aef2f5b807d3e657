package repository

import (
	"fmt"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
	"transitdesk/internal/query"
)

const discountColumns = "id, code, COALESCE(description, ''), percent, valid_from, valid_to, is_active, created_at, updated_at"

// DiscountRepository handles database operations for discount codes
type DiscountRepository struct {
	db database.DBTX
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db database.DBTX) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// List returns one page of discounts matching the spec
func (r *DiscountRepository) List(spec query.Spec) (query.Page[models.Discount], error) {
	page := query.EmptyPage[models.Discount](spec)
	where, args := spec.WhereClause()

	if err := r.db.QueryRow("SELECT COUNT(*) FROM discounts "+where, args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count discounts: %w", err)
	}

	limit, offset := spec.Window()
	rowQuery := fmt.Sprintf("SELECT %s FROM discounts %s %s LIMIT ? OFFSET ?",
		discountColumns, where, spec.OrderClause())
	rows, err := r.db.Query(rowQuery, append(args, limit, offset)...)
	if err != nil {
		return page, fmt.Errorf("failed to query discounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.Discount
		if err := rows.Scan(
			&d.ID,
			&d.Code,
			&d.Description,
			&d.Percent,
			&d.ValidFrom,
			&d.ValidTo,
			&d.IsActive,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return page, fmt.Errorf("failed to scan discount: %w", err)
		}
		page.Rows = append(page.Rows, d)
	}
	return page, rows.Err()
}

// Count returns the total number of discounts
func (r *DiscountRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM discounts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count discounts: %w", err)
	}
	return n, nil
}
