package repository

import (
	"fmt"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
	"transitdesk/internal/query"
)

const transactionColumns = "id, reference, operator_id, route_id, amount_cents, status, created_at"

// TransactionRepository handles database operations for ticket purchases
type TransactionRepository struct {
	db database.DBTX
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db database.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List returns one page of transactions matching the spec
func (r *TransactionRepository) List(spec query.Spec) (query.Page[models.Transaction], error) {
	page := query.EmptyPage[models.Transaction](spec)
	where, args := spec.WhereClause()

	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions "+where, args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit, offset := spec.Window()
	rowQuery := fmt.Sprintf("SELECT %s FROM transactions %s %s LIMIT ? OFFSET ?",
		transactionColumns, where, spec.OrderClause())
	rows, err := r.db.Query(rowQuery, append(args, limit, offset)...)
	if err != nil {
		return page, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.Reference,
			&tx.OperatorID,
			&tx.RouteID,
			&tx.AmountCents,
			&tx.Status,
			&tx.CreatedAt,
		); err != nil {
			return page, fmt.Errorf("failed to scan transaction: %w", err)
		}
		page.Rows = append(page.Rows, tx)
	}
	return page, rows.Err()
}

// Count returns the total number of transactions
func (r *TransactionRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}
