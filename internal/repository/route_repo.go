package repository

import (
	"fmt"
	"strconv"
	"strings"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
	"transitdesk/internal/query"
)

const routeColumns = "id, name, origin, destination, COALESCE(operator_ids, ''), is_active, created_at, updated_at"

// RouteRepository handles database operations for routes
type RouteRepository struct {
	db        database.DBTX
	operators *OperatorRepository
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db database.DBTX, operators *OperatorRepository) *RouteRepository {
	return &RouteRepository{db: db, operators: operators}
}

// List returns one page of routes matching the spec. Operator names are
// resolved after the primary fetch; the decoration never changes the total
// count or the row ordering.
func (r *RouteRepository) List(spec query.Spec) (query.Page[models.Route], error) {
	page := query.EmptyPage[models.Route](spec)
	where, args := spec.WhereClause()

	if err := r.db.QueryRow("SELECT COUNT(*) FROM routes "+where, args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count routes: %w", err)
	}

	limit, offset := spec.Window()
	rowQuery := fmt.Sprintf("SELECT %s FROM routes %s %s LIMIT ? OFFSET ?",
		routeColumns, where, spec.OrderClause())
	rows, err := r.db.Query(rowQuery, append(args, limit, offset)...)
	if err != nil {
		return page, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var route models.Route
		var operatorIDs string
		if err := rows.Scan(
			&route.ID,
			&route.Name,
			&route.Origin,
			&route.Destination,
			&operatorIDs,
			&route.IsActive,
			&route.CreatedAt,
			&route.UpdatedAt,
		); err != nil {
			return page, fmt.Errorf("failed to scan route: %w", err)
		}
		route.OperatorIDs = parseIDList(operatorIDs)
		page.Rows = append(page.Rows, route)
	}
	if err := rows.Err(); err != nil {
		return page, err
	}

	if err := r.resolveOperatorNames(page.Rows); err != nil {
		return page, err
	}
	return page, nil
}

// Count returns the total number of routes
func (r *RouteRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM routes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count routes: %w", err)
	}
	return n, nil
}

// resolveOperatorNames decorates rows in place with operator display names
func (r *RouteRepository) resolveOperatorNames(routes []models.Route) error {
	idSet := make(map[int64]bool)
	for _, route := range routes {
		for _, id := range route.OperatorIDs {
			idSet[id] = true
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names, err := r.operators.NamesByIDs(ids)
	if err != nil {
		return err
	}

	for i := range routes {
		for _, id := range routes[i].OperatorIDs {
			if name, ok := names[id]; ok {
				routes[i].OperatorNames = append(routes[i].OperatorNames, name)
			}
		}
	}
	return nil
}

// parseIDList parses a comma-separated id column, skipping malformed entries
func parseIDList(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
