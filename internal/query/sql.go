package query

import "strings"

// WhereClause renders the spec's filters as a SQL WHERE clause with ?
// placeholders, for dialect rewriting downstream. Returns an empty string
// when no filters are set. Column names come from per-entity whitelists,
// never from raw client input.
func (s Spec) WhereClause() (string, []any) {
	if len(s.Filters) == 0 {
		return "", nil
	}

	var conds []string
	var args []any

	for _, f := range s.Filters {
		switch f.Pred.Op {
		case OpContainsFold:
			conds = append(conds, "LOWER("+f.Field+") LIKE ?")
			args = append(args, "%"+strings.ToLower(f.Pred.Value.(string))+"%")
		case OpEquals:
			conds = append(conds, f.Field+" = ?")
			args = append(args, f.Pred.Value)
		case OpInSet:
			if len(f.Pred.Values) == 0 {
				// empty set matches nothing
				conds = append(conds, "1 = 0")
				continue
			}
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.Pred.Values)), ", ")
			conds = append(conds, f.Field+" IN ("+placeholders+")")
			args = append(args, f.Pred.Values...)
		case OpDateRange:
			if f.Pred.GTE != nil {
				conds = append(conds, f.Field+" >= ?")
				args = append(args, *f.Pred.GTE)
			}
			if f.Pred.LTE != nil {
				conds = append(conds, f.Field+" <= ?")
				args = append(args, *f.Pred.LTE)
			}
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// OrderClause renders the spec's sort keys as a SQL ORDER BY clause
func (s Spec) OrderClause() string {
	if len(s.Sort) == 0 {
		return "ORDER BY created_at DESC"
	}

	terms := make([]string, len(s.Sort))
	for i, key := range s.Sort {
		terms[i] = key.Field + " " + string(key.Direction)
	}
	return "ORDER BY " + strings.Join(terms, ", ")
}

// Window returns the LIMIT and OFFSET for the spec's page
func (s Spec) Window() (limit, offset int) {
	return s.PageSize, s.PageIndex * s.PageSize
}
