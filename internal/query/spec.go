package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// SortKey is one ordering term of a spec
type SortKey struct {
	Field     string
	Direction Direction
}

// Op tags the predicate variant applied to a field
type Op int

const (
	OpContainsFold Op = iota
	OpEquals
	OpInSet
	OpDateRange
)

// Predicate is a single filter condition. Exactly one variant is populated,
// selected by Op.
type Predicate struct {
	Op     Op
	Value  any
	Values []any
	GTE    *time.Time
	LTE    *time.Time
}

// ContainsFold matches rows whose field contains text, case-insensitively
func ContainsFold(text string) Predicate {
	return Predicate{Op: OpContainsFold, Value: text}
}

// Equals matches rows whose field equals value exactly
func Equals(value any) Predicate {
	return Predicate{Op: OpEquals, Value: value}
}

// InSet matches rows whose field equals any of the given values
func InSet(values ...any) Predicate {
	return Predicate{Op: OpInSet, Values: values}
}

// DateRange matches rows whose field falls within the given bounds.
// Either bound may be nil for a one-sided range.
func DateRange(gte, lte *time.Time) Predicate {
	return Predicate{Op: OpDateRange, GTE: gte, LTE: lte}
}

// Filter binds a predicate to a column
type Filter struct {
	Field string
	Pred  Predicate
}

// Spec is a normalized filter/sort/pagination descriptor for one listing.
// A field contributes at most one filter; PageIndex >= 0 and PageSize >= 1
// always hold for specs produced by Build.
type Spec struct {
	Filters   []Filter
	Sort      []SortKey
	PageIndex int
	PageSize  int
}

// Kind selects how a raw parameter value becomes a predicate
type Kind int

const (
	KindContains Kind = iota
	KindEquals
	KindInSet
	KindDateFrom
	KindDateTo
)

// FilterRule maps one query parameter to a column and predicate kind
type FilterRule struct {
	Param string
	Field string
	Kind  Kind
}

// Options describes how raw parameters translate for one entity type
type Options struct {
	Filters     []FilterRule
	SortFields  map[string]string // sort parameter field -> column
	DefaultSort SortKey
}

// Build translates raw query parameters into a Spec. Pure function, no I/O.
// Unknown or empty parameters are skipped, an unrecognized sort field falls
// back to the default sort (leniency, not validation), and malformed
// pagination numbers fall back to 0 / DefaultPageSize.
func Build(params url.Values, opts Options) Spec {
	spec := Spec{
		PageIndex: intParam(params.Get("pageIndex"), 0),
		PageSize:  intParam(params.Get("pageSize"), DefaultPageSize),
	}
	if spec.PageSize < 1 {
		spec.PageSize = DefaultPageSize
	}
	if spec.PageSize > MaxPageSize {
		spec.PageSize = MaxPageSize
	}

	seen := make(map[string]bool)
	ranges := make(map[string]int)

	for _, rule := range opts.Filters {
		raw := strings.TrimSpace(params.Get(rule.Param))
		if raw == "" {
			continue
		}

		switch rule.Kind {
		case KindContains:
			if !seen[rule.Field] {
				spec.Filters = append(spec.Filters, Filter{Field: rule.Field, Pred: ContainsFold(raw)})
				seen[rule.Field] = true
			}
		case KindEquals:
			if !seen[rule.Field] {
				spec.Filters = append(spec.Filters, Filter{Field: rule.Field, Pred: Equals(raw)})
				seen[rule.Field] = true
			}
		case KindInSet:
			if seen[rule.Field] {
				continue
			}
			var values []any
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			if len(values) > 0 {
				spec.Filters = append(spec.Filters, Filter{Field: rule.Field, Pred: InSet(values...)})
				seen[rule.Field] = true
			}
		case KindDateFrom, KindDateTo:
			t, err := parseDate(raw)
			if err != nil {
				continue
			}
			// Track the filter by index: appends between the two
			// bound rules may reallocate the slice, so a pointer
			// into it would go stale.
			idx, ok := ranges[rule.Field]
			if !ok {
				if seen[rule.Field] {
					continue
				}
				spec.Filters = append(spec.Filters, Filter{Field: rule.Field, Pred: DateRange(nil, nil)})
				idx = len(spec.Filters) - 1
				ranges[rule.Field] = idx
				seen[rule.Field] = true
			}
			if rule.Kind == KindDateFrom {
				spec.Filters[idx].Pred.GTE = &t
			} else {
				spec.Filters[idx].Pred.LTE = &t
			}
		}
	}

	spec.Sort = parseSort(params.Get("sort"), opts)
	return spec
}

// parseSort splits a compound "field_direction" parameter on the first
// underscore. A field outside the whitelist is silently dropped.
func parseSort(raw string, opts Options) []SortKey {
	fallback := []SortKey{opts.DefaultSort}
	if opts.DefaultSort.Field == "" {
		fallback = []SortKey{{Field: "created_at", Direction: Desc}}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	field, dir, found := strings.Cut(raw, "_")
	if !found {
		field = raw
	}

	column, ok := opts.SortFields[field]
	if !ok {
		return fallback
	}

	direction := Desc
	if dir == "asc" {
		direction = Asc
	}
	return []SortKey{{Field: column, Direction: direction}}
}

// intParam parses a non-negative integer with an explicit fallback so
// malformed client input never reaches pagination arithmetic.
func intParam(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// parseDate accepts RFC3339 timestamps or plain dates
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
