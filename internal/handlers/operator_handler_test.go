package handlers

import (
	"net/url"
	"testing"

	"transitdesk/internal/query"
)

func TestOperatorQueryOptions(t *testing.T) {
	params := url.Values{
		"name":      {"acme"},
		"status":    {"INVITED,REGISTERED"},
		"sort":      {"name_asc"},
		"pageIndex": {"2"},
		"pageSize":  {"25"},
	}

	spec := query.Build(params, operatorQueryOptions)

	if len(spec.Filters) != 2 {
		t.Fatalf("filters = %d, want 2", len(spec.Filters))
	}
	if spec.Filters[0].Field != "name" || spec.Filters[0].Pred.Op != query.OpContainsFold {
		t.Errorf("first filter = %+v, want contains on name", spec.Filters[0])
	}
	if spec.Filters[1].Field != "status" || spec.Filters[1].Pred.Op != query.OpInSet {
		t.Errorf("second filter = %+v, want in-set on status", spec.Filters[1])
	}
	if len(spec.Filters[1].Pred.Values) != 2 {
		t.Errorf("status values = %d, want 2", len(spec.Filters[1].Pred.Values))
	}

	if len(spec.Sort) != 1 || spec.Sort[0].Field != "name" || spec.Sort[0].Direction != query.Asc {
		t.Errorf("sort = %+v, want name ascending", spec.Sort)
	}
	if spec.PageIndex != 2 || spec.PageSize != 25 {
		t.Errorf("page = %d/%d, want 2/25", spec.PageIndex, spec.PageSize)
	}
}

func TestOperatorQueryOptionsUnknownSortFallsBack(t *testing.T) {
	spec := query.Build(url.Values{"sort": {"email_asc"}}, operatorQueryOptions)

	if len(spec.Sort) != 1 || spec.Sort[0].Field != "created_at" || spec.Sort[0].Direction != query.Desc {
		t.Errorf("sort = %+v, want created_at descending fallback", spec.Sort)
	}
}

func TestTransactionQueryOptionsDateRange(t *testing.T) {
	params := url.Values{
		"createdFrom": {"2026-01-01"},
		"createdTo":   {"2026-01-31"},
	}

	spec := query.Build(params, transactionQueryOptions)

	if len(spec.Filters) != 1 {
		t.Fatalf("filters = %d, want one merged date range", len(spec.Filters))
	}
	pred := spec.Filters[0].Pred
	if pred.Op != query.OpDateRange || pred.GTE == nil || pred.LTE == nil {
		t.Errorf("predicate = %+v, want two-sided date range", pred)
	}
}
