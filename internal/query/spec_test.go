package query

import (
	"net/url"
	"testing"
	"time"
)

func busOptions() Options {
	return Options{
		Filters: []FilterRule{
			{Param: "name", Field: "name", Kind: KindContains},
			{Param: "class", Field: "class", Kind: KindEquals},
			{Param: "status", Field: "status", Kind: KindInSet},
			{Param: "createdFrom", Field: "created_at", Kind: KindDateFrom},
			{Param: "createdTo", Field: "created_at", Kind: KindDateTo},
		},
		SortFields: map[string]string{
			"name":     "name",
			"capacity": "capacity",
		},
		DefaultSort: SortKey{Field: "created_at", Direction: Desc},
	}
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name      string
		params    url.Values
		wantIndex int
		wantSize  int
	}{
		{
			name:      "defaults when absent",
			params:    url.Values{},
			wantIndex: 0,
			wantSize:  10,
		},
		{
			name:      "explicit values",
			params:    url.Values{"pageIndex": {"3"}, "pageSize": {"25"}},
			wantIndex: 3,
			wantSize:  25,
		},
		{
			name:      "non-numeric falls back",
			params:    url.Values{"pageIndex": {"abc"}, "pageSize": {"xyz"}},
			wantIndex: 0,
			wantSize:  10,
		},
		{
			name:      "negative falls back",
			params:    url.Values{"pageIndex": {"-1"}, "pageSize": {"-5"}},
			wantIndex: 0,
			wantSize:  10,
		},
		{
			name:      "zero page size falls back",
			params:    url.Values{"pageSize": {"0"}},
			wantIndex: 0,
			wantSize:  10,
		},
		{
			name:      "oversized page size clamped",
			params:    url.Values{"pageSize": {"5000"}},
			wantIndex: 0,
			wantSize:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Build(tt.params, busOptions())
			if spec.PageIndex != tt.wantIndex {
				t.Errorf("PageIndex = %d, want %d", spec.PageIndex, tt.wantIndex)
			}
			if spec.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", spec.PageSize, tt.wantSize)
			}
		})
	}
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want SortKey
	}{
		{
			name: "missing sort uses default",
			sort: "",
			want: SortKey{Field: "created_at", Direction: Desc},
		},
		{
			name: "ascending sort",
			sort: "name_asc",
			want: SortKey{Field: "name", Direction: Asc},
		},
		{
			name: "descending sort",
			sort: "name_desc",
			want: SortKey{Field: "name", Direction: Desc},
		},
		{
			name: "unknown direction treated as descending",
			sort: "capacity_upwards",
			want: SortKey{Field: "capacity", Direction: Desc},
		},
		{
			name: "unknown field silently dropped",
			sort: "password_asc",
			want: SortKey{Field: "created_at", Direction: Desc},
		},
		{
			name: "no direction separator",
			sort: "name",
			want: SortKey{Field: "name", Direction: Desc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Build(url.Values{"sort": {tt.sort}}, busOptions())
			if len(spec.Sort) != 1 {
				t.Fatalf("len(Sort) = %d, want 1", len(spec.Sort))
			}
			if spec.Sort[0] != tt.want {
				t.Errorf("Sort[0] = %+v, want %+v", spec.Sort[0], tt.want)
			}
		})
	}
}

func TestBuildFilters(t *testing.T) {
	params := url.Values{
		"name":   {"Acme"},
		"class":  {"LUXURY"},
		"status": {"PENDING, COMPLETED"},
	}
	spec := Build(params, busOptions())

	if len(spec.Filters) != 3 {
		t.Fatalf("len(Filters) = %d, want 3", len(spec.Filters))
	}

	byField := make(map[string]Predicate)
	for _, f := range spec.Filters {
		if _, dup := byField[f.Field]; dup {
			t.Errorf("field %s contributed more than one predicate", f.Field)
		}
		byField[f.Field] = f.Pred
	}

	if pred := byField["name"]; pred.Op != OpContainsFold || pred.Value != "Acme" {
		t.Errorf("name predicate = %+v, want ContainsFold(Acme)", pred)
	}
	if pred := byField["class"]; pred.Op != OpEquals || pred.Value != "LUXURY" {
		t.Errorf("class predicate = %+v, want Equals(LUXURY)", pred)
	}
	if pred := byField["status"]; pred.Op != OpInSet || len(pred.Values) != 2 {
		t.Errorf("status predicate = %+v, want InSet with 2 values", pred)
	}
}

func TestBuildSkipsEmptyParams(t *testing.T) {
	params := url.Values{"name": {"  "}, "class": {""}}
	spec := Build(params, busOptions())
	if len(spec.Filters) != 0 {
		t.Errorf("len(Filters) = %d, want 0 for empty values", len(spec.Filters))
	}
}

func TestBuildDateRange(t *testing.T) {
	params := url.Values{
		"createdFrom": {"2024-01-01"},
		"createdTo":   {"2024-06-30T23:59:59Z"},
	}
	spec := Build(params, busOptions())

	if len(spec.Filters) != 1 {
		t.Fatalf("len(Filters) = %d, want 1 (both bounds share one range)", len(spec.Filters))
	}
	pred := spec.Filters[0].Pred
	if pred.Op != OpDateRange {
		t.Fatalf("predicate op = %v, want OpDateRange", pred.Op)
	}
	if pred.GTE == nil || pred.GTE.Year() != 2024 || pred.GTE.Month() != time.January {
		t.Errorf("GTE = %v, want 2024-01-01", pred.GTE)
	}
	if pred.LTE == nil || pred.LTE.Month() != time.June {
		t.Errorf("LTE = %v, want 2024-06-30", pred.LTE)
	}
}

func TestBuildOneSidedDateRange(t *testing.T) {
	spec := Build(url.Values{"createdFrom": {"2024-03-15"}}, busOptions())
	if len(spec.Filters) != 1 {
		t.Fatalf("len(Filters) = %d, want 1", len(spec.Filters))
	}
	pred := spec.Filters[0].Pred
	if pred.GTE == nil || pred.LTE != nil {
		t.Errorf("one-sided range = %+v, want GTE set and LTE nil", pred)
	}
}

func TestBuildDateRangeSurvivesInterleavedRules(t *testing.T) {
	// Rules appended between the two bounds grow the filter slice; both
	// bounds must still land on the same range filter afterwards.
	opts := Options{
		Filters: []FilterRule{
			{Param: "createdFrom", Field: "created_at", Kind: KindDateFrom},
			{Param: "name", Field: "name", Kind: KindContains},
			{Param: "class", Field: "class", Kind: KindEquals},
			{Param: "createdTo", Field: "created_at", Kind: KindDateTo},
		},
		DefaultSort: SortKey{Field: "created_at", Direction: Desc},
	}
	params := url.Values{
		"createdFrom": {"2024-01-01"},
		"name":        {"acme"},
		"class":       {"LUXURY"},
		"createdTo":   {"2024-06-30"},
	}

	spec := Build(params, opts)

	if len(spec.Filters) != 3 {
		t.Fatalf("len(Filters) = %d, want 3", len(spec.Filters))
	}
	var pred *Predicate
	for i := range spec.Filters {
		if spec.Filters[i].Field == "created_at" {
			pred = &spec.Filters[i].Pred
		}
	}
	if pred == nil {
		t.Fatal("no created_at filter in spec")
	}
	if pred.GTE == nil || pred.LTE == nil {
		t.Errorf("range = GTE %v LTE %v, want both bounds set", pred.GTE, pred.LTE)
	}
}

func TestBuildMalformedDateSkipped(t *testing.T) {
	spec := Build(url.Values{"createdFrom": {"yesterday"}}, busOptions())
	if len(spec.Filters) != 0 {
		t.Errorf("len(Filters) = %d, want 0 for malformed date", len(spec.Filters))
	}
}
