package query

// Page is one window of a filtered listing. TotalCount reflects the
// filtered set independent of the pagination window.
type Page[T any] struct {
	Rows       []T `json:"rows"`
	TotalCount int `json:"totalCount"`
	PageIndex  int `json:"pageIndex"`
	PageSize   int `json:"pageSize"`
}

// EmptyPage returns a page with no rows for the spec's window
func EmptyPage[T any](spec Spec) Page[T] {
	return Page[T]{Rows: []T{}, PageIndex: spec.PageIndex, PageSize: spec.PageSize}
}
