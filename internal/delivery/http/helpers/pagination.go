package helpers

import (
	"net/http"
	"strconv"

	"fleetadmin/internal/domain"
)

// Pagination query parameter limits.
const (
	MaxRowsPerPage = 100
	// MaxPage keeps page*rows_per_page far from integer overflow. Any page that large is empty anyway.
	MaxPage = 1 << 20
)

// ParsePagination reads page (zero-based) and rows_per_page from the request query string
// and returns a fresh PaginationState with a zero total. Missing, malformed or negative
// values fall back to defaults; rows_per_page above MaxRowsPerPage is clamped.
func ParsePagination(r *http.Request) *domain.PaginationState {
	q := r.URL.Query()
	page := domain.DefaultPage
	if s := q.Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			page = min(v, MaxPage)
		}
	}
	rowsPerPage := domain.DefaultRowsPerPage
	if s := q.Get("rows_per_page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			rowsPerPage = min(v, MaxRowsPerPage)
		}
	}
	state, err := domain.NewPaginationState(page, rowsPerPage, 0)
	if err != nil {
		return domain.DefaultPaginationState()
	}
	return state
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page        int `json:"page"`
	RowsPerPage int `json:"rows_per_page"`
	Offset      int `json:"offset"`
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
}

// NewPaginationMeta snapshots state after its total count has been set.
func NewPaginationMeta(state *domain.PaginationState) PaginationMeta {
	return PaginationMeta{
		Page:        state.Page(),
		RowsPerPage: state.RowsPerPage(),
		Offset:      state.Offset(),
		Total:       state.TotalCount(),
		TotalPages:  state.TotalPages(),
	}
}
