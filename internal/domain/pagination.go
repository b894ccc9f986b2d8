package domain

import (
	"errors"
	"math"
)

// Defaults applied when a caller does not choose a page or page size.
const (
	DefaultPage        = 0
	DefaultRowsPerPage = 10
)

// Sentinel errors for pagination input.
var (
	ErrInvalidPage       = errors.New("page is negative or too large")
	ErrInvalidPageSize   = errors.New("rows per page must be greater than zero")
	ErrInvalidTotalCount = errors.New("total count must be zero or greater")
)

// PageWindow is the limit/offset pair a list query uses to fetch one page.
type PageWindow struct {
	Limit  int
	Offset int
}

// PaginationState tracks zero-based page navigation over a collection whose size
// is owned by the caller. Offset and TotalPages are derived on every read.
// A state belongs to a single request and is not safe for concurrent use.
type PaginationState struct {
	page        int
	rowsPerPage int
	totalCount  int
}

// NewPaginationState returns a state positioned at page with the given page size and total.
func NewPaginationState(page, rowsPerPage, totalCount int) (*PaginationState, error) {
	if rowsPerPage <= 0 {
		return nil, ErrInvalidPageSize
	}
	if !offsetFits(page, rowsPerPage) {
		return nil, ErrInvalidPage
	}
	if totalCount < 0 {
		return nil, ErrInvalidTotalCount
	}
	return &PaginationState{page: page, rowsPerPage: rowsPerPage, totalCount: totalCount}, nil
}

// DefaultPaginationState returns page 0, 10 rows per page and an empty collection.
func DefaultPaginationState() *PaginationState {
	return &PaginationState{page: DefaultPage, rowsPerPage: DefaultRowsPerPage}
}

func (p *PaginationState) Page() int        { return p.page }
func (p *PaginationState) RowsPerPage() int { return p.rowsPerPage }
func (p *PaginationState) TotalCount() int  { return p.totalCount }

// SetPage moves to newPage. Pages past the end are accepted and read as empty;
// a page whose offset would overflow int is rejected.
func (p *PaginationState) SetPage(newPage int) error {
	if !offsetFits(newPage, p.rowsPerPage) {
		return ErrInvalidPage
	}
	p.page = newPage
	return nil
}

// SetRowsPerPage changes the page size and rewinds to the first page.
func (p *PaginationState) SetRowsPerPage(n int) error {
	if n <= 0 {
		return ErrInvalidPageSize
	}
	p.rowsPerPage = n
	p.page = 0
	return nil
}

// SetTotalCount records the collection size reported by the latest query.
func (p *PaginationState) SetTotalCount(n int) error {
	if n < 0 {
		return ErrInvalidTotalCount
	}
	p.totalCount = n
	return nil
}

// Offset returns the index of the first item on the current page.
func (p *PaginationState) Offset() int {
	return p.page * p.rowsPerPage
}

// TotalPages returns ceil(totalCount / rowsPerPage).
func (p *PaginationState) TotalPages() int {
	n := p.totalCount / p.rowsPerPage
	if p.totalCount%p.rowsPerPage != 0 {
		n++
	}
	return n
}

// OutOfRange reports whether the current page starts at or past the end of the collection.
func (p *PaginationState) OutOfRange() bool {
	return p.page >= p.TotalPages()
}

func offsetFits(page, rowsPerPage int) bool {
	return page >= 0 && page <= math.MaxInt/rowsPerPage
}

// Window returns the limit/offset pair for the current page.
func (p *PaginationState) Window() PageWindow {
	return PageWindow{Limit: p.rowsPerPage, Offset: p.Offset()}
}

// Page is one slice of a listing together with the size of the whole collection.
type Page[T any] struct {
	Items []T
	Total int
}
