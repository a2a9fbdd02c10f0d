package core

// PageSize is the fixed number of rows per page.
const PageSize = 8

// PageSlice is one page of an ordered transaction list plus the clamped
// navigation state.
type PageSlice struct {
	Rows       []Transaction `json:"rows"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	HasPrev    bool          `json:"hasPrev"`
	HasNext    bool          `json:"hasNext"`
}

// Paginate slices the ordered list into fixed-size pages and clamps the
// requested 1-based page into [1, totalPages]. An empty list yields a single
// empty page rather than zero pages, so callers never see "page 1 of 0".
func Paginate(sorted []Transaction, page, pageSize int) PageSlice {
	totalPages := (len(sorted) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return PageSlice{
		Rows:       sorted[start:end],
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
