// Package pagination computes page windows and boundary metadata over
// item collections.
package pagination

// Meta describes one page window within a collection.
type Meta struct {
	Page        int   `json:"page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_previous_page"`
}

// Result carries a windowed item slice plus its metadata.
type Result[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// Compute derives page metadata from a total count. Page and perPage are
// normalized to at least 1; an empty collection still yields a single
// valid page. A page past the end is not an error, it is an empty window.
func Compute(totalItems int64, page, perPage int) Meta {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		Page:        page,
		PerPage:     perPage,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Offset returns the zero-based item offset of the page window.
func (m Meta) Offset() int {
	return (m.Page - 1) * m.PerPage
}

// Paginate windows an in-memory slice. The window is the slice at offset
// (page-1)*perPage of length perPage, clamped to the available items.
func Paginate[T any](items []T, page, perPage int) Result[T] {
	meta := Compute(int64(len(items)), page, perPage)

	start := meta.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + meta.PerPage
	if end > len(items) {
		end = len(items)
	}

	window := make([]T, end-start)
	copy(window, items[start:end])
	return Result[T]{Items: window, Meta: meta}
}
