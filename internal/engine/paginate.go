package engine

const DefaultPageSize = 10

type PageSpec struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages is ceil(total/pageSize) with a floor of 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices items for the requested page. Out-of-range pages are
// clamped and a non-positive page size falls back to DefaultPageSize.
func Paginate[T any](items []T, spec PageSpec) Page[T] {
	size := spec.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := TotalPages(total, size)

	page := spec.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	slice := make([]T, end-start)
	copy(slice, items[start:end])

	return Page[T]{
		Items:      slice,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
	}
}
