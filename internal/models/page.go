package models

// Page is one page of a filtered list.
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// Pages returns the number of pages needed for Total items.
func (p Page[T]) Pages() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// ListQuery is the navigation context of a list view: current page, page
// size, free-text filter and display language. It is passed explicitly
// instead of living in session state.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Lang     string
}

// Clamp fills defaults and bounds the page size to max.
func (q ListQuery) Clamp(defaultSize, max int) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultSize
	}
	if max > 0 && q.PageSize > max {
		q.PageSize = max
	}
	return q
}

// Paginate cuts the page described by q out of all. q must be clamped.
func Paginate[T any](all []T, q ListQuery) Page[T] {
	p := Page[T]{Page: q.Page, PageSize: q.PageSize, Total: len(all), Items: []T{}}
	if q.PageSize <= 0 {
		p.Items = append(p.Items, all...)
		return p
	}
	start := (q.Page - 1) * q.PageSize
	if start >= len(all) {
		return p
	}
	end := start + q.PageSize
	if end > len(all) {
		end = len(all)
	}
	p.Items = append(p.Items, all[start:end]...)
	return p
}
