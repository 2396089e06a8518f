package models

// Page is the paged envelope used by backend list endpoints. The JSON field
// names match the backend contract (content/totalElements/...).
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	PageNumber    int `json:"pageNumber"`
	PageSize      int `json:"pageSize"`
}

// TotalPages derives the page count from the envelope. A zero or negative
// page size yields 0.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := p.TotalElements / p.PageSize
	if p.TotalElements%p.PageSize != 0 {
		pages++
	}
	return pages
}
