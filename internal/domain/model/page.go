package model

// Page represents a generic paginated response
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
}

// NewPage creates a new Page instance with calculated values
func NewPage[T any](content []T, number int, size int, totalElements int64) *Page[T] {
	totalPages := 0
	if size > 0 && totalElements > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}

	return &Page[T]{
		Content:          content,
		Number:           number,
		Size:             size,
		TotalElements:    totalElements,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
	}
}

// Paginate slices an already ordered list. A non-positive size returns everything in one page.
func Paginate[T any](items []T, number int, size int) *Page[T] {
	if size <= 0 {
		return NewPage(items, 0, len(items), int64(len(items)))
	}
	if number < 0 {
		number = 0
	}

	start := min(number*size, len(items))
	end := min(start+size, len(items))
	return NewPage(items[start:end], number, size, int64(len(items)))
}
