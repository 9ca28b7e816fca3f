// Package pagination implements page-number pagination with clamping.
// Requested page numbers never produce an error: anything that is not a
// positive integer resolves to the first page, and anything past the end
// resolves to the last page.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize is the number of items per page used by list endpoints.
const DefaultPageSize = 10

// Page describes one resolved page of a result set.
type Page struct {
	Number     int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// New resolves a raw page parameter against the total item count.
// An empty result set still has one (empty) page.
func New(totalItems int64, size int, requested string) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(requested))
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Offset returns the row offset of the first item on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// HasPrev reports whether a page precedes this one.
func (p Page) HasPrev() bool {
	return p.Number > 1
}
