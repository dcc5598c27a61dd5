package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// Page is one bounded slice of an ordered listing plus navigation metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Window describes where a resolved page sits inside a listing of TotalItems
// rows. Storage code uses Offset and Limit to fetch only the rows it needs.
type Window struct {
	Number     int
	PageSize   int
	TotalPages int
	TotalItems int
	Offset     int
	Limit      int
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page[T]) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p Page[T]) PreviousNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

func (p Page[T]) Len() int {
	return len(p.Items)
}

// ParsePageNumber reads a client supplied page value. Anything that is not a
// positive integer resolves to page 1. Integers too large for int come back
// as math.MaxInt so callers clamp them to the last page.
func ParsePageNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt
		}
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}

// ResolvePage clamps the requested page into [1, last page] for a listing of
// total items. An empty listing still has one (empty) page.
func ResolvePage(requested string, total, size int) Window {
	if size < 1 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	pages := 1
	if total > 0 {
		pages = (total + size - 1) / size
	}

	number := ParsePageNumber(requested)
	if number > pages {
		number = pages
	}

	offset := (number - 1) * size
	limit := size
	if remaining := total - offset; remaining < limit {
		limit = remaining
	}

	return Window{
		Number:     number,
		PageSize:   size,
		TotalPages: pages,
		TotalItems: total,
		Offset:     offset,
		Limit:      limit,
	}
}

// NewPage wraps items already fetched for w.
func NewPage[T any](items []T, w Window) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Number:     w.Number,
		PageSize:   w.PageSize,
		TotalPages: w.TotalPages,
		TotalItems: w.TotalItems,
	}
}

// Paginate cuts an already ordered slice into the requested page.
func Paginate[T any](items []T, requested string, size int) Page[T] {
	w := ResolvePage(requested, len(items), size)
	end := w.Offset + w.Limit
	return NewPage(items[w.Offset:end:end], w)
}
