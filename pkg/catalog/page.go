package catalog

// DefaultPageSize is the number of records per page unless configured
const DefaultPageSize = 12

// Page is one window of a sorted list
type Page[T any] struct {
	Items []T `json:"items"`
	Index int `json:"index"`
	Size  int `json:"size"`
	Count int `json:"pageCount"`
	Total int `json:"total"`
}

// HasNext reports whether a following page exists
func (p Page[T]) HasNext() bool { return p.Index+1 < p.Count }

// HasPrevious reports whether a preceding page exists
func (p Page[T]) HasPrevious() bool { return p.Index > 0 }

// PageCount returns ceil(total/size), 0 for an empty list
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns page index of items. A page past the end is empty.
func Paginate[T any](items []T, index, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page[T]{
		Index: index,
		Size:  size,
		Count: PageCount(len(items), size),
		Total: len(items),
	}
	start := index * size
	if index < 0 || start >= len(items) {
		p.Items = []T{}
		return p
	}
	end := min(start+size, len(items))
	p.Items = items[start:end]
	return p
}

// Window is a position within a paginated list
type Window struct {
	Index int
	Size  int
}

// NewWindow creates a window on the first page
func NewWindow(size int) Window {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Window{Size: size}
}

// Next moves forward one page; it is a no-op on the last page
func (w Window) Next(total int) Window {
	return w.GoTo(w.Index+1, total)
}

// Previous moves back one page; it is a no-op on the first page
func (w Window) Previous(total int) Window {
	return w.GoTo(w.Index-1, total)
}

// GoTo jumps to page n; it is a no-op when n is out of range
func (w Window) GoTo(n, total int) Window {
	if n < 0 || n >= PageCount(total, w.Size) {
		return w
	}
	w.Index = n
	return w
}

// Reset returns to the first page
func (w Window) Reset() Window {
	w.Index = 0
	return w
}

// Clamp pulls the index back into range after the list shrank
func (w Window) Clamp(total int) Window {
	last := PageCount(total, w.Size) - 1
	if w.Index > last {
		w.Index = max(last, 0)
	}
	return w
}
