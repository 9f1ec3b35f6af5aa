package pagination

// Cursor carries the id of the last row returned when a full page was filled.
// After is nil at the end of the data.
type Cursor struct {
	After *int64 `json:"after"`
}

// Page is the result of one paginated query. Cursor mode fills Data, Cursor,
// Count and Next; offset mode fills Data and Total.
type Page[T any] struct {
	Data   []T     `json:"data"`
	Cursor *Cursor `json:"cursor,omitempty"`
	Count  *int    `json:"count,omitempty"`
	Next   *string `json:"next,omitempty"`
	Total  *int64  `json:"total,omitempty"`
}

// NewCursorPage assembles a cursor-mode page.
func NewCursorPage[T any](data []T, after *int64, next *string) *Page[T] {
	count := len(data)

	return &Page[T]{
		Data:   data,
		Cursor: &Cursor{After: after},
		Count:  &count,
		Next:   next,
	}
}

// NewOffsetPage assembles an offset-mode page.
func NewOffsetPage[T any](data []T, total int64) *Page[T] {
	return &Page[T]{Data: data, Total: &total}
}
