package pager

const (
	DefaultSize   = 10
	DefaultWindow = 3
)

// TotalPages is never below one, so an empty collection still has page 0.
func TotalPages(length, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	if length <= 0 {
		return 1
	}
	return (length + size - 1) / size
}

// Clamp keeps index inside [0, totalPages-1].
func Clamp(index, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if index >= totalPages {
		index = totalPages - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Slice returns the page at index together with the clamped index actually
// used. The input is never modified.
func Slice[T any](items []T, index, size int) ([]T, int) {
	if size <= 0 {
		size = DefaultSize
	}
	index = Clamp(index, TotalPages(len(items), size))

	from := index * size
	to := from + size
	if to > len(items) {
		to = len(items)
	}
	if from > to {
		from = to
	}

	out := make([]T, to-from)
	copy(out, items[from:to])
	return out, index
}

// Meta describes one rendered page of a list.
type Meta struct {
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalPages    int    `json:"total_pages"`
	TotalElements int64  `json:"total_elements"`
	Window        []Item `json:"window"`
}

func NewMeta(index, size, totalPages int, totalElements int64) Meta {
	return Meta{
		Page:          index,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		Window:        PinnedWindow(totalPages, index, DefaultWindow),
	}
}

// NewSlidingMeta is NewMeta with an unpinned sliding window, used where the
// first and last pages are reached through explicit navigation buttons.
func NewSlidingMeta(index, size, totalPages int, totalElements int64) Meta {
	pages := SlidingWindow(totalPages, index, DefaultWindow)
	window := make([]Item, len(pages))
	for i, p := range pages {
		window[i] = PageItem(p)
	}
	return Meta{
		Page:          index,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		Window:        window,
	}
}
