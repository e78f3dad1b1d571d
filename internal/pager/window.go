package pager

import (
	"encoding/json"
	"strconv"
)

// EllipsisText is how a gap is rendered.
const EllipsisText = "…"

// Item is either a zero-based page index or an ellipsis marker.
type Item struct {
	Page     int
	Ellipsis bool
}

func PageItem(p int) Item { return Item{Page: p} }

func EllipsisItem() Item { return Item{Ellipsis: true} }

func (it Item) String() string {
	if it.Ellipsis {
		return EllipsisText
	}
	return strconv.Itoa(it.Page)
}

// MarshalJSON renders pages as numbers and gaps as "…".
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Ellipsis {
		return json.Marshal(EllipsisText)
	}
	return json.Marshal(it.Page)
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*it = PageItem(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*it = EllipsisItem()
	return nil
}

// SlidingWindow returns width consecutive page indexes around current, shifted
// so that the window never leaves [0, total-1]. When total <= width every page
// is returned.
func SlidingWindow(total, current, width int) []int {
	if total <= 0 {
		return []int{}
	}
	if width <= 0 {
		width = DefaultWindow
	}
	if total <= width {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}

	start := current - width/2
	end := start + width - 1
	if start < 0 {
		start = 0
		end = width - 1
	}
	if end >= total {
		end = total - 1
		start = total - width
	}

	out := make([]int, 0, width)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// PinnedWindow always shows the first and last page around a sliding middle
// window, with an ellipsis wherever pages are skipped:
//
//	total=20 current=5  -> 0 … 4 5 6 … 19
//	total=20 current=0  -> 0 1 2 … 19
func PinnedWindow(total, current int, width int) []Item {
	if total <= 1 {
		return []Item{PageItem(0)}
	}
	last := total - 1
	mid := SlidingWindow(total, Clamp(current, total), width)

	items := make([]Item, 0, len(mid)+4)
	items = append(items, PageItem(0))
	if mid[0] > 1 {
		items = append(items, EllipsisItem())
	}
	for _, p := range mid {
		items = append(items, PageItem(p))
	}
	if mid[len(mid)-1] < last-1 {
		items = append(items, EllipsisItem())
	}
	items = append(items, PageItem(last))

	return dedupeAdjacent(items)
}

func dedupeAdjacent(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for i, it := range items {
		if i > 0 && it == items[i-1] {
			continue
		}
		out = append(out, it)
	}
	return out
}
