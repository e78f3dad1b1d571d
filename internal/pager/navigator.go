package pager

// Navigator tracks the current page of a list. Every move reports whether it
// changed anything; moves outside [0, Total-1] or onto the current page are
// no-ops.
type Navigator struct {
	Index int
	Total int
}

func (n *Navigator) GoTo(p int) bool {
	if n == nil {
		return false
	}
	if p < 0 || p >= n.Total || p == n.Index {
		return false
	}
	n.Index = p
	return true
}

func (n *Navigator) First() bool { return n.GoTo(0) }

func (n *Navigator) Last() bool {
	if n == nil {
		return false
	}
	return n.GoTo(n.Total - 1)
}

func (n *Navigator) Prev() bool {
	if n == nil {
		return false
	}
	return n.GoTo(n.Index - 1)
}

func (n *Navigator) Next() bool {
	if n == nil {
		return false
	}
	return n.GoTo(n.Index + 1)
}

// Apply runs a named move ("first", "prev", "next", "last", "goto"). Unknown
// actions are no-ops.
func (n *Navigator) Apply(action string, target int) bool {
	switch action {
	case "first":
		return n.First()
	case "prev":
		return n.Prev()
	case "next":
		return n.Next()
	case "last":
		return n.Last()
	case "goto":
		return n.GoTo(target)
	default:
		return false
	}
}
