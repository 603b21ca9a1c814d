package steplist

// Reorder returns a new slice with the element at from moved to to. The input
// is never modified. When from equals to, or either index is out of range, the
// result is an unchanged copy of list.
func Reorder[T any](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)

	if from == to || !inRange(from, len(list)) || !inRange(to, len(list)) {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}

// Location identifies a position inside the droppable step list.
type Location struct {
	Index int `json:"index"`
}

// DragResult is what the gesture layer reports when a drag ends. A nil
// Destination means the item was dropped outside the list.
type DragResult struct {
	Source      Location  `json:"source"`
	Destination *Location `json:"destination"`
}

// Move resolves the drag result into a (from, to) pair. ok is false when the
// drop should be ignored.
func (r DragResult) Move() (from, to int, ok bool) {
	if r.Destination == nil {
		return 0, 0, false
	}
	if r.Source.Index == r.Destination.Index {
		return 0, 0, false
	}
	return r.Source.Index, r.Destination.Index, true
}
