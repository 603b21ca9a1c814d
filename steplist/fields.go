package steplist

// Field is an entry of a nested list paired with its stable identifier.
type Field[T any] struct {
	ID    string `json:"id"`
	Value T      `json:"value"`
}

// fieldList is an insertion-ordered collection addressed by id rather than
// by position, so removing an entry never changes the identity of the others.
type fieldList[T any] struct {
	entries []Field[T]
}

func (l *fieldList[T]) add(id string, value T) {
	l.entries = append(l.entries, Field[T]{ID: id, Value: value})
}

func (l *fieldList[T]) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *fieldList[T]) update(id string, value T) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.entries[i].Value = value
	return true
}

func (l *fieldList[T]) remove(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

func (l *fieldList[T]) values() []T {
	out := make([]T, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Value
	}
	return out
}

func (l *fieldList[T]) snapshot() []Field[T] {
	out := make([]Field[T], len(l.entries))
	copy(out, l.entries)
	return out
}
