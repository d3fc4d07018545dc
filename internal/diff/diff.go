// Package diff computes keyed edit scripts between two ordered sequences.
package diff

// NoMatch marks an insert that does not reuse a removed element.
const NoMatch = -1

// Insert is an element present only in the next sequence.
type Insert[T any] struct {
	Index int // position in next
	Item  T
	// Matched is the previous index of a removed element whose view the
	// insert may morph from, or NoMatch.
	Matched int
}

// Update is an element present in both sequences.
type Update[T any] struct {
	Index    int // position in next
	Item     T
	Previous int // position in previous
}

// Moved reports whether the element changed position.
func (u Update[T]) Moved() bool { return u.Index != u.Previous }

// Script is the edit script turning previous into next. Removed indices
// refer to previous; Inserted and Updated indices refer to next. Apply
// removals first (highest index first), then inserts, then updates.
type Script[T any] struct {
	Removed  []int
	Inserted []Insert[T]
	Updated  []Update[T]
}

// Empty reports whether the script changes nothing, moves included.
func (s Script[T]) Empty() bool {
	if len(s.Removed) > 0 || len(s.Inserted) > 0 {
		return false
	}
	for _, u := range s.Updated {
		if u.Moved() {
			return false
		}
	}
	return true
}

// Substituted reports whether the single insert reuses the single removal.
func (s Script[T]) Substituted() bool {
	return len(s.Inserted) == 1 && s.Inserted[0].Matched != NoMatch
}

// Compute matches elements by key. Keys must be unique within each sequence;
// a duplicate key in either sequence panics.
//
// When exactly one element is removed and exactly one is inserted, the insert
// is paired with the removal so the caller can morph one view into the other.
func Compute[T any](previous, next []T, key func(T) string) Script[T] {
	prevIndex := index(previous, key)
	nextIndex := index(next, key)

	var s Script[T]
	for i, item := range previous {
		if _, ok := nextIndex[key(item)]; !ok {
			s.Removed = append(s.Removed, i)
		}
	}
	for i, item := range next {
		if j, ok := prevIndex[key(item)]; ok {
			s.Updated = append(s.Updated, Update[T]{Index: i, Item: item, Previous: j})
			continue
		}
		s.Inserted = append(s.Inserted, Insert[T]{Index: i, Item: item, Matched: NoMatch})
	}

	if len(s.Removed) == 1 && len(s.Inserted) == 1 {
		s.Inserted[0].Matched = s.Removed[0]
	}
	return s
}

func index[T any](items []T, key func(T) string) map[string]int {
	m := make(map[string]int, len(items))
	for i, item := range items {
		k := key(item)
		if _, dup := m[k]; dup {
			panic("diff: duplicate key " + k)
		}
		m[k] = i
	}
	return m
}
