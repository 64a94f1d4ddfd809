package stats

// RecentList is a fixed-capacity, most-recent-first list with duplicate
// elimination. Pushing an item places it at the front, removes any other
// occurrence with the same equality key, and truncates to capacity.
//
// A RecentList is not safe for concurrent use; the Store serializes access.
type RecentList[T any] struct {
	capacity int
	key      func(T) string
	items    []T
}

// NewRecentList creates a list bounded to capacity entries, using key to
// derive the equality key for duplicate elimination.
func NewRecentList[T any](capacity int, key func(T) string) *RecentList[T] {
	return &RecentList[T]{
		capacity: capacity,
		key:      key,
	}
}

// Push inserts item at the front. The result is treated as a new immutable
// value: a fresh slice is built and installed, never mutated in place.
func (l *RecentList[T]) Push(item T) {
	k := l.key(item)
	next := make([]T, 0, len(l.items)+1)
	next = append(next, item)
	for _, existing := range l.items {
		if l.key(existing) == k {
			continue
		}
		next = append(next, existing)
	}
	if len(next) > l.capacity {
		next = next[:l.capacity]
	}
	l.items = next
}

// Items returns a copy of the list, most recent first. Never nil.
func (l *RecentList[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entries currently held.
func (l *RecentList[T]) Len() int {
	return len(l.items)
}
