// Package history keeps an undo/redo stack of committed states.
package history

// Store holds an ordered sequence of committed states and a cursor into it.
// States are stored as given; callers must not mutate a value after handing
// it to the store.
type Store[T any] struct {
	entries []T
	index   int
	equal   func(a, b T) bool
}

// New returns a store holding a single initial entry. equal is used to drop
// non-overwrite updates that do not change the state; nil disables dedupe.
func New[T any](initial T, equal func(a, b T) bool) *Store[T] {
	return &Store[T]{entries: []T{initial}, equal: equal}
}

// State returns the entry at the cursor.
func (s *Store[T]) State() T { return s.entries[s.index] }

// SetState applies update to the current entry. With overwrite the result
// replaces the current entry in place and the redo tail is kept; otherwise
// the redo tail is dropped and the result becomes a new undo step, unless it
// equals the current entry.
func (s *Store[T]) SetState(update func(T) T, overwrite bool) {
	cur := s.entries[s.index]
	next := update(cur)
	if overwrite {
		s.entries[s.index] = next
		return
	}
	if s.equal != nil && s.equal(cur, next) {
		return
	}
	s.entries = append(s.entries[:s.index+1:s.index+1], next)
	s.index = len(s.entries) - 1
}

// Undo moves the cursor one entry back. No-op at the oldest entry.
func (s *Store[T]) Undo() {
	if s.index > 0 {
		s.index--
	}
}

// Redo moves the cursor one entry forward. No-op at the newest entry.
func (s *Store[T]) Redo() {
	if s.index < len(s.entries)-1 {
		s.index++
	}
}

func (s *Store[T]) CanUndo() bool { return s.index > 0 }
func (s *Store[T]) CanRedo() bool { return s.index < len(s.entries)-1 }

// Reset discards all undo/redo entries and starts over from state.
func (s *Store[T]) Reset(state T) {
	s.entries = []T{state}
	s.index = 0
}

// Len is the number of stored entries.
func (s *Store[T]) Len() int { return len(s.entries) }

// Index is the cursor position.
func (s *Store[T]) Index() int { return s.index }
