// Package history keeps a bounded linear undo/redo stack of full snapshots.
package history

import "slices"

const DefaultLimit = 50

// History stores snapshots of a collection and a cursor pointing at the
// current one. Entries after the cursor are the redo branch.
type History[T comparable] struct {
	entries [][]T
	index   int
	limit   int
}

// New creates an empty history holding at most limit entries.
func New[T comparable](limit int) *History[T] {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History[T]{index: -1, limit: limit}
}

// Reset discards everything and seeds the history with a single entry.
func (h *History[T]) Reset(seed []T) {
	h.entries = [][]T{slices.Clone(seed)}
	h.index = 0
}

// Commit records snapshot as the newest entry. It returns false when the
// snapshot equals the current entry, in which case nothing changes.
func (h *History[T]) Commit(snapshot []T) bool {
	if h.index >= 0 && slices.Equal(h.entries[h.index], snapshot) {
		return false
	}

	// Committing from the middle of the stack drops the redo branch.
	h.entries = append(h.entries[:h.index+1], slices.Clone(snapshot))
	if len(h.entries) > h.limit {
		h.entries = slices.Delete(h.entries, 0, len(h.entries)-h.limit)
	}
	h.index = len(h.entries) - 1
	return true
}

// Undo steps back one entry and returns a copy of it.
func (h *History[T]) Undo() ([]T, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.index--
	return slices.Clone(h.entries[h.index]), true
}

// Redo steps forward one entry and returns a copy of it.
func (h *History[T]) Redo() ([]T, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.index++
	return slices.Clone(h.entries[h.index]), true
}

func (h *History[T]) CanUndo() bool { return h.index > 0 }

func (h *History[T]) CanRedo() bool { return h.index >= 0 && h.index < len(h.entries)-1 }

// Len returns the number of stored entries.
func (h *History[T]) Len() int { return len(h.entries) }

// Index returns the cursor, or -1 for an empty history.
func (h *History[T]) Index() int { return h.index }
