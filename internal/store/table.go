package store

import (
	"sync"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
)

// Patch merges a partial update into a record.
type Patch[T any] interface {
	Apply(*T)
}

type record[T any] interface {
	*T
	Metadata() *domain.Meta
}

// Table is one entity collection. Rows keep insertion order, lookups are linear
// scans, and every method returns copies so callers never alias stored rows.
type Table[T any, P Patch[T]] struct {
	mu    sync.RWMutex
	rows  []T
	meta  func(*T) *domain.Meta
	newID func() string
	now   func() time.Time
}

func newTable[T any, P Patch[T], R record[T]](newID func() string, now func() time.Time) *Table[T, P] {
	return &Table[T, P]{
		meta:  func(v *T) *domain.Meta { return R(v).Metadata() },
		newID: newID,
		now:   now,
	}
}

// List returns a snapshot of all rows in insertion order.
func (t *Table[T, P]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

// Get returns the row with the given id; ok is false when there is none.
func (t *Table[T, P]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.index(id); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

// Add assigns a fresh id and creation time, ignoring whatever the input carried.
func (t *Table[T, P]) Add(v T) T {
	m := t.meta(&v)
	m.ID = t.newID()
	m.CreatedAt = t.now()

	t.mu.Lock()
	t.rows = append(t.rows, v)
	t.mu.Unlock()
	return v
}

// Update merges patch into the row in place. Fields the patch leaves unset are kept.
// The id and creation time are immutable.
func (t *Table[T, P]) Update(id string, patch P) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	row := &t.rows[i]
	keep := *t.meta(row)
	patch.Apply(row)
	*t.meta(row) = keep
	return *row, true
}

// Delete removes the row. Rows elsewhere that reference it are left alone.
func (t *Table[T, P]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

// Find returns the rows matching pred in insertion order.
func (t *Table[T, P]) Find(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, row := range t.rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// Count returns how many rows match pred.
func (t *Table[T, P]) Count(pred func(T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, row := range t.rows {
		if pred(row) {
			n++
		}
	}
	return n
}

func (t *Table[T, P]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// seed stores rows verbatim, ids and timestamps included.
func (t *Table[T, P]) seed(rows ...T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, rows...)
}

func (t *Table[T, P]) index(id string) int {
	for i := range t.rows {
		if t.meta(&t.rows[i]).ID == id {
			return i
		}
	}
	return -1
}
