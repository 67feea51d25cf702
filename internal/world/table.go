package world

import (
	"slices"
)

// Numbered is implemented by every entity kept in a Table.
type Numbered interface {
	VirtualNumber() Vnum
}

// Table is a vnum sorted, growable array of one entity class. Lookups are
// binary searches; inserts and removals shift later entries, which is why
// they are only reachable through the mutation methods on World.
type Table[T Numbered] struct {
	items []T

	// comparisons counts vnum comparisons made by Resolve.
	comparisons int
}

// NewTable creates an empty table with room for capacity entries.
func NewTable[T Numbered](capacity int) *Table[T] {
	return &Table[T]{items: make([]T, 0, capacity)}
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	return len(t.items)
}

// At returns the entry at rnum i, or the zero value when i is out of range.
func (t *Table[T]) At(i int) T {
	if i < 0 || i >= len(t.items) {
		var zero T
		return zero
	}
	return t.items[i]
}

// Items returns the backing slice. Callers must not modify it.
func (t *Table[T]) Items() []T {
	return t.items
}

// Resolve maps a vnum to its rnum, returning -1 when absent. Vnums outside
// the table's range are rejected before any search.
func (t *Table[T]) Resolve(v Vnum) int {
	n := len(t.items)
	if n == 0 {
		return -1
	}

	t.comparisons += 2
	if v < t.items[0].VirtualNumber() || v > t.items[n-1].VirtualNumber() {
		return -1
	}

	lo, hi := 0, n-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		t.comparisons++
		mv := t.items[mid].VirtualNumber()
		switch {
		case mv == v:
			return mid
		case mv < v:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// Comparisons returns the number of vnum comparisons Resolve has made.
func (t *Table[T]) Comparisons() int {
	return t.comparisons
}

// ResetComparisons zeroes the comparison counter.
func (t *Table[T]) ResetComparisons() {
	t.comparisons = 0
}

// Sorted reports whether the vnums are strictly ascending.
func (t *Table[T]) Sorted() bool {
	for i := 1; i < len(t.items); i++ {
		if t.items[i-1].VirtualNumber() >= t.items[i].VirtualNumber() {
			return false
		}
	}
	return true
}

// position returns the index holding v, or the index v would be inserted at.
func (t *Table[T]) position(v Vnum) (int, bool) {
	return slices.BinarySearchFunc(t.items, v, func(e T, target Vnum) int {
		return int(e.VirtualNumber() - target)
	})
}

// lowerBound returns the index of the first entry with a vnum >= v.
func (t *Table[T]) lowerBound(v Vnum) int {
	i, _ := t.position(v)
	return i
}

func (t *Table[T]) insertAt(i int, e T) {
	t.items = slices.Insert(t.items, i, e)
}

func (t *Table[T]) removeAt(i int) T {
	e := t.items[i]
	t.items = slices.Delete(t.items, i, i+1)
	return e
}

func (t *Table[T]) set(i int, e T) {
	t.items[i] = e
}

// load replaces the contents with entries, sorted by vnum. Duplicates are
// reported by vnum.
func (t *Table[T]) load(entries []T) (Vnum, bool) {
	slices.SortFunc(entries, func(a, b T) int {
		return int(a.VirtualNumber() - b.VirtualNumber())
	})
	for i := 1; i < len(entries); i++ {
		if entries[i-1].VirtualNumber() == entries[i].VirtualNumber() {
			return entries[i].VirtualNumber(), false
		}
	}
	t.items = entries
	return NoVnum, true
}
