// Package session owns the per-user client state: the connected wallet,
// active network, asset inventory, incinerator snapshot, row selection, and
// the cached burn plan recomputed whenever any of them changes.
package session

import "sort"

// Selection tracks which displayed inventory rows are chosen for burning.
// Indices are positional over the displayed order, so the selection must be
// cleared whenever the inventory is rebuilt: a stale index after a rebuild
// would silently select the wrong asset.
type Selection struct {
	rows map[int]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{rows: make(map[int]struct{})}
}

// Toggle flips the selection state of a row.
func (s *Selection) Toggle(row int) {
	if _, ok := s.rows[row]; ok {
		delete(s.rows, row)
		return
	}
	s.rows[row] = struct{}{}
}

// Select marks a row as selected.
func (s *Selection) Select(row int) {
	s.rows[row] = struct{}{}
}

// Deselect unmarks a row.
func (s *Selection) Deselect(row int) {
	delete(s.rows, row)
}

// Contains reports whether a row is selected.
func (s *Selection) Contains(row int) bool {
	_, ok := s.rows[row]
	return ok
}

// Count returns the number of selected rows.
func (s *Selection) Count() int {
	return len(s.rows)
}

// Rows returns the selected row indices in ascending order.
func (s *Selection) Rows() []int {
	out := make([]int, 0, len(s.rows))
	for r := range s.rows {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Clear empties the selection. Called on every inventory rebuild.
func (s *Selection) Clear() {
	s.rows = make(map[int]struct{})
}
