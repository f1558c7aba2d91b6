package domain

// Selection is the set of selected row positions, valid only against
// the current working table. Members are always >= 0 and < the row
// count supplied by structural-edit notifications.
type Selection struct {
	members map[int]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{members: make(map[int]struct{})}
}

// Toggle flips membership of a single row position.
func (s *Selection) Toggle(pos int) {
	if _, ok := s.members[pos]; ok {
		delete(s.members, pos)
		return
	}
	s.members[pos] = struct{}{}
}

// SelectAll replaces the selection with every position in [0, n).
func (s *Selection) SelectAll(n int) {
	s.members = make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		s.members[i] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.members = make(map[int]struct{})
}

// Contains reports whether a row position is selected.
func (s *Selection) Contains(pos int) bool {
	_, ok := s.members[pos]
	return ok
}

// Size returns the number of selected positions.
func (s *Selection) Size() int {
	return len(s.members)
}

// Members returns the selected positions in ascending order.
func (s *Selection) Members() []int {
	out := make([]int, 0, len(s.members))
	for pos := range s.members {
		out = append(out, pos)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Replace substitutes the entire selection with the given positions.
// Range application replaces rather than unions: there is a single
// unambiguous current working range.
func (s *Selection) Replace(positions []int) {
	s.members = make(map[int]struct{}, len(positions))
	for _, pos := range positions {
		s.members[pos] = struct{}{}
	}
}

// Add inserts positions without clearing existing members. Used by the
// chunked range engine, which replaces the selection batch by batch.
func (s *Selection) Add(positions []int) {
	for _, pos := range positions {
		s.members[pos] = struct{}{}
	}
}

// OnRowsDeleted updates the selection after a structural delete.
// Deleted positions leave the selection; surviving members keep their
// original positions within the edit transaction, then anything left
// outside [0, newCount) is dropped to preserve the bounds invariant.
func (s *Selection) OnRowsDeleted(deleted []int, newCount int) {
	for _, pos := range deleted {
		delete(s.members, pos)
	}
	for pos := range s.members {
		if pos < 0 || pos >= newCount {
			delete(s.members, pos)
		}
	}
}

// ValidateRange checks a one-based inclusive range against the row
// count: 1 <= start <= end <= rowCount. Returns ErrInvalidRange on any
// violation.
func ValidateRange(startOneBased, endOneBased, rowCount int) error {
	if startOneBased < 1 || endOneBased < startOneBased || endOneBased > rowCount {
		return ErrInvalidRange
	}
	return nil
}
