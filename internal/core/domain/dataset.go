package domain

// Row is a single record: cell values positionally aligned with the
// dataset's column header. Every row in a dataset has exactly the same
// column count as the header.
type Row []string

// Equal reports whether two rows have identical values in identical order.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// DiffSummary counts the differences between the working table and the
// original snapshot. Rows in the overlapping range are compared whole:
// any single cell difference counts the row as modified.
type DiffSummary struct {
	ModifiedRows int
	AddedRows    int
	DeletedRows  int
}

// Dataset owns the authoritative in-memory table. It holds an immutable
// snapshot captured at load time and a mutable working copy edited by
// the user. The working table is exclusively owned and mutated by this
// type; all other components only read row content.
type Dataset struct {
	columns  []string
	original []Row
	working  []Row

	// aliased is true while working still shares row storage with
	// original. Large datasets defer the deep copy until the first
	// mutation; aliasing never survives past the first write.
	aliased bool

	// modified tracks overlapping-range rows that currently differ
	// from original, so dirty stays an iff without a full rescan on
	// every cell write.
	modified map[int]struct{}

	dirty bool
}

// DefaultCopyThreshold is the row count above which the working copy
// initially aliases the original snapshot until the first mutation.
const DefaultCopyThreshold = 5000

// NewDataset constructs a dataset from a uniform-column header and an
// ordered sequence of rows. Returns ErrEmptyDataset when there are no
// rows or no columns. copyThreshold <= 0 selects DefaultCopyThreshold.
func NewDataset(columns []string, rows []Row, copyThreshold int) (*Dataset, error) {
	if len(columns) == 0 || len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	if copyThreshold <= 0 {
		copyThreshold = DefaultCopyThreshold
	}

	d := &Dataset{
		columns:  append([]string(nil), columns...),
		original: rows,
		modified: make(map[int]struct{}),
	}

	if len(rows) > copyThreshold {
		// Defer the deep copy until the first write.
		d.working = rows
		d.aliased = true
	} else {
		d.working = cloneRows(rows)
	}

	return d, nil
}

// Columns returns the dataset's column header.
func (d *Dataset) Columns() []string {
	return d.columns
}

// ColumnIndex returns the position of a column name in the header.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// RowCount returns the number of rows in the working table.
func (d *Dataset) RowCount() int {
	return len(d.working)
}

// OriginalRowCount returns the number of rows in the load-time snapshot.
func (d *Dataset) OriginalRowCount() int {
	return len(d.original)
}

// Row returns the working row at the given position. The returned slice
// is owned by the dataset; callers must not modify it.
func (d *Dataset) Row(pos int) (Row, error) {
	if pos < 0 || pos >= len(d.working) {
		return nil, ErrIndexOutOfRange
	}
	return d.working[pos], nil
}

// Rows returns the working table for read-only iteration.
func (d *Dataset) Rows() []Row {
	return d.working
}

// Dirty reports whether the working table differs from the original
// snapshot in content, row count, or order.
func (d *Dataset) Dirty() bool {
	return d.dirty
}

// UpdateCell sets a cell value in the working table. Writing the value
// a cell already holds is a no-op. Returns ErrIndexOutOfRange or
// ErrUnknownColumn for bad coordinates.
func (d *Dataset) UpdateCell(pos int, column, value string) error {
	if pos < 0 || pos >= len(d.working) {
		return ErrIndexOutOfRange
	}
	col, ok := d.ColumnIndex(column)
	if !ok {
		return ErrUnknownColumn
	}
	if d.working[pos][col] == value {
		return nil
	}

	d.ensureOwned()
	d.working[pos][col] = value
	d.reviseRow(pos)
	d.recomputeDirty()
	return nil
}

// InsertRow appends a row whose every cell is the empty string.
func (d *Dataset) InsertRow() {
	d.ensureOwned()
	d.working = append(d.working, make(Row, len(d.columns)))
	// After earlier deletions the appended row can land inside the
	// original's range, so it needs the same per-row tracking as a
	// cell write.
	d.reviseRow(len(d.working) - 1)
	d.recomputeDirty()
}

// DeleteRows removes the rows at the given positions, processed in
// descending order so earlier removals do not shift the indices of
// pending removals. Out-of-range and duplicate positions are ignored.
// Deleting nothing is a no-op. Returns the positions actually removed,
// in descending order, so callers can renumber dependent state.
func (d *Dataset) DeleteRows(positions []int) []int {
	targets := normaliseDescending(positions, len(d.working))
	if len(targets) == 0 {
		return nil
	}

	d.ensureOwned()
	for _, pos := range targets {
		d.working = append(d.working[:pos], d.working[pos+1:]...)
	}

	// Deletion shifts every subsequent row, so the per-row tracking
	// is stale. Rebuild it.
	d.rescanModified()
	d.recomputeDirty()
	return targets
}

// Discard resets the working table to a fresh deep copy of the original
// snapshot and clears the dirty flag. The caller clears any selection.
func (d *Dataset) Discard() {
	d.working = cloneRows(d.original)
	d.aliased = false
	d.modified = make(map[int]struct{})
	d.dirty = false
}

// CommitBaseline replaces the original snapshot with a deep copy of the
// working table. Called after a modification record is committed: the
// edit becomes the new baseline and the dataset is clean again.
func (d *Dataset) CommitBaseline() {
	d.original = cloneRows(d.working)
	d.aliased = false
	d.modified = make(map[int]struct{})
	d.dirty = false
}

// DiffSummary compares the working table against the original snapshot.
func (d *Dataset) DiffSummary() DiffSummary {
	var s DiffSummary
	s.ModifiedRows = len(d.modified)
	if n := len(d.working) - len(d.original); n > 0 {
		s.AddedRows = n
	} else if n < 0 {
		s.DeletedRows = -n
	}
	return s
}

// ensureOwned deep-copies the working table before the first mutation
// when it still aliases the original snapshot.
func (d *Dataset) ensureOwned() {
	if !d.aliased {
		return
	}
	d.working = cloneRows(d.original)
	d.aliased = false
}

// reviseRow updates the modified-row tracking for a single position
// after a cell write.
func (d *Dataset) reviseRow(pos int) {
	if pos >= len(d.original) {
		return
	}
	if d.working[pos].Equal(d.original[pos]) {
		delete(d.modified, pos)
	} else {
		d.modified[pos] = struct{}{}
	}
}

// rescanModified rebuilds the modified-row tracking by comparing the
// overlapping range of working and original.
func (d *Dataset) rescanModified() {
	d.modified = make(map[int]struct{})
	n := len(d.working)
	if len(d.original) < n {
		n = len(d.original)
	}
	for i := 0; i < n; i++ {
		if !d.working[i].Equal(d.original[i]) {
			d.modified[i] = struct{}{}
		}
	}
}

// recomputeDirty maintains the invariant that dirty is true iff working
// is not value-and-order-equal to original.
func (d *Dataset) recomputeDirty() {
	d.dirty = len(d.modified) > 0 || len(d.working) != len(d.original)
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// normaliseDescending deduplicates positions, drops out-of-range values
// and returns the remainder sorted descending.
func normaliseDescending(positions []int, length int) []int {
	seen := make(map[int]struct{}, len(positions))
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		if p < 0 || p >= length {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	// Insertion sort, descending. Deletion batches are small.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] > out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
