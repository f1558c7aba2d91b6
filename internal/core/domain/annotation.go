package domain

import "time"

// Annotation is a per-cell explanatory note. A cell carries at most one
// annotation: re-annotating overwrites the explanation, author and
// timestamp but keeps the original colour tag as a keying convenience.
type Annotation struct {
	// ID is the unique identifier for the annotation.
	ID string

	// FileID links to the annotated file.
	FileID string

	// Row is the zero-based row position in the working table.
	Row int

	// Column is the annotated column name.
	Column string

	// Explanation is the note text. Never empty.
	Explanation string

	// Author is the identity that wrote the current explanation.
	Author Actor

	// Color is the deterministic colour tag assigned when the cell
	// was first annotated. Stable across overwrites.
	Color string

	// CreatedAt is when the current explanation was written.
	CreatedAt time.Time
}

// CellKey addresses a single cell by position and column name.
type CellKey struct {
	Row    int
	Column string
}

// Key returns the annotation's cell address.
func (a *Annotation) Key() CellKey {
	return CellKey{Row: a.Row, Column: a.Column}
}

// annotationPalette is the fixed colour palette cycled by annotation
// count at creation time.
var annotationPalette = []string{
	"#F38BA8", // red
	"#FAB387", // orange
	"#F9E2AF", // yellow
	"#A6E3A1", // green
	"#94E2D5", // teal
	"#89B4FA", // blue
	"#CBA6F7", // purple
	"#F5C2E7", // pink
}

// PaletteColor returns the colour tag for the nth annotation created
// in a ledger: palette[n % paletteSize].
func PaletteColor(n int) string {
	if n < 0 {
		n = 0
	}
	return annotationPalette[n%len(annotationPalette)]
}

// PaletteSize returns the number of colours in the fixed palette.
func PaletteSize() int {
	return len(annotationPalette)
}
