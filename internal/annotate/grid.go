package annotate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
	"github.com/ironsheep/form-roi-tools/internal/layout"
)

// ErrMissingColumns reports that too few vertical gridlines were collected to
// delimit every requested column.
var ErrMissingColumns = errors.New("fewer vertical gridlines than columns require")

// MissingColumnsError names the columns that produced no cells.
type MissingColumnsError struct {
	Columns       []string
	VerticalLines int
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%v: %d vertical lines, no cells for %s",
		ErrMissingColumns, e.VerticalLines, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// DeriveCells builds table cell rectangles from sorted gridlines.
//
// xs and ys are ascending vertical and horizontal gridline positions in
// original pixels. colIdx selects which columns produce cells. For each pair
// of adjacent horizontal lines (top to bottom) and each selected column (left
// to right) one cell named "<column>__<row>" is emitted. Rows beyond the named
// rows are called "row<n>" with n counted from 1.
//
// Columns whose right gridline was never collected are left out. The cells
// that could be derived are always returned; when any column was left out
// the error is a *MissingColumnsError.
func DeriveCells(xs, ys []int, columns, rows []string, colIdx []int) ([]geometry.Rect, error) {
	var missing []string
	usable := make([]int, 0, len(colIdx))
	for _, c := range colIdx {
		if c >= len(xs)-1 {
			missing = append(missing, columns[c])
			continue
		}
		usable = append(usable, c)
	}

	var cells []geometry.Rect
	for r := 0; r+1 < len(ys); r++ {
		row := fmt.Sprintf("row%d", r+1)
		if r < len(rows) {
			row = rows[r]
		}
		for _, c := range usable {
			cells = append(cells, geometry.Rect{
				Field: layout.CellName(columns[c], row),
				X:     xs[c],
				Y:     ys[r],
				W:     xs[c+1] - xs[c],
				H:     ys[r+1] - ys[r],
			})
		}
	}

	if len(missing) > 0 {
		return cells, &MissingColumnsError{Columns: missing, VerticalLines: len(xs)}
	}
	return cells, nil
}
