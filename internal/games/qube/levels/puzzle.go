// Package levels defines the Qube puzzle format and loads level sets from
// text and YAML files.
package levels

import "strings"

// Fixed stage size. Puzzles never exceed it.
const (
	GridCols = 4
	GridRows = 25
)

// Cell is the code of a single puzzle cube.
type Cell uint8

const (
	CellNormal    Cell = iota // '0' - capture for points, must not escape
	CellForbidden             // '1' - let it pass; capturing it costs a row
	CellAdvantage             // '2' - capturing it leaves an advantage mark
	CellCleared               // captured; never present in files
)

// String returns the cube kind name.
func (c Cell) String() string {
	switch c {
	case CellNormal:
		return "normal"
	case CellForbidden:
		return "forbidden"
	case CellAdvantage:
		return "advantage"
	case CellCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Digit returns the file character for c, or '.' for a cleared cube.
func (c Cell) Digit() byte {
	if c > CellAdvantage {
		return '.'
	}
	return '0' + byte(c)
}

// Live reports whether the cube is still on the puzzle.
func (c Cell) Live() bool {
	return c != CellCleared
}

// CellFromDigit maps a level file character to its cell code.
func CellFromDigit(ch byte) (Cell, bool) {
	switch ch {
	case '0':
		return CellNormal, true
	case '1':
		return CellForbidden, true
	case '2':
		return CellAdvantage, true
	default:
		return 0, false
	}
}

// Puzzle is a rectangular block of cubes, stored [row][col] in file order.
// The puzzle rolls downward, so the last row is the first to leave the stage.
type Puzzle [][]Cell

// Rows returns the number of rows.
func (p Puzzle) Rows() int {
	return len(p)
}

// Cols returns the number of columns.
func (p Puzzle) Cols() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// At returns the cell at (col, row) and whether it is inside the puzzle.
func (p Puzzle) At(col, row int) (Cell, bool) {
	if row < 0 || row >= len(p) || col < 0 || col >= len(p[row]) {
		return CellCleared, false
	}
	return p[row][col], true
}

// Clone returns a deep copy, so a level can be replayed after its
// cubes have been captured.
func (p Puzzle) Clone() Puzzle {
	out := make(Puzzle, len(p))
	for i, row := range p {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Count returns how many cells hold the given code.
func (p Puzzle) Count(c Cell) int {
	n := 0
	for _, row := range p {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// String renders the puzzle back into the text level format.
func (p Puzzle) String() string {
	var b strings.Builder
	for i, row := range p {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteByte(c.Digit())
		}
	}
	return b.String()
}
