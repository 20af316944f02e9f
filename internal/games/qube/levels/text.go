package levels

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
)

// ErrEmptyPuzzle is the cause of the ParseError for a level with no rows.
var ErrEmptyPuzzle = errors.New("levels: puzzle has no rows")

// ParseError describes why a level file was rejected.
// Line is 1-based; 0 means the error concerns the whole file.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error // sentinel cause, if any
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<level>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("levels: %s:%d: %s", loc, e.Line, e.Msg)
	}
	return fmt.Sprintf("levels: %s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseText parses the plain-text level format: one row per line, one
// digit per cube ('0' normal, '1' forbidden, '2' advantage).
// Blank lines and surrounding whitespace are ignored.
func ParseText(data []byte) (Puzzle, error) {
	var rows []string
	var lines []int

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := string(bytes.TrimSpace(sc.Bytes()))
		if line == "" {
			continue
		}
		rows = append(rows, line)
		lines = append(lines, lineNo)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("levels: reading rows: %w", err)
	}

	return parseRows(rows, lines)
}

// ParseRows validates rows given as digit strings, as used by the YAML
// format. Row i is reported as line i+1 in errors.
func ParseRows(rows []string) (Puzzle, error) {
	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}
	return parseRows(rows, lines)
}

func parseRows(rows []string, lines []int) (Puzzle, error) {
	if len(rows) == 0 {
		return nil, &ParseError{Msg: "puzzle has no rows", Err: ErrEmptyPuzzle}
	}
	if len(rows) > GridRows {
		return nil, &ParseError{
			Line: lines[GridRows],
			Msg:  fmt.Sprintf("%d rows exceed the %d-row grid", len(rows), GridRows),
		}
	}

	puzzle := make(Puzzle, len(rows))
	for i, row := range rows {
		cells := make([]Cell, 0, len(row))
		for col, r := range []rune(row) {
			c, ok := cellFromRune(r)
			if !ok {
				return nil, &ParseError{
					Line: lines[i],
					Msg:  fmt.Sprintf("invalid cube code %q at column %d", r, col+1),
				}
			}
			cells = append(cells, c)
		}

		if len(cells) > GridCols {
			return nil, &ParseError{
				Line: lines[i],
				Msg:  fmt.Sprintf("row has %d columns, grid has %d", len(cells), GridCols),
			}
		}
		if i > 0 && len(cells) != len(puzzle[0]) {
			return nil, &ParseError{
				Line: lines[i],
				Msg:  fmt.Sprintf("row has %d columns, first row has %d", len(cells), len(puzzle[0])),
			}
		}
		puzzle[i] = cells
	}

	return puzzle, nil
}

// cellFromRune maps a level file character to a cell.
func cellFromRune(r rune) (Cell, bool) {
	if r > 0x7f {
		return 0, false
	}
	return CellFromDigit(byte(r))
}
