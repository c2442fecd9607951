/*
 * Copyright (C) 2023 by Jason Figge
 */

package tilemap

import (
	"fmt"
	"strings"
)

type Cell uint8

const (
	Empty Cell = iota
	Wall
)

// DefaultLayout is the 16x16 reference arena: solid border, open interior.
const DefaultLayout = "1111111111111111" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1000000000000001" +
	"1111111111111111"

const (
	DefaultWidth  = 16
	DefaultHeight = 16
)

// MapFormatError reports a map source that cannot be turned into a grid.
type MapFormatError struct {
	Width, Height int
	Want, Got     int
	Reason        string
}

func (e *MapFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("map %dx%d: %s", e.Width, e.Height, e.Reason)
	}
	return fmt.Sprintf("map %dx%d: source has %d cells, want %d", e.Width, e.Height, e.Got, e.Want)
}

// Map is an immutable row-major grid of cells.
type Map struct {
	width  int
	height int
	cells  []Cell
}

// Parse builds a Map from one symbol per cell, row-major.
// '1' and '#' are walls, '0' and '.' are empty.
func Parse(width, height int, source string) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, &MapFormatError{Width: width, Height: height, Reason: "dimensions must be positive"}
	}
	if len(source) != width*height {
		return nil, &MapFormatError{Width: width, Height: height, Want: width * height, Got: len(source)}
	}

	m := &Map{width: width, height: height, cells: make([]Cell, width*height)}
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '1', '#':
			m.cells[i] = Wall
		case '0', '.':
			m.cells[i] = Empty
		default:
			return nil, &MapFormatError{
				Width:  width,
				Height: height,
				Reason: fmt.Sprintf("unknown symbol %q at (%d,%d)", source[i], i%width, i/width),
			}
		}
	}
	return m, nil
}

// FromRows joins equal-width rows into a map. The width is taken from the first row.
func FromRows(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, &MapFormatError{Reason: "no rows"}
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, &MapFormatError{
				Width:  width,
				Height: len(rows),
				Reason: fmt.Sprintf("row %d has %d cells, want %d", y, len(row), width),
			}
		}
	}
	return Parse(width, len(rows), strings.Join(rows, ""))
}

// Bordered returns an open arena enclosed by a single ring of walls.
func Bordered(width, height int) *Map {
	m := &Map{width: width, height: height, cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				m.cells[y*width+x] = Wall
			}
		}
	}
	return m
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the cell at (x,y). Callers check InBounds first; out-of-range reads report Empty.
func (m *Map) At(x, y int) Cell {
	if !m.InBounds(x, y) {
		return Empty
	}
	return m.cells[y*m.width+x]
}

// IsWall is only meaningful in bounds. Leaving the grid is a separate condition, see InBounds.
func (m *Map) IsWall(x, y int) bool {
	return m.At(x, y) == Wall
}

// String renders the map back to its row-per-line source form.
func (m *Map) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.cells[y*m.width+x] == Wall {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
