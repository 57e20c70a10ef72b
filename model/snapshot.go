package model

import "strings"

const (
	snapshotAlive = 'O'
	snapshotDead  = '.'
)

// Snapshot is a read-only copy of one generation, handed to display code.
type Snapshot struct {
	width      int
	height     int
	generation int
	cells      [][]bool
}

func (s Snapshot) Width() int { return s.width }
func (s Snapshot) Height() int { return s.height }
func (s Snapshot) Generation() int { return s.generation }

// IsAlive reports the state of (x, y); positions outside the snapshot are dead.
func (s Snapshot) IsAlive(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	return s.cells[y][x]
}

// Rows returns a copy of the cell states indexed [y][x].
func (s Snapshot) Rows() [][]bool {
	rows := newCells(s.width, s.height)
	for y := range s.height {
		copy(rows[y], s.cells[y])
	}
	return rows
}

// Alive lists the live cells in row-major order.
func (s Snapshot) Alive() []Cell {
	var alive []Cell
	for y := range s.height {
		for x := range s.width {
			if s.cells[y][x] {
				alive = append(alive, Cell{X: x, Y: y})
			}
		}
	}
	return alive
}

func (s Snapshot) Population() int {
	return len(s.Alive())
}

// Equal reports whether both snapshots hold the same dimensions and cell states.
// The generation number is ignored.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.width != o.width || s.height != o.height {
		return false
	}
	for y := range s.height {
		for x := range s.width {
			if s.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the snapshot in plaintext pattern form, one row per line.
func (s Snapshot) String() string {
	var b strings.Builder
	b.Grow((s.width + 1) * s.height)
	for y := range s.height {
		for x := range s.width {
			if s.cells[y][x] {
				b.WriteByte(snapshotAlive)
			} else {
				b.WriteByte(snapshotDead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
