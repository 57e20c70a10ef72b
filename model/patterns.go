package model

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Pattern is a rectangular block of cell states, indexed Rows[y][x].
type Pattern struct {
	Name string
	Rows [][]bool
}

func (p Pattern) Width() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return len(p.Rows[0])
}

func (p Pattern) Height() int {
	return len(p.Rows)
}

// MustParsePattern parses a plaintext pattern literal and panics on error.
func MustParsePattern(name, text string) Pattern {
	p, err := ParsePattern(strings.NewReader(text))
	if err != nil {
		panic(err)
	}
	p.Name = name
	return p
}

var (
	// Glider travels one cell down and right every 4 generations.
	Glider = MustParsePattern("glider", ".O.\n..O\nOOO\n")
	// Blinker is the horizontal phase of the period-2 oscillator.
	Blinker = MustParsePattern("blinker", "OOO\n")
	// Block is the smallest still life.
	Block = MustParsePattern("block", "OO\nOO\n")
)

// ParsePattern reads the plaintext format: one row per line, 'O' or '*' for a live
// cell, '.' for a dead one. Lines starting with '!' are comments; "!Name: x" names
// the pattern. Short rows are padded with dead cells.
func ParsePattern(r io.Reader) (Pattern, error) {
	var (
		p       Pattern
		scanner = bufio.NewScanner(r)
		lineNo  = 0
		width   = 0
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.HasPrefix(line, "!") {
			if name, ok := strings.CutPrefix(line, "!Name:"); ok {
				p.Name = strings.TrimSpace(name)
			}
			continue
		}
		row := make([]bool, len(line))
		for x, c := range []byte(line) {
			switch c {
			case 'O', 'o', '*':
				row[x] = true
			case '.':
			default:
				return Pattern{}, errors.Wrapf(ErrInvalidPattern, "[ParsePattern] line %d: unexpected %q", lineNo, c)
			}
		}
		width = max(width, len(row))
		p.Rows = append(p.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return Pattern{}, errors.Wrap(err, "[ParsePattern] failed to read pattern")
	}

	// trailing blank lines carry no cells
	for len(p.Rows) > 0 && len(p.Rows[len(p.Rows)-1]) == 0 {
		p.Rows = p.Rows[:len(p.Rows)-1]
	}
	if len(p.Rows) == 0 || width == 0 {
		return Pattern{}, errors.Wrap(ErrInvalidPattern, "[ParsePattern] pattern has no cells")
	}
	for y, row := range p.Rows {
		if len(row) < width {
			p.Rows[y] = append(row, make([]bool, width-len(row))...)
		}
	}
	return p, nil
}

// Stamp copies p onto the grid with its top-left corner at (x, y), overwriting
// both live and dead cells. On a dead-border grid the whole pattern must fit; on
// a toroidal grid it wraps. Nothing is written when the pattern does not fit.
func (g *Grid) Stamp(p Pattern, x, y int) error {
	if g.boundary == DeadBorder {
		if !g.inBounds(x, y) || !g.inBounds(x+p.Width()-1, y+p.Height()-1) {
			return errors.Wrapf(ErrOutOfBounds, "[Stamp] %s (%dx%d) at (%d,%d) does not fit %dx%d",
				p.Name, p.Width(), p.Height(), x, y, g.width, g.height)
		}
	}
	for py, row := range p.Rows {
		for px, alive := range row {
			cx, cy, _ := g.boundary.resolve(x+px, y+py, g.width, g.height)
			g.cells[cy][cx] = alive
		}
	}
	g.activeBounds.valid = false
	return nil
}

// NewGridFromPattern creates a width x height grid with p stamped in the centre.
func NewGridFromPattern(p Pattern, width, height int, opts ...Option) (*Grid, error) {
	g, err := NewGrid(width, height, opts...)
	if err != nil {
		return nil, err
	}
	if p.Width() > width || p.Height() > height {
		return nil, errors.Wrapf(ErrOutOfBounds, "[NewGridFromPattern] %s (%dx%d) larger than %dx%d",
			p.Name, p.Width(), p.Height(), width, height)
	}
	if err := g.Stamp(p, (width-p.Width())/2, (height-p.Height())/2); err != nil {
		return nil, err
	}
	return g, nil
}

// ResetWithInterestingPatterns clears the grid, places gliders and blinkers where
// they fit, then sprinkles random live cells with the given density.
func (g *Grid) ResetWithInterestingPatterns(density float64) error {
	if density < 0 || density > 1 {
		return errors.Wrapf(ErrInvalidDensity, "[ResetWithInterestingPatterns] density %v", density)
	}
	g.Clear()

	if g.width >= 10 && g.height >= 10 {
		_ = g.Stamp(Glider, 5, 5)
		if g.width >= 20 && g.height >= 15 {
			_ = g.Stamp(Glider, g.width-8, 5)
		}

		_ = g.Stamp(Blinker, g.width/4, g.height/4)
		if g.width >= 30 {
			_ = g.Stamp(Blinker, 3*g.width/4, 3*g.height/4)
		}
	}

	for y := range g.height {
		for x := range g.width {
			if g.rng.Float64() < density {
				g.cells[y][x] = true
			}
		}
	}
	return nil
}
