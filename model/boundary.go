package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Boundary selects how neighbours outside the grid are treated.
type Boundary int

const (
	// DeadBorder treats every position outside the grid as a dead cell.
	DeadBorder Boundary = iota
	// Toroidal wraps each edge onto the opposite edge.
	Toroidal
)

// String returns the config name of the boundary.
func (b Boundary) String() string {
	switch b {
	case DeadBorder:
		return "dead"
	case Toroidal:
		return "torus"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary maps a config name to a Boundary. The empty string is DeadBorder.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dead", "dead-border", "finite":
		return DeadBorder, nil
	case "torus", "toroidal", "wrap":
		return Toroidal, nil
	}
	return DeadBorder, errors.Errorf("[ParseBoundary] unknown boundary %q", s)
}

// resolve maps a possibly out-of-range position onto the grid.
// ok is false when the position has no cell under this policy.
func (b Boundary) resolve(x, y, width, height int) (int, int, bool) {
	switch b {
	case Toroidal:
		return wrap(x, width), wrap(y, height), true
	default:
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0, 0, false
		}
		return x, y, true
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
