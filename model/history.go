package model

import (
	"crypto/md5"
	"fmt"
)

// historySize bounds how many generation hashes are kept; enough to spot periods up to 3.
const historySize = 5

// Hash returns an MD5 digest of the current cell states
func (g *Grid) Hash() string {
	h := md5.New()
	row := make([]byte, g.width)
	for y := range g.height {
		for x := range g.width {
			row[x] = 0
			if g.cells[y][x] {
				row[x] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory records the current generation's hash
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.Hash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the most recently recorded generation repeats one of
// the three before it: a still life, or an oscillator of period 2 or 3.
func (g *Grid) IsStagnant() bool {
	n := len(g.history)
	if n < 2 {
		return false
	}
	latest := g.history[n-1]
	for period := 1; period <= 3 && n-1-period >= 0; period++ {
		if g.history[n-1-period] == latest {
			return true
		}
	}
	return false
}
