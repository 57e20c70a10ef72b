package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// ansiClear moves the cursor home and clears the screen.
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer draws snapshots as a block grid on a terminal
type TerminalRenderer struct {
	Out io.Writer
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{Out: out}
}

// Display renders one generation
func (r *TerminalRenderer) Display(s Snapshot) error {
	w := bufio.NewWriter(r.Out)
	for y := range s.Height() {
		for x := range s.Width() {
			if s.IsAlive(x, y) {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "[Display] failed to write grid")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	if _, err := io.WriteString(r.Out, ansiClear); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
