package model

import "sync"

// GridPool recycles cell buffers between generations.
// A pool may be shared by several grids; buffers of a different size are resized on Get.
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &cellBuffer{}
			},
		},
	}
}

type cellBuffer struct {
	rows [][]bool
}

// Get retrieves an all-dead buffer of the given dimensions
func (p *GridPool) Get(width, height int) [][]bool {
	b := p.pool.Get().(*cellBuffer)
	rows := b.rows

	if len(rows) != height {
		rows = make([][]bool, height)
	}
	for y := range rows {
		if len(rows[y]) != width {
			rows[y] = make([]bool, width)
		} else {
			clear(rows[y])
		}
	}
	return rows
}

// Put returns a buffer to the pool. The caller must not use rows afterwards.
func (p *GridPool) Put(rows [][]bool) {
	if p == nil || rows == nil {
		return
	}
	p.pool.Put(&cellBuffer{rows: rows})
}

func newCells(width, height int) [][]bool {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return cells
}
