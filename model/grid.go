package model

import (
	"math/rand/v2"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/conway/rules"
)

// DefaultDensity is the probability of a cell starting alive in NewRandomGrid.
const DefaultDensity = 0.5

// Cell is a grid position.
type Cell struct {
	X, Y int
}

// Grid holds one generation of a Game of Life board and advances it.
// A Grid is owned by a single caller and is not safe for concurrent use.
type Grid struct {
	width      int
	height     int
	boundary   Boundary
	workers    int
	pool       *GridPool
	rng        *rand.Rand
	cells      [][]bool
	spare      [][]bool
	generation int
	history    []string // hashes of recent generations for cycle detection

	// bounding box of live cells, used by AdvanceBounded
	activeBounds struct {
		minX, maxX, minY, maxY int
		valid                  bool
	}
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithBoundary sets the boundary policy. The default is DeadBorder.
func WithBoundary(b Boundary) Option {
	return func(g *Grid) { g.boundary = b }
}

// WithWorkers sets how many goroutines Advance spreads rows across. n <= 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(g *Grid) { g.workers = n }
}

// WithPool makes the grid draw next-generation buffers from pool.
func WithPool(pool *GridPool) Option {
	return func(g *Grid) { g.pool = pool }
}

// WithSeed seeds the generator used by Randomize and InjectRandomLife.
func WithSeed(seed int64) Option {
	return func(g *Grid) { g.rng = newRNG(seed) }
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(width, height int, opts ...Option) (*Grid, error) {
	if err := checkDimensions("NewGrid", width, height); err != nil {
		return nil, err
	}
	g := &Grid{
		width:   width,
		height:  height,
		workers: runtime.NumCPU(),
		cells:   newCells(width, height),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = newRNG(0)
	}
	return g, nil
}

// NewGridFromCells creates a grid from explicit per-cell states, indexed rows[y][x].
// All rows must have the same non-zero length. The input is copied.
func NewGridFromCells(rows [][]bool, opts ...Option) (*Grid, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidDimension, "[NewGridFromCells] row %d has %d cells, want %d", y, len(row), width)
		}
	}
	g, err := NewGrid(width, len(rows), opts...)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		copy(g.cells[y], row)
	}
	return g, nil
}

// NewGridFromAlive creates a grid in which exactly the listed cells are alive.
func NewGridFromAlive(width, height int, alive []Cell, opts ...Option) (*Grid, error) {
	g, err := NewGrid(width, height, opts...)
	if err != nil {
		return nil, err
	}
	for _, c := range alive {
		if err := g.Set(c.X, c.Y, true); err != nil {
			return nil, errors.WithMessage(err, "[NewGridFromAlive]")
		}
	}
	return g, nil
}

// NewRandomGrid creates a grid where each cell is alive with probability density.
// The same seed always produces the same grid.
func NewRandomGrid(width, height int, seed int64, density float64, opts ...Option) (*Grid, error) {
	g, err := NewGrid(width, height, append(opts[:len(opts):len(opts)], WithSeed(seed))...)
	if err != nil {
		return nil, err
	}
	if err := g.Randomize(density); err != nil {
		return nil, err
	}
	return g, nil
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// Boundary returns the grid's boundary policy.
func (g *Grid) Boundary() Boundary {
	return g.boundary
}

// Generation returns how many times the grid has been advanced.
func (g *Grid) Generation() int {
	return g.generation
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) outOfBounds(fn string, x, y int) error {
	return errors.Wrapf(ErrOutOfBounds, "[%s] (%d,%d) outside %dx%d", fn, x, y, g.width, g.height)
}

// IsAlive reports the state of the cell at (x, y).
func (g *Grid) IsAlive(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, g.outOfBounds("IsAlive", x, y)
	}
	return g.cells[y][x], nil
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.inBounds(x, y) {
		return g.outOfBounds("Set", x, y)
	}
	g.cells[y][x] = alive
	g.activeBounds.valid = false
	return nil
}

// Clear kills every cell and forgets the history
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
	}
	g.history = nil
	g.activeBounds.valid = false
}

// NeighborCount returns the number of live cells among the 8 neighbours of (x, y)
// under the grid's boundary policy.
func (g *Grid) NeighborCount(x, y int) (int, error) {
	if !g.inBounds(x, y) {
		return 0, g.outOfBounds("NeighborCount", x, y)
	}
	return g.countNeighbors(x, y), nil
}

func (g *Grid) countNeighbors(x, y int) int {
	if g.boundary == DeadBorder {
		return g.countNeighborsBounded(x, y)
	}
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny, ok := g.boundary.resolve(x+dx, y+dy, g.width, g.height)
			if ok && g.cells[ny][nx] {
				count++
			}
		}
	}
	return count
}

// countNeighborsBounded clamps the 3x3 window to the grid, so outside cells count as dead.
func (g *Grid) countNeighborsBounded(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// evaluate writes the next state of (x, y) into next. It only reads g.cells.
func (g *Grid) evaluate(next [][]bool, x, y int) {
	next[y][x] = rules.ApplyConwayRules(g.countNeighbors(x, y), g.cells[y][x])
}

func (g *Grid) evaluateRows(next [][]bool, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := 0; x < g.width; x++ {
			g.evaluate(next, x, y)
		}
	}
}

// Advance replaces the grid with its next generation.
// Every cell is computed from the current generation before any cell changes.
func (g *Grid) Advance() {
	next := g.nextBuffer()

	numWorkers := min(g.workers, g.height)
	if numWorkers <= 1 {
		g.evaluateRows(next, 0, g.height)
		g.commit(next)
		return
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			g.evaluateRows(next, startRow, endRow)
			return nil
		})
	}

	// row workers never fail; Wait is the barrier before the swap
	_ = eg.Wait()

	g.commit(next)
}

// AdvanceBounded produces the same generation as Advance but only evaluates the
// bounding box of live cells plus a one-cell margin. Toroidal grids use Advance.
func (g *Grid) AdvanceBounded() {
	if g.boundary != DeadBorder {
		g.Advance()
		return
	}
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}

	next := g.nextBuffer()
	for y := range next {
		clear(next[y])
	}

	if g.activeBounds.valid {
		minX := max(0, g.activeBounds.minX-1)
		maxX := min(g.width-1, g.activeBounds.maxX+1)
		minY := max(0, g.activeBounds.minY-1)
		maxY := min(g.height-1, g.activeBounds.maxY+1)

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				g.evaluate(next, x, y)
			}
		}
	}

	g.commit(next)
	g.calculateActiveBounds()
}

func (g *Grid) nextBuffer() [][]bool {
	if g.pool != nil {
		return g.pool.Get(g.width, g.height)
	}
	if g.spare != nil {
		next := g.spare
		g.spare = nil
		return next
	}
	return newCells(g.width, g.height)
}

// commit swaps next in as the current generation and recycles the old buffer.
func (g *Grid) commit(next [][]bool) {
	old := g.cells
	g.cells = next
	if g.pool != nil {
		g.pool.Put(old)
	} else {
		g.spare = old
	}
	g.generation++
	g.activeBounds.valid = false
}

// calculateActiveBounds calculates the bounding box of living cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false

	for y := range g.height {
		for x := range g.width {
			if !g.cells[y][x] {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minX, g.activeBounds.maxX = x, x
				g.activeBounds.minY, g.activeBounds.maxY = y, y
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minX = min(g.activeBounds.minX, x)
			g.activeBounds.maxX = max(g.activeBounds.maxX, x)
			g.activeBounds.minY = min(g.activeBounds.minY, y)
			g.activeBounds.maxY = max(g.activeBounds.maxY, y)
		}
	}
}

// BoundingBoxSize returns the area of the smallest box holding every live cell
func (g *Grid) BoundingBoxSize() int {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}
	if !g.activeBounds.valid {
		return 0
	}
	return (g.activeBounds.maxX - g.activeBounds.minX + 1) *
		(g.activeBounds.maxY - g.activeBounds.minY + 1)
}

// Population returns the total number of living cells
func (g *Grid) Population() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Snapshot returns an immutable copy of the current generation.
func (g *Grid) Snapshot() Snapshot {
	cells := newCells(g.width, g.height)
	for y := range g.height {
		copy(cells[y], g.cells[y])
	}
	return Snapshot{width: g.width, height: g.height, generation: g.generation, cells: cells}
}

// Randomize sets every cell alive with probability density
func (g *Grid) Randomize(density float64) error {
	if density < 0 || density > 1 {
		return errors.Wrapf(ErrInvalidDensity, "[Randomize] density %v", density)
	}
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = g.rng.Float64() < density
		}
	}
	g.activeBounds.valid = false
	return nil
}

// InjectRandomLife brings count random cells to life to break stagnation
func (g *Grid) InjectRandomLife(count int) {
	for range count {
		g.cells[g.rng.IntN(g.height)][g.rng.IntN(g.width)] = true
	}
	g.activeBounds.valid = false
}
