package model

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, width, height int, alive []Cell, opts ...Option) *Grid {
	t.Helper()
	g, err := NewGridFromAlive(width, height, alive, opts...)
	require.NoError(t, err)
	return g
}

func clone(t *testing.T, g *Grid, opts ...Option) *Grid {
	t.Helper()
	c, err := NewGridFromCells(g.Snapshot().Rows(), append([]Option{WithBoundary(g.Boundary())}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewGrid(t *testing.T) {
	t.Run("starts all dead", func(t *testing.T) {
		g, err := NewGrid(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Width())
		assert.Equal(t, 3, g.Height())
		assert.Equal(t, DeadBorder, g.Boundary())
		assert.Zero(t, g.Population())
		assert.Zero(t, g.Generation())
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {0, 0}, {-1, 3}, {3, -5}} {
			_, err := NewGrid(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimension, "dims %v", dims)
		}
	})
}

func TestNewGridFromCells(t *testing.T) {
	rows := [][]bool{
		{true, false, false},
		{false, true, true},
	}
	g, err := NewGridFromCells(rows)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())

	rows[0][0] = false
	alive, err := g.IsAlive(0, 0)
	require.NoError(t, err)
	assert.True(t, alive, "grid must copy its input")

	_, err = NewGridFromCells([][]bool{{true, false}, {true}})
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewGridFromCells(nil)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewGridFromCells([][]bool{{}})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestNewGridFromAlive(t *testing.T) {
	g := mustGrid(t, 5, 5, []Cell{{1, 1}, {2, 2}})
	assert.Equal(t, []Cell{{1, 1}, {2, 2}}, g.Snapshot().Alive())

	_, err := NewGridFromAlive(5, 5, []Cell{{5, 0}})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewGridFromAlive(0, 5, nil)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestNewRandomGrid(t *testing.T) {
	a, err := NewRandomGrid(20, 10, 42, DefaultDensity)
	require.NoError(t, err)
	b, err := NewRandomGrid(20, 10, 42, DefaultDensity)
	require.NoError(t, err)
	assert.True(t, a.Snapshot().Equal(b.Snapshot()), "same seed must give the same grid")

	pop := a.Population()
	assert.Greater(t, pop, 0)
	assert.Less(t, pop, 200)

	empty, err := NewRandomGrid(6, 6, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, empty.Population())

	full, err := NewRandomGrid(6, 6, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 36, full.Population())

	_, err = NewRandomGrid(6, 6, 1, 1.5)
	assert.ErrorIs(t, err, ErrInvalidDensity)
	_, err = NewRandomGrid(0, 6, 1, 0.5)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestIsAliveOutOfBounds(t *testing.T) {
	g := mustGrid(t, 4, 3, nil)
	for _, c := range []Cell{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		_, err := g.IsAlive(c.X, c.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "cell %v", c)

		_, err = g.NeighborCount(c.X, c.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "cell %v", c)

		assert.ErrorIs(t, g.Set(c.X, c.Y, true), ErrOutOfBounds, "cell %v", c)
	}
	assert.Zero(t, g.Population())
}

func TestNeighborCount(t *testing.T) {
	t.Run("dead border corners", func(t *testing.T) {
		g := mustGrid(t, 4, 4, []Cell{{3, 3}, {3, 0}, {0, 3}})
		n, err := g.NeighborCount(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("toroidal corners wrap", func(t *testing.T) {
		g := mustGrid(t, 4, 4, []Cell{{3, 3}, {3, 0}, {0, 3}}, WithBoundary(Toroidal))
		n, err := g.NeighborCount(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("full neighbourhood", func(t *testing.T) {
		g, err := NewRandomGrid(3, 3, 7, 1)
		require.NoError(t, err)
		n, err := g.NeighborCount(1, 1)
		require.NoError(t, err)
		assert.Equal(t, 8, n)
	})

	t.Run("single cell torus counts every offset", func(t *testing.T) {
		g := mustGrid(t, 1, 1, []Cell{{0, 0}}, WithBoundary(Toroidal))
		n, err := g.NeighborCount(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 8, n)
	})

	t.Run("interior cells ignore the boundary policy", func(t *testing.T) {
		dead, err := NewRandomGrid(9, 7, 3, DefaultDensity)
		require.NoError(t, err)
		torus := clone(t, dead)
		torus.boundary = Toroidal

		snap := dead.Snapshot()
		for y := 1; y < dead.Height()-1; y++ {
			for x := 1; x < dead.Width()-1; x++ {
				literal := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if (dx != 0 || dy != 0) && snap.IsAlive(x+dx, y+dy) {
							literal++
						}
					}
				}
				a, err := dead.NeighborCount(x, y)
				require.NoError(t, err)
				b, err := torus.NeighborCount(x, y)
				require.NoError(t, err)
				assert.Equal(t, literal, a, "dead border (%d,%d)", x, y)
				assert.Equal(t, literal, b, "torus (%d,%d)", x, y)
			}
		}
	})
}

func TestAdvanceAllDeadStaysDead(t *testing.T) {
	for _, b := range []Boundary{DeadBorder, Toroidal} {
		for _, dims := range [][2]int{{1, 1}, {3, 3}, {7, 2}, {16, 16}} {
			g, err := NewGrid(dims[0], dims[1], WithBoundary(b))
			require.NoError(t, err)
			g.Advance()
			assert.Zero(t, g.Population(), "%v %v", b, dims)
		}
	}
}

func TestAdvanceLonelyCenterDies(t *testing.T) {
	g := mustGrid(t, 3, 3, []Cell{{1, 1}})
	n, err := g.NeighborCount(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	g.Advance()
	assert.Zero(t, g.Population())
	assert.Equal(t, 1, g.Generation())
}

func TestAdvanceBlinker(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		g := mustGrid(t, 3, 3, []Cell{{1, 0}, {1, 1}, {1, 2}}, WithWorkers(workers))
		start := g.Snapshot()

		g.Advance()
		assert.Equal(t, []Cell{{0, 1}, {1, 1}, {2, 1}}, g.Snapshot().Alive(), "workers=%d", workers)

		g.Advance()
		assert.True(t, start.Equal(g.Snapshot()), "workers=%d: blinker must return after 2 generations", workers)
	}
}

func TestAdvanceGliderOnTorus(t *testing.T) {
	g, err := NewGrid(8, 8, WithBoundary(Toroidal))
	require.NoError(t, err)
	require.NoError(t, g.Stamp(Glider, 6, 6))

	want, err := NewGrid(8, 8, WithBoundary(Toroidal))
	require.NoError(t, err)
	require.NoError(t, want.Stamp(Glider, 7, 7))

	for range 4 {
		g.Advance()
	}
	if diff := cmp.Diff(want.Snapshot().String(), g.Snapshot().String()); diff != "" {
		t.Errorf("glider after 4 generations (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, g.Population())
}

func TestAdvanceIsOrderIndependent(t *testing.T) {
	for _, b := range []Boundary{DeadBorder, Toroidal} {
		g, err := NewRandomGrid(13, 9, 11, 0.4, WithBoundary(b))
		require.NoError(t, err)

		expected := clone(t, g)
		expected.Advance()

		cells := make([]Cell, 0, g.Width()*g.Height())
		for y := range g.Height() {
			for x := range g.Width() {
				cells = append(cells, Cell{x, y})
			}
		}
		rng := rand.New(rand.NewPCG(5, 0))
		for trial := range 5 {
			rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

			next := newCells(g.Width(), g.Height())
			for _, c := range cells {
				g.evaluate(next, c.X, c.Y)
			}
			got, err := NewGridFromCells(next)
			require.NoError(t, err)
			assert.True(t, expected.Snapshot().Equal(got.Snapshot()), "%v trial %d", b, trial)
		}
	}
}

func TestAdvanceStrategiesAgree(t *testing.T) {
	for _, b := range []Boundary{DeadBorder, Toroidal} {
		seq, err := NewRandomGrid(31, 17, 99, 0.35, WithBoundary(b), WithWorkers(1))
		require.NoError(t, err)
		par := clone(t, seq, WithWorkers(4))
		pooled := clone(t, seq, WithWorkers(3), WithPool(NewGridPool()))
		bounded := clone(t, seq, WithWorkers(1))

		for gen := range 25 {
			seq.Advance()
			par.Advance()
			pooled.Advance()
			bounded.AdvanceBounded()

			want := seq.Snapshot()
			assert.True(t, want.Equal(par.Snapshot()), "%v parallel gen %d", b, gen)
			assert.True(t, want.Equal(pooled.Snapshot()), "%v pooled gen %d", b, gen)
			assert.True(t, want.Equal(bounded.Snapshot()), "%v bounded gen %d", b, gen)
		}
		assert.Equal(t, 25, bounded.Generation())
	}
}

func TestAdvanceBoundedTracksBox(t *testing.T) {
	g := mustGrid(t, 10, 10, []Cell{{4, 3}, {4, 4}, {4, 5}})
	assert.Equal(t, 3, g.BoundingBoxSize())

	g.AdvanceBounded()
	assert.Equal(t, 3, g.BoundingBoxSize())
	assert.Equal(t, []Cell{{3, 4}, {4, 4}, {5, 4}}, g.Snapshot().Alive())

	g.Clear()
	assert.Zero(t, g.BoundingBoxSize())
	g.AdvanceBounded()
	assert.Zero(t, g.Population())
}

func TestInjectRandomLife(t *testing.T) {
	g, err := NewGrid(10, 10, WithSeed(3))
	require.NoError(t, err)
	g.InjectRandomLife(5)
	pop := g.Population()
	assert.Greater(t, pop, 0)
	assert.LessOrEqual(t, pop, 5)
}
