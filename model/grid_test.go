package model

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAlive(x, y, z int) Cell { return Alive }

// aliveAt builds a predicate that is Alive only at the listed coordinates
func aliveAt(coords ...[3]int) func(x, y, z int) Cell {
	set := make(map[[3]int]bool, len(coords))
	for _, c := range coords {
		set[c] = true
	}
	return func(x, y, z int) Cell {
		if set[[3]int{x, y, z}] {
			return Alive
		}
		return Dead
	}
}

func cellsOf(g *Grid) []Cell {
	out := make([]Cell, 0, g.Size())
	g.ForEach(func(_, _, _ int, c Cell) { out = append(out, c) })
	return out
}

func TestNewGrid_InvalidDimensions(t *testing.T) {
	for _, dims := range [][3]int{
		{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-3, 4, 4}, {4, 4, -1},
		{1 << 22, 1 << 21, 1 << 21}, // product wraps to zero
		{math.MaxInt, 2, 1},
		{3, math.MaxInt / 2, 2},
	} {
		g, err := NewGrid(dims[0], dims[1], dims[2])
		require.Error(t, err, "%v", dims)
		assert.Nil(t, g)
		assert.True(t, errors.Is(err, ErrInvalidDimension))

		_, err = NewGridFromFunc(dims[0], dims[1], dims[2], allAlive)
		assert.True(t, errors.Is(err, ErrInvalidDimension))

		_, err = NewRandomGrid(dims[0], dims[1], dims[2], 1, rand.New(rand.NewSource(1)))
		assert.True(t, errors.Is(err, ErrInvalidDimension))
	}
}

func TestNewGrid_AllDead(t *testing.T) {
	g, err := NewGrid(4, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, g.GetWidth())
	assert.Equal(t, 3, g.GetHeight())
	assert.Equal(t, 2, g.GetDepth())
	assert.Equal(t, 24, g.Size())
	assert.Equal(t, 0, g.CountLivingCells())
	assert.Equal(t, 0, g.BoundingBoxVolume())
	for _, c := range cellsOf(g) {
		assert.Equal(t, Dead, c)
	}
}

func TestGet(t *testing.T) {
	g, err := NewGridFromFunc(3, 4, 5, aliveAt([3]int{2, 3, 4}, [3]int{0, 1, 2}))
	require.NoError(t, err)

	c, err := g.Get(2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, Alive, c)

	c, err = g.Get(0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, Alive, c)

	c, err = g.Get(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Dead, c)

	assert.Equal(t, 2, g.CountLivingCells())
	assert.Equal(t, 3*3*3, g.BoundingBoxVolume())
}

func TestGet_OutOfBounds(t *testing.T) {
	g, err := NewGrid(3, 3, 3)
	require.NoError(t, err)

	for _, p := range [][3]int{{-1, 0, 0}, {3, 0, 0}, {0, -1, 0}, {0, 3, 0}, {0, 0, -1}, {0, 0, 3}} {
		_, err := g.Get(p[0], p[1], p[2])
		require.Error(t, err, "%v", p)
		assert.True(t, errors.Is(err, ErrOutOfBounds))

		_, err = g.CountAliveNeighbors(p[0], p[1], p[2])
		assert.True(t, errors.Is(err, ErrOutOfBounds))
	}
}

func TestCountAliveNeighbors_SingleCellGrid(t *testing.T) {
	g, err := NewGridFromFunc(1, 1, 1, allAlive)
	require.NoError(t, err)

	n, err := g.CountAliveNeighbors(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCountAliveNeighbors_FullCube(t *testing.T) {
	g, err := NewGridFromFunc(3, 3, 3, allAlive)
	require.NoError(t, err)

	tests := []struct {
		name    string
		x, y, z int
		want    int
	}{
		{"center", 1, 1, 1, 26},
		{"corner", 0, 0, 0, 7},
		{"opposite corner", 2, 2, 2, 7},
		{"edge", 1, 0, 0, 11},
		{"face", 1, 1, 0, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := g.CountAliveNeighbors(tt.x, tt.y, tt.z)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestCountAliveNeighbors_NoWraparound(t *testing.T) {
	// Every cell on the far faces is Alive; a toroidal count at the origin
	// would see them.
	g, err := NewGridFromFunc(4, 4, 4, func(x, y, z int) Cell {
		if x == 3 || y == 3 || z == 3 {
			return Alive
		}
		return Dead
	})
	require.NoError(t, err)

	n, err := g.CountAliveNeighbors(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// (2,2,2) touches the far faces: 27 - 8 (the 2x2x2 block at 1..2) = 19
	n, err = g.CountAliveNeighbors(2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 19, n)
}

func TestCountAliveNeighbors_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g, err := NewRandomGrid(6, 5, 4, 0.6, rng)
	require.NoError(t, err)

	g.ForEach(func(x, y, z int, _ Cell) {
		n, err := g.CountAliveNeighbors(x, y, z)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 26)
	})
}

func TestCountNeighborsUpTo_StopsAfterLimit(t *testing.T) {
	g, err := NewGridFromFunc(3, 3, 3, allAlive)
	require.NoError(t, err)

	assert.Equal(t, 6, g.countNeighborsUpTo(1, 1, 1, 5))
	assert.Equal(t, 1, g.countNeighborsUpTo(1, 1, 1, 0))
	assert.Equal(t, 26, g.countNeighborsUpTo(1, 1, 1, 26))
}

func TestGetGridHash(t *testing.T) {
	a, err := NewGrid(1, 2, 1)
	require.NoError(t, err)
	b, err := NewGrid(2, 1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.GetGridHash(), b.GetGridHash(), "dimensions are part of the hash")

	c, err := NewGridFromFunc(2, 1, 1, aliveAt([3]int{1, 0, 0}))
	require.NoError(t, err)
	d, err := NewGridFromFunc(2, 1, 1, aliveAt([3]int{1, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, c.GetGridHash(), d.GetGridHash())
	assert.NotEqual(t, b.GetGridHash(), c.GetGridHash())
	assert.True(t, c.Equal(d))
	assert.False(t, b.Equal(c))
	assert.False(t, a.Equal(b))
}
