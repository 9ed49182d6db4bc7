package model

import (
	"crypto/md5"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol3d/rules"
)

// Cell is the binary state of a lattice position
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

var (
	// ErrInvalidDimension is returned when an axis length is not positive or
	// the cell count overflows an int.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrOutOfBounds is returned by accessors given a coordinate outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// box is an inclusive coordinate range on all three axes
type box struct {
	minX, maxX, minY, maxY, minZ, maxZ int
}

func (b box) volume() int {
	return (b.maxX - b.minX + 1) * (b.maxY - b.minY + 1) * (b.maxZ - b.minZ + 1)
}

// Grid is a dense 3D lattice of cells.
//
// A Grid is never modified once it has been returned to a caller: successors
// are written into a freshly allocated Grid, so a Grid may be read from any
// number of goroutines while the next generation is being built.
type Grid struct {
	width  int
	height int
	depth  int
	cells  []Cell // x varies fastest, then y, then z

	// Bounding box of Alive cells, fixed at construction
	activeBounds struct {
		box
		valid bool
	}
	living int
}

// ValidateDimensions rejects non-positive axes and grids whose cell count
// does not fit in an int
func ValidateDimensions(width, height, depth int) error {
	if width <= 0 || height <= 0 || depth <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "[ValidateDimensions] %dx%dx%d", width, height, depth)
	}
	if width > math.MaxInt/height/depth {
		return errors.Wrapf(ErrInvalidDimension, "[ValidateDimensions] %dx%dx%d overflows cell count",
			width, height, depth)
	}
	return nil
}

// newGrid allocates an all-Dead grid without validating its dimensions
func newGrid(width, height, depth int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]Cell, width*height*depth),
	}
}

// NewGrid creates an all-Dead grid with the specified dimensions
func NewGrid(width, height, depth int) (*Grid, error) {
	if err := ValidateDimensions(width, height, depth); err != nil {
		return nil, errors.Wrap(err, "[NewGrid]")
	}
	g := newGrid(width, height, depth)
	g.seal()
	return g, nil
}

// NewGridFromFunc creates a grid whose cell (x, y, z) is fn(x, y, z)
func NewGridFromFunc(width, height, depth int, fn func(x, y, z int) Cell) (*Grid, error) {
	if err := ValidateDimensions(width, height, depth); err != nil {
		return nil, errors.Wrap(err, "[NewGridFromFunc]")
	}
	g := newGrid(width, height, depth)
	for z := range depth {
		for y := range height {
			for x := range width {
				if fn(x, y, z) == Alive {
					g.cells[g.index(x, y, z)] = Alive
				}
			}
		}
	}
	g.seal()
	return g, nil
}

// seal records the population and active bounds. It runs once, before the
// grid is handed out.
func (g *Grid) seal() {
	g.living = 0
	g.activeBounds.valid = false

	for z := range g.depth {
		for y := range g.height {
			for x := range g.width {
				if g.cells[g.index(x, y, z)] != Alive {
					continue
				}
				g.living++
				b := &g.activeBounds
				if !b.valid {
					b.box = box{minX: x, maxX: x, minY: y, maxY: y, minZ: z, maxZ: z}
					b.valid = true
					continue
				}
				b.minX = min(b.minX, x)
				b.maxX = max(b.maxX, x)
				b.minY = min(b.minY, y)
				b.maxY = max(b.maxY, y)
				b.minZ = min(b.minZ, z)
				b.maxZ = max(b.maxZ, z)
			}
		}
	}
}

func (g *Grid) index(x, y, z int) int {
	return (z*g.height+y)*g.width + x
}

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && z >= 0 && z < g.depth
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// GetDepth returns the depth of the grid
func (g *Grid) GetDepth() int {
	return g.depth
}

// Size returns the number of cells in the grid
func (g *Grid) Size() int {
	return len(g.cells)
}

// Get returns the state of a cell, failing for coordinates outside the grid
func (g *Grid) Get(x, y, z int) (Cell, error) {
	if !g.inBounds(x, y, z) {
		return Dead, errors.Wrapf(ErrOutOfBounds, "[Get] (%d,%d,%d) in %dx%dx%d grid",
			x, y, z, g.width, g.height, g.depth)
	}
	return g.cells[g.index(x, y, z)], nil
}

// ForEach calls fn for every cell, x varying fastest
func (g *Grid) ForEach(fn func(x, y, z int, c Cell)) {
	for z := range g.depth {
		for y := range g.height {
			for x := range g.width {
				fn(x, y, z, g.cells[g.index(x, y, z)])
			}
		}
	}
}

// CountAliveNeighbors counts the Alive cells in the 3x3x3 cube around
// (x, y, z), excluding the cell itself. Positions outside the grid are absent,
// not wrapped, so faces, edges and corners have fewer candidates.
func (g *Grid) CountAliveNeighbors(x, y, z int) (int, error) {
	if !g.inBounds(x, y, z) {
		return 0, errors.Wrapf(ErrOutOfBounds, "[CountAliveNeighbors] (%d,%d,%d) in %dx%dx%d grid",
			x, y, z, g.width, g.height, g.depth)
	}
	return g.countNeighborsUpTo(x, y, z, rules.MaxNeighbors), nil
}

// countNeighborsUpTo stops scanning once the count exceeds limit and returns
// that partial count. Any result above limit means "more than limit".
func (g *Grid) countNeighborsUpTo(x, y, z, limit int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)
	minZ := max(0, z-1)
	maxZ := min(g.depth-1, z+1)

	for nz := minZ; nz <= maxZ; nz++ {
		for ny := minY; ny <= maxY; ny++ {
			for nx := minX; nx <= maxX; nx++ {
				if nx == x && ny == y && nz == z {
					continue
				}
				if g.cells[g.index(nx, ny, nz)] != Alive {
					continue
				}
				count++
				if count > limit {
					return count
				}
			}
		}
	}

	return count
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() int {
	return g.living
}

// BoundingBoxVolume returns the volume of the box enclosing all living cells
func (g *Grid) BoundingBoxVolume() int {
	if !g.activeBounds.valid {
		return 0
	}
	return g.activeBounds.volume()
}

// GetGridHash returns an MD5 hash of the dimensions and cell states
func (g *Grid) GetGridHash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%dx%d:", g.width, g.height, g.depth)
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height || g.depth != other.depth {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
