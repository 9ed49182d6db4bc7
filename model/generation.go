package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol3d/rules"
)

// StepOptions selects how a generation is computed. Every option yields the
// same output grid.
type StepOptions struct {
	// Workers is the number of goroutines; 0 means runtime.NumCPU()
	Workers int
	// Bounded restricts evaluation to the active region plus a one-cell margin
	Bounded bool
}

// NextGeneration calculates the next generation based on the options
func (g *Grid) NextGeneration(rule rules.Rule, opts StepOptions) *Grid {
	if opts.Bounded {
		return g.NextGenerationBounded(rule, opts.Workers)
	}
	return g.NextGenerationParallel(rule, opts.Workers)
}

// NextGenerationParallel evaluates every cell of the grid, split across workers
func (g *Grid) NextGenerationParallel(rule rules.Rule, workers int) *Grid {
	next := newGrid(g.width, g.height, g.depth)
	g.evaluate(next, box{maxX: g.width - 1, maxY: g.height - 1, maxZ: g.depth - 1}, rule, workers)
	next.seal()
	return next
}

// NextGenerationBounded evaluates only the active region and a one-cell margin.
//
// With Min >= 0 a cell with no Alive neighbours is always Dead next, and every
// cell outside the margin has none.
func (g *Grid) NextGenerationBounded(rule rules.Rule, workers int) *Grid {
	if rule.Min < 0 {
		return g.NextGenerationParallel(rule, workers)
	}

	next := newGrid(g.width, g.height, g.depth)

	// If no active cells, return empty grid
	if !g.activeBounds.valid {
		return next
	}

	b := g.activeBounds
	region := box{
		minX: max(0, b.minX-1),
		maxX: min(g.width-1, b.maxX+1),
		minY: max(0, b.minY-1),
		maxY: min(g.height-1, b.maxY+1),
		minZ: max(0, b.minZ-1),
		maxZ: min(g.depth-1, b.maxZ+1),
	}
	g.evaluate(next, region, rule, workers)
	next.seal()
	return next
}

// evaluate writes the successor of every cell in region into next. Workers
// read only g and each writes a disjoint range of next.
func (g *Grid) evaluate(next *Grid, region box, rule rules.Rule, workers int) {
	total := region.volume()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, total)

	var (
		eg             errgroup.Group
		spanX          = region.maxX - region.minX + 1
		spanY          = region.maxY - region.minY + 1
		cellsPerWorker = (total + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			start = i * cellsPerWorker
			end   = min(start+cellsPerWorker, total)
		)
		if start >= total {
			break
		}

		eg.Go(func() error {
			for k := start; k < end; k++ {
				x := region.minX + k%spanX
				y := region.minY + (k/spanX)%spanY
				z := region.minZ + k/(spanX*spanY)
				if rules.NextState(g.countNeighborsUpTo(x, y, z, rule.Max), rule) {
					next.cells[next.index(x, y, z)] = Alive
				}
			}
			return nil
		})
	}

	// Workers cannot fail; Wait is only the barrier before next is sealed.
	_ = eg.Wait()
}
