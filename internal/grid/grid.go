// Package grid implements a uniform spatial grid for broad-phase collision
// checks. The play area is split into square cells; each tick the grid is
// cleared and every moving body is inserted into the cells its circular
// hitbox overlaps, so pairwise checks only run between bodies sharing a cell.
package grid

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/tui-hackslash/internal/core"
)

// Cell is a grid coordinate: column then row.
type Cell struct {
	Col, Row int
}

// Grid partitions a width x height area into square cells.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat: index = row*cols + col
}

// New creates a grid covering width x height with the given cell edge.
// The last row and column may extend past the area when the size is not a
// multiple of the cell edge.
func New(width, height, cellSize float64) *Grid {
	if cellSize <= 0 || width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %gx%g cell %g", width, height, cellSize))
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4)
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the cell edge length.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Valid reports whether c lies inside the grid.
func (g *Grid) Valid(c Cell) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

// Clear empties every cell, keeping allocated capacity.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// CellOf returns the (possibly out of range) cell containing p.
func (g *Grid) CellOf(p core.Vec2) Cell {
	return Cell{
		Col: int(math.Floor(p.X / g.cellSize)),
		Row: int(math.Floor(p.Y / g.cellSize)),
	}
}

// Classify appends to dst the cells overlapped by the bounding box of the
// circle at pos with the given radius and returns the extended slice.
// Cells outside the grid are dropped, not clamped, so a body entirely off
// the play area classifies to nothing.
func (g *Grid) Classify(pos core.Vec2, radius float64, dst []Cell) []Cell {
	lo := g.CellOf(core.V(pos.X-radius, pos.Y-radius))
	hi := g.CellOf(core.V(pos.X+radius, pos.Y+radius))

	if lo == hi {
		if g.Valid(lo) {
			dst = append(dst, lo)
		}
		return dst
	}

	for col := lo.Col; col <= hi.Col; col++ {
		for row := lo.Row; row <= hi.Row; row++ {
			c := Cell{Col: col, Row: row}
			if g.Valid(c) {
				dst = append(dst, c)
			}
		}
	}
	return dst
}

// Insert appends e to every listed cell. A body straddling a boundary is
// deliberately present in several cells.
func (g *Grid) Insert(e ecs.Entity, cells []Cell) {
	for _, c := range cells {
		if !g.Valid(c) {
			continue
		}
		idx := c.Row*g.cols + c.Col
		g.cells[idx] = append(g.cells[idx], e)
	}
}

// At returns the entities in c. The slice is only valid until the next
// Clear or Insert.
func (g *Grid) At(c Cell) []ecs.Entity {
	if !g.Valid(c) {
		return nil
	}
	return g.cells[c.Row*g.cols+c.Col]
}

// Bounds returns the world-space corners of c.
func (g *Grid) Bounds(c Cell) (lo, hi core.Vec2) {
	lo = core.V(float64(c.Col)*g.cellSize, float64(c.Row)*g.cellSize)
	hi = lo.Add(core.V(g.cellSize, g.cellSize))
	return lo, hi
}

// ForEachPair calls visit once for every pair of distinct entries sharing a
// cell, in insertion order (a was inserted before b). Pairs are not
// deduplicated across cells: two bodies that both straddle the same boundary
// are visited once per shared cell, so visit must tolerate repeats.
func (g *Grid) ForEachPair(visit func(a, b ecs.Entity)) {
	for _, cell := range g.cells {
		for i := 0; i < len(cell); i++ {
			for j := i + 1; j < len(cell); j++ {
				if cell[i] == cell[j] {
					continue
				}
				visit(cell[i], cell[j])
			}
		}
	}
}

// Occupied calls fn for every non-empty cell with its population.
func (g *Grid) Occupied(fn func(c Cell, n int)) {
	for idx, cell := range g.cells {
		if len(cell) == 0 {
			continue
		}
		fn(Cell{Col: idx % g.cols, Row: idx / g.cols}, len(cell))
	}
}
