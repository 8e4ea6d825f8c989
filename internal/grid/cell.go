package grid

import "fmt"

// Cell is a 2D tile coordinate on the map grid.
type Cell struct {
	X int
	Y int
}

func NewCell(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// IsValid reports whether the coordinate is non-negative. Bounds checks
// against a specific map are done by TileMap.IsWithinBounds.
func (c Cell) IsValid() bool {
	return c.X >= 0 && c.Y >= 0
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}

// ChebyshevDistance returns the board distance between two cells
// (diagonal steps count as one).
func ChebyshevDistance(a, b Cell) int {
	dx := absInt(a.X - b.X)
	dy := absInt(a.Y - b.Y)
	if dy > dx {
		return dy
	}
	return dx
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CellRange is an inclusive rectangle of cells. Start is the top-left
// corner, End the bottom-right.
type CellRange struct {
	Start Cell
	End   Cell
}

func NewCellRange(start, end Cell) CellRange {
	return CellRange{Start: start, End: end}
}

// CellRangeForCell returns the single-cell range covering c.
func CellRangeForCell(c Cell) CellRange {
	return CellRange{Start: c, End: c}
}

func (r CellRange) IsValid() bool {
	return r.Start.IsValid() && r.End.X >= r.Start.X && r.End.Y >= r.Start.Y
}

func (r CellRange) Contains(c Cell) bool {
	return c.X >= r.Start.X && c.X <= r.End.X &&
		c.Y >= r.Start.Y && c.Y <= r.End.Y
}

// IsAdjacent reports whether c touches the range border (or lies inside it).
func (r CellRange) IsAdjacent(c Cell) bool {
	return r.Expand(1).Contains(c)
}

// Expand grows the range outward by radius cells on both axes. The result
// may extend past the map bounds; cell lookups on the map reject those.
func (r CellRange) Expand(radius int) CellRange {
	return CellRange{
		Start: Cell{X: r.Start.X - radius, Y: r.Start.Y - radius},
		End:   Cell{X: r.End.X + radius, Y: r.End.Y + radius},
	}
}

// ForEach visits every cell in row-major order (Y outer, X inner).
// The visitor returns false to stop early.
func (r CellRange) ForEach(visit func(Cell) bool) {
	for y := r.Start.Y; y <= r.End.Y; y++ {
		for x := r.Start.X; x <= r.End.X; x++ {
			if !visit(Cell{X: x, Y: y}) {
				return
			}
		}
	}
}

func (r CellRange) String() string {
	return fmt.Sprintf("%v..%v", r.Start, r.End)
}
