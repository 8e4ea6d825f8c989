package grid

import (
	"fmt"
)

// Tile is one placed tile instance. Multi-cell buildings store the same
// *Tile in every footprint cell; BaseCell identifies the anchor.
type Tile struct {
	def    *TileDef
	base   Cell
	handle GameStateHandle
}

func (t *Tile) Def() *TileDef        { return t.def }
func (t *Tile) Name() string         { return t.def.Name }
func (t *Tile) NameHash() StringHash { return t.def.Hash }
func (t *Tile) Kind() TileKind       { return t.def.Kind }
func (t *Tile) BaseCell() Cell       { return t.base }

// Is reports whether the tile matches any kind in the mask.
func (t *Tile) Is(kinds TileKind) bool {
	return t.def.Kind&kinds != 0
}

// CellRange returns the footprint of the tile.
func (t *Tile) CellRange() CellRange {
	return t.def.FootprintCells(t.base)
}

// GameStateHandle returns the entity back-reference stored on the tile.
// The zero/invalid handle means no entity is attached.
func (t *Tile) GameStateHandle() GameStateHandle {
	return t.handle
}

func (t *Tile) SetGameStateHandle(h GameStateHandle) {
	t.handle = h
}

func (t *Tile) ClearGameStateHandle() {
	t.handle = 0
}

// TileMap is the layered cell grid. Each layer stores one optional tile
// per cell. Single-goroutine access only (game loop).
type TileMap struct {
	width  int
	height int
	layers [LayerCount][]*Tile
}

func NewTileMap(width, height int) *TileMap {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("tile map must have positive dimensions, got %dx%d", width, height))
	}
	m := &TileMap{width: width, height: height}
	for l := range m.layers {
		m.layers[l] = make([]*Tile, width*height)
	}
	return m
}

func (m *TileMap) Width() int  { return m.width }
func (m *TileMap) Height() int { return m.height }

// IsWithinBounds reports whether the cell lies on the map.
func (m *TileMap) IsWithinBounds(c Cell) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

func (m *TileMap) cellIndex(c Cell) int {
	return c.Y*m.width + c.X
}

// FindTile returns the tile at the cell on the given layer if it matches
// any kind in the mask, or nil. Out-of-bounds cells return nil.
func (m *TileMap) FindTile(c Cell, layer Layer, kinds TileKind) *Tile {
	if !m.IsWithinBounds(c) {
		return nil
	}
	t := m.layers[layer][m.cellIndex(c)]
	if t == nil || !t.Is(kinds) {
		return nil
	}
	return t
}

// HasTile reports whether a matching tile occupies the cell.
func (m *TileMap) HasTile(c Cell, layer Layer, kinds TileKind) bool {
	return m.FindTile(c, layer, kinds) != nil
}

// TryPlaceTile places a tile of the given definition with its base at the
// cell. Placement fails with a descriptive error when the target is out of
// bounds or the footprint overlaps an occupant the definition may not
// share a cell with. World state is untouched on failure.
func (m *TileMap) TryPlaceTile(c Cell, def *TileDef) (*Tile, error) {
	if !m.IsWithinBounds(c) {
		return nil, fmt.Errorf("place %q at %v: cell out of bounds", def.Name, c)
	}
	layer := LayerForKind(def.Kind)

	if def.Is(TileBuilding) {
		footprint := def.FootprintCells(c)
		var conflict error
		footprint.ForEach(func(fc Cell) bool {
			if !m.IsWithinBounds(fc) {
				conflict = fmt.Errorf("place %q at %v: footprint cell %v out of bounds", def.Name, c, fc)
				return false
			}
			if m.HasTile(fc, LayerObjects, TileBuilding|TileBlocker) {
				conflict = fmt.Errorf("place %q at %v: cell %v already occupied by a building", def.Name, c, fc)
				return false
			}
			if m.HasTile(fc, LayerUnits, TileUnit) {
				conflict = fmt.Errorf("place %q at %v: cell %v occupied by a unit", def.Name, c, fc)
				return false
			}
			return true
		})
		if conflict != nil {
			return nil, conflict
		}
	} else if def.Is(TileUnit) {
		if m.HasTile(c, LayerObjects, TileBuilding|TileBlocker) {
			return nil, fmt.Errorf("place unit %q at %v: cell occupied by a building", def.Name, c)
		}
		if m.HasTile(c, LayerUnits, TileUnit) {
			return nil, fmt.Errorf("place unit %q at %v: cell occupied by another unit", def.Name, c)
		}
	}

	tile := &Tile{def: def, base: c}
	if def.Is(TileBuilding) && def.HasMultiCellFootprint() {
		def.FootprintCells(c).ForEach(func(fc Cell) bool {
			m.layers[layer][m.cellIndex(fc)] = tile
			return true
		})
	} else {
		m.layers[layer][m.cellIndex(c)] = tile
	}
	return tile, nil
}

// TryClearTile removes the tile occupying the cell on the given layer.
// Clearing a building clears its whole footprint. Fails when the cell is
// out of bounds or empty.
//
// Callers that attached a game-state entity to the tile must despawn the
// entity through World before clearing, or the entity is orphaned.
func (m *TileMap) TryClearTile(c Cell, layer Layer) error {
	if !m.IsWithinBounds(c) {
		return fmt.Errorf("clear tile at %v: cell out of bounds", c)
	}
	t := m.layers[layer][m.cellIndex(c)]
	if t == nil {
		return fmt.Errorf("clear tile at %v: no tile on %v layer", c, layer)
	}
	if t.Is(TileBuilding) {
		t.CellRange().ForEach(func(fc Cell) bool {
			if m.IsWithinBounds(fc) {
				m.layers[layer][m.cellIndex(fc)] = nil
			}
			return true
		})
		return nil
	}
	m.layers[layer][m.cellIndex(c)] = nil
	return nil
}

// MoveTile relocates a single-cell tile (units) from its current cell to
// dest. Fails when dest is blocked.
func (m *TileMap) MoveTile(t *Tile, dest Cell) error {
	if !t.Is(TileUnit) {
		return fmt.Errorf("move tile %q: only unit tiles can move", t.Name())
	}
	if !m.IsWithinBounds(dest) {
		return fmt.Errorf("move %q to %v: cell out of bounds", t.Name(), dest)
	}
	if m.HasTile(dest, LayerObjects, TileBuilding|TileBlocker) {
		return fmt.Errorf("move %q to %v: cell occupied by a building", t.Name(), dest)
	}
	if other := m.FindTile(dest, LayerUnits, TileUnit); other != nil && other != t {
		return fmt.Errorf("move %q to %v: cell occupied by another unit", t.Name(), dest)
	}
	m.layers[LayerUnits][m.cellIndex(t.base)] = nil
	t.base = dest
	m.layers[LayerUnits][m.cellIndex(dest)] = t
	return nil
}

// ForEachTile visits every matching base tile on a layer in row-major
// order. Blocker cells of multi-cell buildings are visited once, at the
// base cell. The visitor returns false to stop early.
func (m *TileMap) ForEachTile(layer Layer, kinds TileKind, visit func(*Tile) bool) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := Cell{X: x, Y: y}
			t := m.layers[layer][m.cellIndex(c)]
			if t == nil || !t.Is(kinds) || t.base != c {
				continue
			}
			if !visit(t) {
				return
			}
		}
	}
}
