package grid

import (
	"hash/fnv"
)

// StringHash is an FNV-1a hash of a tile definition name. Catalog lookups
// on the hot path use hashes instead of string compares.
type StringHash uint64

// HashString returns the FNV-1a hash of s.
func HashString(s string) StringHash {
	h := fnv.New64a()
	h.Write([]byte(s))
	return StringHash(h.Sum64())
}

// Layer identifies one of the stacked tile layers of the map.
type Layer int

const (
	LayerTerrain Layer = iota // ground tiles, always fully populated
	LayerObjects              // buildings and blockers
	LayerUnits                // mobile units
	LayerCount
)

func (l Layer) String() string {
	switch l {
	case LayerTerrain:
		return "terrain"
	case LayerObjects:
		return "objects"
	case LayerUnits:
		return "units"
	}
	return "unknown"
}

// TileKind is a bitmask of tile categories. Queries pass ORed masks as
// "any of" filters.
type TileKind uint32

const (
	TileTerrain TileKind = 1 << iota
	TileBuilding
	TileBlocker // footprint cell of a multi-cell building, owned by the base tile
	TileUnit
)

// LayerForKind maps a tile kind to the layer it is placed on.
func LayerForKind(kind TileKind) Layer {
	switch {
	case kind&TileTerrain != 0:
		return LayerTerrain
	case kind&(TileBuilding|TileBlocker) != 0:
		return LayerObjects
	default:
		return LayerUnits
	}
}

// Standard tile-set category names.
const (
	CategoryTerrain   = "terrain"
	CategoryBuildings = "buildings"
	CategoryUnits     = "units"
)

// TileDef is an immutable tile definition from the tile-set catalog.
type TileDef struct {
	Name     string
	Hash     StringHash
	Category string
	Kind     TileKind
	Width    int // footprint size in cells
	Height   int
}

// Is reports whether the definition matches any kind in the mask.
func (d *TileDef) Is(kinds TileKind) bool {
	return d.Kind&kinds != 0
}

// HasMultiCellFootprint reports whether the tile occupies more than one cell.
func (d *TileDef) HasMultiCellFootprint() bool {
	return d.Width > 1 || d.Height > 1
}

// FootprintCells returns the cell range covered by the tile when its base
// cell is placed at base.
func (d *TileDef) FootprintCells(base Cell) CellRange {
	w, h := d.Width, d.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return CellRange{
		Start: base,
		End:   Cell{X: base.X + w - 1, Y: base.Y + h - 1},
	}
}

type tileDefKey struct {
	layer    Layer
	category string
	hash     StringHash
}

// TileSets is the catalog of tile definitions, indexed by layer, category
// and name hash.
type TileSets struct {
	defs map[tileDefKey]*TileDef
}

// NewTileSets builds a catalog from a definition list, computing name
// hashes. Later duplicates overwrite earlier entries.
func NewTileSets(defs []TileDef) *TileSets {
	ts := &TileSets{defs: make(map[tileDefKey]*TileDef, len(defs))}
	for i := range defs {
		d := defs[i]
		d.Hash = HashString(d.Name)
		if d.Width < 1 {
			d.Width = 1
		}
		if d.Height < 1 {
			d.Height = 1
		}
		ts.defs[tileDefKey{layer: LayerForKind(d.Kind), category: d.Category, hash: d.Hash}] = &d
	}
	return ts
}

// FindByHash returns a tile definition by layer, category and name hash,
// or nil if not found.
func (ts *TileSets) FindByHash(layer Layer, category string, hash StringHash) *TileDef {
	return ts.defs[tileDefKey{layer: layer, category: category, hash: hash}]
}

// FindByName returns a tile definition by layer, category and name,
// or nil if not found.
func (ts *TileSets) FindByName(layer Layer, category, name string) *TileDef {
	return ts.FindByHash(layer, category, HashString(name))
}

// Count returns the number of definitions in the catalog.
func (ts *TileSets) Count() int {
	return len(ts.defs)
}
