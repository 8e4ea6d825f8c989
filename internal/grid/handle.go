package grid

// GameStateHandle is the opaque back-reference a tile carries to the game
// entity occupying it. It encodes a 32-bit slot index in the lower bits and
// a 32-bit kind tag in the upper bits, so a tile lookup can recover the
// owning collection and slot without scanning.
//
// For buildings the tag is the building-kind bit (exactly one bit set);
// units use the reserved UnitHandleTag sentinel. The zero value is invalid.
type GameStateHandle uint64

// InvalidHandleIndex marks a handle that does not reference any entity.
const InvalidHandleIndex = ^uint32(0)

// UnitHandleTag is the tag value reserved for handles that reference a
// unit in the spawn pool rather than a building.
const UnitHandleTag uint32 = 0xFFFF_FFFF

func NewGameStateHandle(index uint32, tag uint32) GameStateHandle {
	return GameStateHandle(uint64(tag)<<32 | uint64(index))
}

func (h GameStateHandle) Index() uint32 { return uint32(h) }
func (h GameStateHandle) Tag() uint32   { return uint32(h >> 32) }

func (h GameStateHandle) IsValid() bool {
	return h != 0 && h.Index() != InvalidHandleIndex
}

// IsUnit reports whether the handle references a unit rather than a building.
func (h GameStateHandle) IsUnit() bool {
	return h.IsValid() && h.Tag() == UnitHandleTag
}
