package resource

import "strings"

// Kind is a bitmask of resource types. A concrete stock entry carries
// exactly one bit; multi-bit values act as "any of" filters (for example
// Foods() when a house accepts any one kind of food).
type Kind uint32

const (
	Rice Kind = 1 << iota
	Meat
	Fish
	Wood
	Stone
	Gold

	kindCount = 6
)

// KindNone is the empty kind set.
const KindNone Kind = 0

// Foods returns the filter matching every edible resource.
func Foods() Kind {
	return Rice | Meat | Fish
}

// AllKinds returns the filter matching every resource.
func AllKinds() Kind {
	return (1 << kindCount) - 1
}

// IsSingle reports whether exactly one bit is set. Concrete stock
// operations require single kinds.
func (k Kind) IsSingle() bool {
	return k != 0 && k&(k-1) == 0
}

// Intersects reports whether the two kind sets share any bit.
func (k Kind) Intersects(other Kind) bool {
	return k&other != 0
}

func (k Kind) String() string {
	if k == 0 {
		return "none"
	}
	names := []struct {
		bit  Kind
		name string
	}{
		{Rice, "rice"}, {Meat, "meat"}, {Fish, "fish"},
		{Wood, "wood"}, {Stone, "stone"}, {Gold, "gold"},
	}
	var parts []string
	for _, n := range names {
		if k&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// KindFromName returns the single kind with the given name, or KindNone.
func KindFromName(name string) Kind {
	switch name {
	case "rice":
		return Rice
	case "meat":
		return Meat
	case "fish":
		return Fish
	case "wood":
		return Wood
	case "stone":
		return Stone
	case "gold":
		return Gold
	}
	return KindNone
}

// forEachSingleKind visits each set bit of the mask as a single kind.
func forEachSingleKind(mask Kind, visit func(Kind)) {
	for bit := Kind(1); bit < 1<<kindCount; bit <<= 1 {
		if mask&bit != 0 {
			visit(bit)
		}
	}
}

// Kinds is an ordered list of kind requirements. Each entry may be a
// multi-bit "any of" filter; the list order is the priority order callers
// iterate in (a shopping list, a set of accepted resources).
type Kinds struct {
	entries []Kind
}

// NewKinds builds a requirement list from the given entries, in order.
func NewKinds(entries ...Kind) Kinds {
	return Kinds{entries: append([]Kind(nil), entries...)}
}

// NoKinds returns the empty requirement list.
func NoKinds() Kinds {
	return Kinds{}
}

// KindsOf expands a mask into a list with one single-kind entry per set bit.
func KindsOf(mask Kind) Kinds {
	var ks Kinds
	forEachSingleKind(mask, func(k Kind) {
		ks.entries = append(ks.entries, k)
	})
	return ks
}

func (ks Kinds) IsEmpty() bool {
	return len(ks.entries) == 0
}

func (ks Kinds) Len() int {
	return len(ks.entries)
}

// Entries returns the requirement entries in order. Callers must not
// mutate the returned slice.
func (ks Kinds) Entries() []Kind {
	return ks.entries
}

// Mask returns the union of all entries.
func (ks Kinds) Mask() Kind {
	var m Kind
	for _, e := range ks.entries {
		m |= e
	}
	return m
}

// Accepts reports whether the single kind satisfies any entry.
func (ks Kinds) Accepts(k Kind) bool {
	return ks.Mask().Intersects(k)
}
