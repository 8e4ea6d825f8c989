package resource

import "fmt"

// StockItem is one (kind, count) pair in a stock. Kind always has exactly
// one bit set.
type StockItem struct {
	Kind  Kind
	Count int
}

// Stock is an ordered list of stock items restricted to an accepted-kinds
// allow-list, with at most one entry per kind. Entries exist for every
// accepted kind from construction on, with zero counts; querying a kind
// outside the accepted list is a programmer error and panics.
type Stock struct {
	accepted Kinds
	items    []StockItem
}

// NewStock creates a stock pre-populated with a zero-count entry for each
// single kind in the accepted list, in list order.
func NewStock(accepted Kinds) *Stock {
	s := &Stock{accepted: accepted}
	seen := KindNone
	for _, entry := range accepted.Entries() {
		forEachSingleKind(entry, func(k Kind) {
			if seen.Intersects(k) {
				return // one entry per kind
			}
			seen |= k
			s.items = append(s.items, StockItem{Kind: k})
		})
	}
	return s
}

// NewStockOf creates a stock accepting every kind in the mask.
func NewStockOf(mask Kind) *Stock {
	return NewStock(KindsOf(mask))
}

// Accepted returns the allow-list the stock was created with.
func (s *Stock) Accepted() Kinds {
	return s.accepted
}

// Find returns the index and item for a single kind. Panics when the kind
// is not in the accepted list.
func (s *Stock) Find(kind Kind) (int, StockItem) {
	if !kind.IsSingle() {
		panic(fmt.Sprintf("stock lookup requires a single resource kind, got '%v'", kind))
	}
	for i, item := range s.items {
		if item.Kind == kind {
			return i, item
		}
	}
	panic(fmt.Sprintf("resource kind '%v' expected to exist in the stock", kind))
}

// Count returns the stored count for a single kind.
func (s *Stock) Count(kind Kind) int {
	_, item := s.Find(kind)
	return item.Count
}

// Set overwrites the item at index.
func (s *Stock) Set(index int, item StockItem) {
	s.items[index] = item
}

// Add increments the count of a single kind by one and returns the new count.
func (s *Stock) Add(kind Kind) int {
	return s.AddCount(kind, 1)
}

// AddCount increments the count of a single kind and returns the new count.
func (s *Stock) AddCount(kind Kind, count int) int {
	i, item := s.Find(kind)
	item.Count += count
	s.items[i] = item
	return item.Count
}

// RemoveCount removes up to count of a single kind and returns how many
// were actually removed.
func (s *Stock) RemoveCount(kind Kind, count int) int {
	i, item := s.Find(kind)
	removed := count
	if removed > item.Count {
		removed = item.Count
	}
	item.Count -= removed
	s.items[i] = item
	return removed
}

// IsEmpty reports whether every entry has a zero count.
func (s *Stock) IsEmpty() bool {
	for _, item := range s.items {
		if item.Count != 0 {
			return false
		}
	}
	return true
}

// Total returns the summed count of all entries.
func (s *Stock) Total() int {
	total := 0
	for _, item := range s.items {
		total += item.Count
	}
	return total
}

// PeekNonEmpty returns the first entry with a nonzero count, in stock
// order, or a zero item and false when the stock is empty.
func (s *Stock) PeekNonEmpty() (StockItem, bool) {
	for _, item := range s.items {
		if item.Count != 0 {
			return item, true
		}
	}
	return StockItem{}, false
}

// ForEach visits every entry in order.
func (s *Stock) ForEach(visit func(index int, item StockItem)) {
	for i, item := range s.items {
		visit(i, item)
	}
}
