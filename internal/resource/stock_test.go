package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockPrePopulatesAcceptedKinds(t *testing.T) {
	s := NewStockOf(Foods())

	assert.Equal(t, 0, s.Count(Rice))
	assert.Equal(t, 0, s.Count(Meat))
	assert.Equal(t, 0, s.Count(Fish))
	assert.True(t, s.IsEmpty())
	assert.Panics(t, func() { s.Count(Wood) }, "kind outside the allow-list")
}

func TestStockAddRemove(t *testing.T) {
	s := NewStockOf(Rice | Wood)

	assert.Equal(t, 1, s.Add(Rice))
	assert.Equal(t, 4, s.AddCount(Rice, 3))
	assert.Equal(t, 4, s.Total())

	removed := s.RemoveCount(Rice, 10)
	assert.Equal(t, 4, removed, "removal saturates at the stored count")
	assert.Equal(t, 0, s.Count(Rice))
	assert.True(t, s.IsEmpty())
}

func TestStockPeekNonEmpty(t *testing.T) {
	s := NewStockOf(Foods())
	_, ok := s.PeekNonEmpty()
	assert.False(t, ok)

	s.Add(Fish)
	item, ok := s.PeekNonEmpty()
	require.True(t, ok)
	assert.Equal(t, Fish, item.Kind)
	assert.Equal(t, 1, item.Count)
}

func TestStockRejectsMultiKindLookup(t *testing.T) {
	s := NewStockOf(AllKinds())
	assert.Panics(t, func() { s.Count(Rice | Meat) })
}

func TestKindIsSingle(t *testing.T) {
	assert.True(t, Rice.IsSingle())
	assert.True(t, Gold.IsSingle())
	assert.False(t, KindNone.IsSingle())
	assert.False(t, Foods().IsSingle())
}

func TestKindIntersects(t *testing.T) {
	assert.True(t, Rice.Intersects(Foods()))
	assert.False(t, Wood.Intersects(Foods()))
	assert.True(t, (Rice | Wood).Intersects(Wood | Stone))
}

func TestKindsOfExpandsMask(t *testing.T) {
	ks := KindsOf(Rice | Fish | Gold)
	assert.Equal(t, 3, ks.Len())
	assert.Equal(t, []Kind{Rice, Fish, Gold}, ks.Entries(), "bit order")
	assert.Equal(t, Rice|Fish|Gold, ks.Mask())
}

func TestKindsAccepts(t *testing.T) {
	ks := NewKinds(Rice, Meat|Fish)
	assert.True(t, ks.Accepts(Rice))
	assert.True(t, ks.Accepts(Fish))
	assert.False(t, ks.Accepts(Wood))
	assert.False(t, NoKinds().Accepts(Rice))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rice", Rice.String())
	assert.Equal(t, "rice|meat|fish", Foods().String())
	assert.Equal(t, "none", KindNone.String())
}

func TestKindFromName(t *testing.T) {
	assert.Equal(t, Stone, KindFromName("stone"))
	assert.Equal(t, KindNone, KindFromName("mithril"))
}
