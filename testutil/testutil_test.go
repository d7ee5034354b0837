package testutil

import (
	"testing"

	"github.com/hupe1980/voxbvh/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems(t *testing.T) {
	rng := NewRNG(4711)

	items := rng.Items(100, 64, 4)

	require.Len(t, items, 100)
	for i, it := range items {
		assert.Equal(t, i, it.ID)
		assert.True(t, it.Box.Valid())
		assert.LessOrEqual(t, it.Box.Width(), int64(4))
		assert.GreaterOrEqual(t, it.Box.Start.X, int32(-32))
		assert.Less(t, it.Box.Start.X, int32(32))
	}
}

func TestClusteredItems(t *testing.T) {
	rng := NewRNG(4711)

	items := rng.ClusteredItems(50, 5, 1024, 16, 2)

	require.Len(t, items, 50)
	for _, it := range items {
		assert.True(t, it.Box.Valid())
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	b1 := rng.Box(128, 8)

	rng.Reset()
	b2 := rng.Box(128, 8)

	assert.Equal(t, b1, b2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestOracles(t *testing.T) {
	a := &Item{ID: 1, Box: geom.NewBox(geom.V3(0, 0, 0), geom.V3(1, 1, 1))}
	b := &Item{ID: 0, Box: geom.NewBox(geom.V3(10, 10, 10), geom.V3(11, 11, 11))}
	items := []*Item{a, b}

	assert.Equal(t, []*Item{a}, ExactQuery(items, geom.NewBox(geom.V3(0, 0, 0), geom.V3(2, 2, 2))))
	assert.Equal(t, []*Item{b, a}, ExactQuery(items, geom.NewBox(geom.V3(0, 0, 0), geom.V3(20, 20, 20))))
	assert.Equal(t, []*Item{b}, ExactPoint(items, geom.V3(11, 10, 10)))
	assert.Equal(t, []*Item{a}, ExactRadius(items, geom.V3(3, 1, 1), 2))

	d, ok := ExactClosest(items, geom.V3(5, 5, 5), ^uint64(0))
	require.True(t, ok)
	assert.Equal(t, uint64(48), d)

	_, ok = ExactClosest(items, geom.V3(5, 5, 5), 47)
	assert.False(t, ok)
}
