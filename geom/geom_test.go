package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxNormalizes(t *testing.T) {
	b := NewBox(V3(5, -1, 3), V3(0, 4, -2))
	assert.Equal(t, V3(0, -1, -2), b.Start)
	assert.Equal(t, V3(5, 4, 3), b.End)
	assert.True(t, b.Valid())

	b = BoxFromSize(V3(1, 1, 1), V3(2, 3, 4))
	assert.Equal(t, Box{Start: V3(1, 1, 1), End: V3(3, 4, 5)}, b)
	assert.Equal(t, int64(2), b.Width())
	assert.Equal(t, int64(3), b.Height())
	assert.Equal(t, int64(4), b.Depth())

	assert.False(t, Box{Start: V3(1, 0, 0), End: V3(0, 0, 0)}.Valid())
}

func TestSurfaceArea(t *testing.T) {
	assert.Equal(t, 6.0, NewBox(V3(0, 0, 0), V3(1, 1, 1)).SurfaceArea())
	assert.Equal(t, 2.0*(2*3+2*4+3*4), BoxFromSize(V3(0, 0, 0), V3(2, 3, 4)).SurfaceArea())
	assert.Equal(t, 0.0, NewBox(V3(1, 1, 1), V3(1, 1, 1)).SurfaceArea())

	huge := NewBox(V3(math.MinInt32, math.MinInt32, math.MinInt32), V3(math.MaxInt32, math.MaxInt32, math.MaxInt32))
	assert.Greater(t, huge.SurfaceArea(), 0.0)
	assert.False(t, math.IsInf(huge.SurfaceArea(), 0))
}

func TestIntersects(t *testing.T) {
	unit := NewBox(V3(0, 0, 0), V3(1, 1, 1))

	tests := []struct {
		name  string
		other Box
		want  bool
	}{
		{"identical", unit, true},
		{"touching face", NewBox(V3(1, 0, 0), V3(2, 1, 1)), true},
		{"touching corner", NewBox(V3(1, 1, 1), V3(2, 2, 2)), true},
		{"separated x", NewBox(V3(2, 0, 0), V3(3, 1, 1)), false},
		{"separated y", NewBox(V3(0, -3, 0), V3(1, -2, 1)), false},
		{"separated z", NewBox(V3(0, 0, 2), V3(1, 1, 3)), false},
		{"enclosing", NewBox(V3(-5, -5, -5), V3(5, 5, 5)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unit.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(unit), "symmetry")
		})
	}
}

func TestContains(t *testing.T) {
	b := NewBox(V3(0, 0, 0), V3(2, 2, 2))

	assert.True(t, b.Contains(V3(0, 0, 0)))
	assert.True(t, b.Contains(V3(2, 2, 2)))
	assert.True(t, b.Contains(V3(1, 2, 0)))
	assert.False(t, b.Contains(V3(3, 1, 1)))
	assert.False(t, b.Contains(V3(1, -1, 1)))

	assert.True(t, b.ContainsBox(NewBox(V3(0, 0, 0), V3(1, 1, 1))))
	assert.False(t, b.ContainsBox(NewBox(V3(1, 1, 1), V3(3, 1, 1))))
}

func TestUnion(t *testing.T) {
	a := NewBox(V3(0, 0, 0), V3(1, 1, 1))
	b := NewBox(V3(10, -2, 5), V3(11, 0, 6))

	u := Union(a, b)
	assert.Equal(t, V3(0, -2, 0), u.Start)
	assert.Equal(t, V3(11, 1, 6), u.End)
	assert.Equal(t, u, Union(b, a))
	assert.True(t, u.ContainsBox(a))
	assert.True(t, u.ContainsBox(b))
}

func TestDistanceSquared(t *testing.T) {
	a := NewBox(V3(0, 0, 0), V3(1, 1, 1))
	b := NewBox(V3(10, 10, 10), V3(11, 11, 11))
	p := V3(5, 5, 5)

	assert.Equal(t, uint64(48), a.DistanceSquared(p))
	assert.Equal(t, uint64(75), b.DistanceSquared(p))
	assert.Equal(t, uint64(0), a.DistanceSquared(V3(1, 0, 1)))
	assert.Equal(t, uint64(4), a.DistanceSquared(V3(-2, 0, 1)))

	far := NewBox(V3(math.MaxInt32, math.MaxInt32, math.MaxInt32), V3(math.MaxInt32, math.MaxInt32, math.MaxInt32))
	d := far.DistanceSquared(V3(math.MinInt32, math.MinInt32, math.MinInt32))
	assert.Equal(t, uint64(math.MaxUint64), d, "saturates instead of wrapping")
}

func TestExpand(t *testing.T) {
	b := NewBox(V3(0, 0, 0), V3(1, 1, 1)).Expand(2)
	assert.Equal(t, V3(-2, -2, -2), b.Start)
	assert.Equal(t, V3(3, 3, 3), b.End)

	edge := NewBox(V3(math.MaxInt32-1, 0, 0), V3(math.MaxInt32, 0, 0)).Expand(10)
	assert.Equal(t, int32(math.MaxInt32), edge.End.X)
	require.True(t, edge.Valid())
}

func TestCentroid2(t *testing.T) {
	b := NewBox(V3(1, 2, 3), V3(4, 8, 3))
	assert.Equal(t, int64(5), b.Centroid2(AxisX))
	assert.Equal(t, int64(10), b.Centroid2(AxisY))
	assert.Equal(t, int64(6), b.Centroid2(AxisZ))
}

func TestMglInterop(t *testing.T) {
	assert.Equal(t, V3(1, -2, 0), FromMgl(mgl32.Vec3{1.7, -1.2, 0.0}))
	assert.Equal(t, mgl32.Vec3{3, -4, 5}, V3(3, -4, 5).Mgl())

	b := BoxFromMgl(mgl32.Vec3{2.5, 0.5, -0.5}, mgl32.Vec3{0.2, 1.5, 1})
	assert.Equal(t, V3(0, 0, -1), b.Start)
	assert.Equal(t, V3(3, 2, 1), b.End)

	assert.Equal(t, mgl32.Vec3{1, 1, 1}, NewBox(V3(0, 0, 0), V3(2, 2, 2)).Center())
}
