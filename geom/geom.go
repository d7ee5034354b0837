// Package geom provides the integer vector and axis-aligned box value types
// shared by the index and its callers.
//
// All operations are pure and allocation-free. Box coordinates are inclusive:
// a box contains every point p with Start <= p <= End on all three axes.
package geom

import (
	"fmt"
	"math"
)

// Axis identifies one of the three coordinate axes.
type Axis int

// Axes in evaluation order.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec3 is an integer world coordinate.
type Vec3 struct {
	X, Y, Z int32
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z int32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v+o with int32 saturation.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{
		X: sat32(int64(v.X) + int64(o.X)),
		Y: sat32(int64(v.Y) + int64(o.Y)),
		Z: sat32(int64(v.Z) + int64(o.Z)),
	}
}

// Sub returns v-o with int32 saturation.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{
		X: sat32(int64(v.X) - int64(o.X)),
		Y: sat32(int64(v.Y) - int64(o.Y)),
		Z: sat32(int64(v.Z) - int64(o.Z)),
	}
}

// Min returns the componentwise minimum.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{X: min(v.X, o.X), Y: min(v.Y, o.Y), Z: min(v.Z, o.Z)}
}

// Max returns the componentwise maximum.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{X: max(v.X, o.X), Y: max(v.Y, o.Y), Z: max(v.Z, o.Z)}
}

// Get returns the component on the given axis.
func (v Vec3) Get(a Axis) int32 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// Box is an axis-aligned bounding box with Start <= End componentwise.
//
// Use NewBox or BoxFromSize to construct a normalized box. A Box literal with
// Start > End on some axis is invalid and rejected by the index.
type Box struct {
	Start Vec3
	End   Vec3
}

// NewBox returns the box spanned by two corners in any order.
func NewBox(a, b Vec3) Box {
	return Box{Start: a.Min(b), End: a.Max(b)}
}

// BoxFromSize returns the box starting at start and extending by size.
func BoxFromSize(start, size Vec3) Box {
	return NewBox(start, start.Add(size))
}

// Valid reports whether Start <= End on every axis.
func (b Box) Valid() bool {
	return b.Start.X <= b.End.X && b.Start.Y <= b.End.Y && b.Start.Z <= b.End.Z
}

// IsZero reports whether b is the zero box.
func (b Box) IsZero() bool {
	return b == Box{}
}

// Width is the extent along X.
func (b Box) Width() int64 { return int64(b.End.X) - int64(b.Start.X) }

// Height is the extent along Y.
func (b Box) Height() int64 { return int64(b.End.Y) - int64(b.Start.Y) }

// Depth is the extent along Z.
func (b Box) Depth() int64 { return int64(b.End.Z) - int64(b.Start.Z) }

// SurfaceArea returns 2*(w*h + w*d + h*d).
//
// The result is a float64 because the products of two int32 extents do not
// fit in an int64 for world-spanning boxes.
func (b Box) SurfaceArea() float64 {
	w, h, d := float64(b.Width()), float64(b.Height()), float64(b.Depth())
	return 2 * (w*h + w*d + h*d)
}

// Contains reports whether p lies inside b, bounds inclusive.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Start.X && p.X <= b.End.X &&
		p.Y >= b.Start.Y && p.Y <= b.End.Y &&
		p.Z >= b.Start.Z && p.Z <= b.End.Z
}

// ContainsBox reports whether o lies entirely inside b.
func (b Box) ContainsBox(o Box) bool {
	return b.Contains(o.Start) && b.Contains(o.End)
}

// Intersects reports whether b and o overlap or touch.
func (b Box) Intersects(o Box) bool {
	return b.Start.X <= o.End.X && b.End.X >= o.Start.X &&
		b.Start.Y <= o.End.Y && b.End.Y >= o.Start.Y &&
		b.Start.Z <= o.End.Z && b.End.Z >= o.Start.Z
}

// Union returns the smallest box containing both a and b.
func Union(a, b Box) Box {
	return Box{Start: a.Start.Min(b.Start), End: a.End.Max(b.End)}
}

// Centroid2 returns Start+End on the given axis, i.e. twice the centroid.
// It is an exact integer sort key.
func (b Box) Centroid2(a Axis) int64 {
	return int64(b.Start.Get(a)) + int64(b.End.Get(a))
}

// Expand grows every face of b outward by r. Coordinates saturate at the
// int32 range.
func (b Box) Expand(r int32) Box {
	d := Vec3{X: r, Y: r, Z: r}
	return Box{Start: b.Start.Sub(d), End: b.End.Add(d)}
}

// DistanceSquared returns the squared distance from p to the closest point of
// b, or zero when p is inside b. The sum saturates at math.MaxUint64.
func (b Box) DistanceSquared(p Vec3) uint64 {
	var sum uint64
	for a := AxisX; a <= AxisZ; a++ {
		d := axisGap(b.Start.Get(a), b.End.Get(a), p.Get(a))
		sum = addSat(sum, d*d)
	}
	return sum
}

func (b Box) String() string {
	return fmt.Sprintf("[%v-%v]", b.Start, b.End)
}

// axisGap is the distance from v to the closed interval [lo, hi], zero when
// v is inside. The result fits in 32 bits so its square fits in a uint64.
func axisGap(lo, hi, v int32) uint64 {
	switch {
	case v < lo:
		return uint64(int64(lo) - int64(v))
	case v > hi:
		return uint64(int64(v) - int64(hi))
	default:
		return 0
	}
}

func addSat(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxUint64
}

func sat32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
