package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FromMgl converts a render-space position to the voxel that contains it.
func FromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{
		X: floor32(v.X()),
		Y: floor32(v.Y()),
		Z: floor32(v.Z()),
	}
}

// Mgl converts v to a render-space vector.
func (v Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// BoxFromMgl returns the smallest integer box covering the float box spanned
// by the two corners.
func BoxFromMgl(a, b mgl32.Vec3) Box {
	lo := mgl32.Vec3{min(a.X(), b.X()), min(a.Y(), b.Y()), min(a.Z(), b.Z())}
	hi := mgl32.Vec3{max(a.X(), b.X()), max(a.Y(), b.Y()), max(a.Z(), b.Z())}
	return Box{
		Start: FromMgl(lo),
		End:   Vec3{X: ceil32(hi.X()), Y: ceil32(hi.Y()), Z: ceil32(hi.Z())},
	}
}

// Center returns the geometric center of b in render space.
func (b Box) Center() mgl32.Vec3 {
	return b.Start.Mgl().Add(b.End.Mgl()).Mul(0.5)
}

func floor32(f float32) int32 {
	return sat32f(math.Floor(float64(f)))
}

func ceil32(f float32) int32 {
	return sat32f(math.Ceil(float64(f)))
}

func sat32f(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(f)
	}
}
