package tree

import (
	"github.com/hupe1980/voxbvh/geom"
)

// Query appends to dst every item whose box intersects q.
func Query[T Item](root *Node[T], q geom.Box, dst []T) []T {
	if root == nil {
		return dst
	}
	return query(root, q, dst)
}

func query[T Item](n *Node[T], q geom.Box, dst []T) []T {
	if !n.box.Intersects(q) {
		return dst
	}
	if n.IsLeaf() {
		for _, it := range n.items {
			if it.BoundingBox().Intersects(q) {
				dst = append(dst, it)
			}
		}
		return dst
	}
	dst = query(n.left, q, dst)
	return query(n.right, q, dst)
}

// QueryPoint appends to dst every item whose box contains p.
func QueryPoint[T Item](root *Node[T], p geom.Vec3, dst []T) []T {
	if root == nil {
		return dst
	}
	return queryPoint(root, p, dst)
}

func queryPoint[T Item](n *Node[T], p geom.Vec3, dst []T) []T {
	if !n.box.Contains(p) {
		return dst
	}
	if n.IsLeaf() {
		for _, it := range n.items {
			if it.BoundingBox().Contains(p) {
				dst = append(dst, it)
			}
		}
		return dst
	}
	dst = queryPoint(n.left, p, dst)
	return queryPoint(n.right, p, dst)
}

// QueryRadius appends to dst every item whose box lies within radius of
// center. Candidates come from a box query over the radius cube and are then
// filtered by squared distance.
func QueryRadius[T Item](root *Node[T], center geom.Vec3, radius int32, dst []T) []T {
	if root == nil {
		return dst
	}
	start := len(dst)
	cube := geom.Box{Start: center, End: center}.Expand(radius)
	dst = query(root, cube, dst)

	r2 := uint64(radius) * uint64(radius)
	kept := dst[:start]
	for _, it := range dst[start:] {
		if it.BoundingBox().DistanceSquared(center) <= r2 {
			kept = append(kept, it)
		}
	}
	clear(dst[len(kept):])
	return kept
}

// Contains reports whether an entry equal to item is reachable, searching
// only subtrees that intersect the item's current box.
func Contains[T Item](root *Node[T], item T) bool {
	if root == nil {
		return false
	}
	return contains(root, item, item.BoundingBox())
}

func contains[T Item](n *Node[T], item T, box geom.Box) bool {
	if !n.box.Intersects(box) {
		return false
	}
	if n.IsLeaf() {
		for _, it := range n.items {
			if it == item {
				return true
			}
		}
		return false
	}
	return contains(n.left, item, box) || contains(n.right, item, box)
}

// All calls yield for every item in pre-order until yield returns false.
// It reports whether the walk ran to completion.
func All[T Item](root *Node[T], yield func(T) bool) bool {
	if root == nil {
		return true
	}
	if root.IsLeaf() {
		for _, it := range root.items {
			if !yield(it) {
				return false
			}
		}
		return true
	}
	return All(root.left, yield) && All(root.right, yield)
}

// Point calls yield for every item whose box contains p until yield returns
// false. It reports whether the walk ran to completion.
func Point[T Item](root *Node[T], p geom.Vec3, yield func(T) bool) bool {
	if root == nil || !root.box.Contains(p) {
		return true
	}
	if root.IsLeaf() {
		for _, it := range root.items {
			if it.BoundingBox().Contains(p) && !yield(it) {
				return false
			}
		}
		return true
	}
	return Point(root.left, p, yield) && Point(root.right, p, yield)
}

// Flatten returns every item in pre-order.
func Flatten[T Item](root *Node[T]) []T {
	var out []T
	All(root, func(it T) bool {
		out = append(out, it)
		return true
	})
	return out
}
