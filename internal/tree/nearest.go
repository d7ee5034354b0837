package tree

import (
	"github.com/hupe1980/voxbvh/geom"
)

// Nearest is the result of a FindClosest search.
type Nearest[T Item] struct {
	Item T
	// DistanceSquared is the squared distance from the query point to the
	// item's box.
	DistanceSquared uint64
	Found           bool
}

// FindClosest returns the item whose box is closest to p among items within
// squared distance limit (inclusive).
//
// The search is best-first branch-and-bound: at each internal node the child
// with the smaller minimum distance is visited first, and a child is skipped
// once its minimum distance cannot beat the best item found so far.
func FindClosest[T Item](root *Node[T], p geom.Vec3, limit uint64) Nearest[T] {
	s := nearestSearch[T]{p: p, limit: limit}
	if root != nil && root.box.DistanceSquared(p) <= limit {
		s.visit(root)
	}
	return s.best
}

type nearestSearch[T Item] struct {
	p     geom.Vec3
	limit uint64
	best  Nearest[T]
}

// admits reports whether a candidate at squared distance d could improve the
// current result.
func (s *nearestSearch[T]) admits(d uint64) bool {
	if s.best.Found {
		return d < s.best.DistanceSquared
	}
	return d <= s.limit
}

func (s *nearestSearch[T]) visit(n *Node[T]) {
	if n.IsLeaf() {
		for _, it := range n.items {
			if d := it.BoundingBox().DistanceSquared(s.p); s.admits(d) {
				s.best = Nearest[T]{Item: it, DistanceSquared: d, Found: true}
			}
		}
		return
	}

	near, far := n.left, n.right
	dn, df := near.box.DistanceSquared(s.p), far.box.DistanceSquared(s.p)
	if df < dn {
		near, far = far, near
		dn, df = df, dn
	}

	if s.admits(dn) {
		s.visit(near)
	}
	if s.admits(df) {
		s.visit(far)
	}
}
