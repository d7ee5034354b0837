package tree

import (
	"github.com/hupe1980/voxbvh/geom"
)

// Insert returns a new root with item added. Nodes along the insertion path
// are replaced; root itself is not modified.
func Insert[T Item](root *Node[T], item T, cfg Config) *Node[T] {
	cfg = cfg.Normalize()
	box := item.BoundingBox()
	if root == nil {
		return newLeaf([]T{item})
	}
	return insert(root, item, box, cfg)
}

func insert[T Item](n *Node[T], item T, box geom.Box, cfg Config) *Node[T] {
	if n.IsLeaf() {
		items := make([]T, len(n.items), len(n.items)+1)
		copy(items, n.items)
		items = append(items, item)
		if len(items) <= cfg.LeafCapacity {
			return &Node[T]{box: geom.Union(n.box, box), items: items}
		}
		return Build(items, cfg)
	}

	if enlargement(n.left.box, box) <= enlargement(n.right.box, box) {
		return newInternal(insert(n.left, item, box, cfg), n.right)
	}
	return newInternal(n.left, insert(n.right, item, box, cfg))
}

// enlargement is the surface-area growth of existing when extended by added.
func enlargement(existing, added geom.Box) float64 {
	return geom.Union(existing, added).SurfaceArea() - existing.SurfaceArea()
}

// Remove returns a new root without any entry equal to item, and the number
// of entries removed. Subtrees whose box does not intersect the item's
// current box are not searched. The returned root is nil when the tree
// becomes empty, and is root itself when nothing was removed.
func Remove[T Item](root *Node[T], item T) (*Node[T], int) {
	if root == nil {
		return nil, 0
	}
	return remove(root, item, item.BoundingBox())
}

func remove[T Item](n *Node[T], item T, box geom.Box) (*Node[T], int) {
	if !n.box.Intersects(box) {
		return n, 0
	}

	if n.IsLeaf() {
		kept := make([]T, 0, len(n.items))
		for _, it := range n.items {
			if it != item {
				kept = append(kept, it)
			}
		}
		removed := len(n.items) - len(kept)
		switch {
		case removed == 0:
			return n, 0
		case len(kept) == 0:
			return nil, removed
		default:
			return newLeaf(kept), removed
		}
	}

	left, lr := remove(n.left, item, box)
	right, rr := remove(n.right, item, box)
	if lr+rr == 0 {
		return n, 0
	}

	switch {
	case left == nil && right == nil:
		return nil, lr + rr
	case left == nil:
		return right, lr + rr
	case right == nil:
		return left, lr + rr
	default:
		return newInternal(left, right), lr + rr
	}
}
