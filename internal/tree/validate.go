package tree

import (
	"fmt"

	"github.com/hupe1980/voxbvh/geom"
)

// ViolationError describes a broken structural invariant.
type ViolationError struct {
	Depth  int
	Box    geom.Box
	Reason string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("node %v at depth %d: %s", e.Box, e.Depth, e.Reason)
}

// Validate checks every node of the tree and returns the number of items.
//
// It verifies that cached boxes equal the union of their contents, that
// leaves are non-empty and within capacity, and that internal nodes have
// two children. An item whose box was changed without going through the
// index shows up as a leaf whose cached box no longer matches.
func Validate[T Item](root *Node[T], cfg Config) (int, error) {
	if root == nil {
		return 0, nil
	}
	cfg = cfg.Normalize()
	return validate(root, cfg, 0)
}

func validate[T Item](n *Node[T], cfg Config, depth int) (int, error) {
	if n.IsLeaf() {
		if n.right != nil {
			return 0, &ViolationError{Depth: depth, Box: n.box, Reason: "leaf with right child"}
		}
		if len(n.items) == 0 {
			return 0, &ViolationError{Depth: depth, Box: n.box, Reason: "empty leaf"}
		}
		if len(n.items) > cfg.LeafCapacity {
			return 0, &ViolationError{
				Depth:  depth,
				Box:    n.box,
				Reason: fmt.Sprintf("leaf holds %d items, capacity %d", len(n.items), cfg.LeafCapacity),
			}
		}
		box := n.items[0].BoundingBox()
		for _, it := range n.items[1:] {
			box = geom.Union(box, it.BoundingBox())
		}
		if box != n.box {
			return 0, &ViolationError{
				Depth:  depth,
				Box:    n.box,
				Reason: fmt.Sprintf("stale leaf box, items span %v", box),
			}
		}
		return len(n.items), nil
	}

	if n.right == nil {
		return 0, &ViolationError{Depth: depth, Box: n.box, Reason: "internal node with one child"}
	}
	if len(n.items) != 0 {
		return 0, &ViolationError{Depth: depth, Box: n.box, Reason: "internal node with items"}
	}
	if want := geom.Union(n.left.box, n.right.box); want != n.box {
		return 0, &ViolationError{
			Depth:  depth,
			Box:    n.box,
			Reason: fmt.Sprintf("stale internal box, children span %v", want),
		}
	}

	lc, err := validate(n.left, cfg, depth+1)
	if err != nil {
		return 0, err
	}
	rc, err := validate(n.right, cfg, depth+1)
	if err != nil {
		return 0, err
	}
	return lc + rc, nil
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes    int
	Leaves   int
	Items    int
	Height   int
	AvgFill  float64 // average items per leaf
	MaxDepth int     // depth of the deepest leaf, root is 0
}

// Collect walks the tree and returns its Stats.
func Collect[T Item](root *Node[T]) Stats {
	var s Stats
	if root == nil {
		return s
	}
	collect(root, 0, &s)
	s.Height = s.MaxDepth + 1
	if s.Leaves > 0 {
		s.AvgFill = float64(s.Items) / float64(s.Leaves)
	}
	return s
}

func collect[T Item](n *Node[T], depth int, s *Stats) {
	s.Nodes++
	if n.IsLeaf() {
		s.Leaves++
		s.Items += len(n.items)
		s.MaxDepth = max(s.MaxDepth, depth)
		return
	}
	collect(n.left, depth+1, s)
	collect(n.right, depth+1, s)
}
