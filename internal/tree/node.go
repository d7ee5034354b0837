package tree

import (
	"github.com/hupe1980/voxbvh/geom"
)

const (
	// DefaultLeafCapacity is the default maximum number of items per leaf.
	DefaultLeafCapacity = 8

	// MinLeafCapacity and MaxLeafCapacity bound Config.LeafCapacity.
	MinLeafCapacity = 2
	MaxLeafCapacity = 64

	// DefaultParallelBuildThreshold is the partition size from which the two
	// halves of a build are constructed concurrently.
	DefaultParallelBuildThreshold = 4096
)

// Item is anything exposing an axis-aligned bounding box. Identity is ==,
// so pointer types give reference identity.
type Item interface {
	comparable
	BoundingBox() geom.Box
}

// Config holds the structural parameters of a tree.
type Config struct {
	// LeafCapacity is the maximum number of items per leaf.
	LeafCapacity int

	// ParallelBuildThreshold is the minimum partition size built with two
	// goroutines. Zero disables parallel builds.
	ParallelBuildThreshold int
}

// DefaultConfig is the configuration used when none is given.
var DefaultConfig = Config{
	LeafCapacity:           DefaultLeafCapacity,
	ParallelBuildThreshold: DefaultParallelBuildThreshold,
}

// Normalize returns c with out-of-range values replaced by defaults.
func (c Config) Normalize() Config {
	if c.LeafCapacity < MinLeafCapacity || c.LeafCapacity > MaxLeafCapacity {
		c.LeafCapacity = DefaultLeafCapacity
	}
	if c.ParallelBuildThreshold < 0 {
		c.ParallelBuildThreshold = 0
	}
	return c
}

// Node is a tree node. A leaf has items and no children; an internal node has
// exactly two children and no items.
type Node[T Item] struct {
	box   geom.Box
	left  *Node[T]
	right *Node[T]
	items []T
}

// newLeaf takes ownership of items.
func newLeaf[T Item](items []T) *Node[T] {
	if len(items) == 0 {
		panic("tree: leaf built from zero items")
	}
	box := items[0].BoundingBox()
	for _, it := range items[1:] {
		box = geom.Union(box, it.BoundingBox())
	}
	return &Node[T]{box: box, items: items}
}

func newInternal[T Item](left, right *Node[T]) *Node[T] {
	if left == nil || right == nil {
		panic("tree: internal node with missing child")
	}
	return &Node[T]{
		box:   geom.Union(left.box, right.box),
		left:  left,
		right: right,
	}
}

// Box returns the cached union box of the subtree.
func (n *Node[T]) Box() geom.Box { return n.box }

// IsLeaf reports whether n is a leaf.
func (n *Node[T]) IsLeaf() bool { return n.left == nil }

// Left returns the left child of an internal node, nil for leaves.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the right child of an internal node, nil for leaves.
func (n *Node[T]) Right() *Node[T] { return n.right }

// Items returns the items of a leaf. The slice must not be modified.
func (n *Node[T]) Items() []T { return n.items }
