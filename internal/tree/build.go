package tree

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"github.com/hupe1980/voxbvh/geom"
)

const (
	// traversalCost and intersectionCost are the SAH constants.
	traversalCost    = 1.0
	intersectionCost = 1.0
)

// entry pairs an item with its box so the build reads each box once.
type entry[T Item] struct {
	item T
	box  geom.Box
}

// Build constructs a tree over items with the Surface Area Heuristic.
// It returns nil for an empty input. items is not modified.
func Build[T Item](items []T, cfg Config) *Node[T] {
	if len(items) == 0 {
		return nil
	}
	cfg = cfg.Normalize()

	entries := make([]entry[T], len(items))
	for i, it := range items {
		entries[i] = entry[T]{item: it, box: it.BoundingBox()}
	}

	b := builder[T]{cfg: cfg}
	return b.build(entries)
}

type builder[T Item] struct {
	cfg Config
}

func (b *builder[T]) build(entries []entry[T]) *Node[T] {
	n := len(entries)
	if n <= b.cfg.LeafCapacity {
		return b.leaf(entries)
	}

	split := b.partition(entries)

	left, right := entries[:split], entries[split:]
	if b.cfg.ParallelBuildThreshold > 0 && n >= b.cfg.ParallelBuildThreshold {
		var ln *Node[T]
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			ln = b.build(left)
		}()
		rn := b.build(right)
		wg.Wait()
		return newInternal(ln, rn)
	}

	return newInternal(b.build(left), b.build(right))
}

func (b *builder[T]) leaf(entries []entry[T]) *Node[T] {
	if len(entries) == 0 {
		panic("tree: leaf built from zero items")
	}
	items := make([]T, len(entries))
	box := entries[0].box
	for i, e := range entries {
		items[i] = e.item
		box = geom.Union(box, e.box)
	}
	return &Node[T]{box: box, items: items}
}

// partition sorts entries along the best SAH axis and returns the split
// position in [1, n-1]. Among splits of equal cost the one closest to n/2
// wins, so identical or nested boxes still yield a balanced tree.
func (b *builder[T]) partition(entries []entry[T]) int {
	n := len(entries)

	parent := entries[0].box
	for _, e := range entries[1:] {
		parent = geom.Union(parent, e.box)
	}
	parentArea := parent.SurfaceArea()

	// suffix[i] is the union of entries[i:].
	suffix := make([]geom.Box, n)

	bestAxis, bestSplit, bestCost := geom.AxisX, n/2, math.Inf(1)
	for axis := geom.AxisX; axis <= geom.AxisZ; axis++ {
		sortByCentroid(entries, axis)

		suffix[n-1] = entries[n-1].box
		for i := n - 2; i >= 0; i-- {
			suffix[i] = geom.Union(entries[i].box, suffix[i+1])
		}

		leftBox := entries[0].box
		for i := 1; i < n; i++ {
			leftBox = geom.Union(leftBox, entries[i-1].box)
			c := splitCost(leftBox, suffix[i], parentArea, i, n)
			if c < bestCost || (c == bestCost && distToMid(i, n) < distToMid(bestSplit, n)) {
				bestAxis, bestSplit, bestCost = axis, i, c
			}
		}
	}

	bestSplit = min(max(bestSplit, 1), n-1)
	if bestAxis != geom.AxisZ {
		sortByCentroid(entries, bestAxis)
	}
	return bestSplit
}

// splitCost evaluates the SAH cost of splitting n items after the first i.
// A degenerate parent with zero area has no meaningful area ratio, so the
// ratios fall back to the item-count share of each side.
func splitCost(left, right geom.Box, parentArea float64, i, n int) float64 {
	var lr, rr float64
	if parentArea > 0 {
		lr = left.SurfaceArea() / parentArea
		rr = right.SurfaceArea() / parentArea
	} else {
		lr = float64(i) / float64(n)
		rr = float64(n-i) / float64(n)
	}
	return traversalCost + intersectionCost*(lr*float64(i)+rr*float64(n-i))
}

func distToMid(i, n int) int {
	d := i - n/2
	if d < 0 {
		return -d
	}
	return d
}

// sortByCentroid orders entries by centroid on axis. Ties are broken by the
// full box, so entries that compare equal have identical boxes and the order
// is reproducible whatever order the entries arrive in.
func sortByCentroid[T Item](entries []entry[T], axis geom.Axis) {
	slices.SortStableFunc(entries, func(a, b entry[T]) int {
		return cmp.Or(
			cmp.Compare(a.box.Centroid2(axis), b.box.Centroid2(axis)),
			compareBox(a.box, b.box),
		)
	})
}

func compareBox(a, b geom.Box) int {
	return cmp.Or(
		cmp.Compare(a.Start.X, b.Start.X),
		cmp.Compare(a.Start.Y, b.Start.Y),
		cmp.Compare(a.Start.Z, b.Start.Z),
		cmp.Compare(a.End.X, b.End.X),
		cmp.Compare(a.End.Y, b.End.Y),
		cmp.Compare(a.End.Z, b.End.Z),
	)
}
