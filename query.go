package voxbvh

import (
	"iter"
	"math"
	"time"

	"github.com/hupe1980/voxbvh/geom"
	"github.com/hupe1980/voxbvh/internal/tree"
)

// Query returns all items whose box intersects box. Boxes that only touch
// on a face, edge or corner intersect. The order of results is unspecified.
func (ix *Index[T]) Query(box geom.Box) ([]T, error) {
	start := time.Now()
	res, err := ix.query(box)
	ix.metrics.RecordQuery(QueryBox, len(res), time.Since(start), err)
	return res, err
}

func (ix *Index[T]) query(box geom.Box) ([]T, error) {
	if !box.Valid() {
		return nil, invalidArgument("query box %v has Start > End", box)
	}
	if err := ix.rlock(); err != nil {
		return nil, err
	}
	defer ix.mu.RUnlock()

	return tree.Query(ix.root, box, nil), nil
}

// QueryPoint returns all items whose box contains p, boundaries included.
func (ix *Index[T]) QueryPoint(p geom.Vec3) ([]T, error) {
	start := time.Now()
	res, err := ix.queryPoint(p)
	ix.metrics.RecordQuery(QueryPoint, len(res), time.Since(start), err)
	return res, err
}

func (ix *Index[T]) queryPoint(p geom.Vec3) ([]T, error) {
	if err := ix.rlock(); err != nil {
		return nil, err
	}
	defer ix.mu.RUnlock()

	return tree.QueryPoint(ix.root, p, nil), nil
}

// QueryRadius returns all items whose box lies within Euclidean distance
// radius of center. The distance to a box is the distance to its nearest
// point, so items containing center are always included.
func (ix *Index[T]) QueryRadius(center geom.Vec3, radius int32) ([]T, error) {
	start := time.Now()
	res, err := ix.queryRadius(center, radius)
	ix.metrics.RecordQuery(QueryRadius, len(res), time.Since(start), err)
	return res, err
}

func (ix *Index[T]) queryRadius(center geom.Vec3, radius int32) ([]T, error) {
	if radius < 0 {
		return nil, invalidArgument("negative radius %d", radius)
	}
	if err := ix.rlock(); err != nil {
		return nil, err
	}
	defer ix.mu.RUnlock()

	return tree.QueryRadius(ix.root, center, radius, nil), nil
}

// FindClosest returns the item whose box is nearest to p. The boolean is
// false when the index is empty. Among items at equal distance one is chosen
// arbitrarily.
func (ix *Index[T]) FindClosest(p geom.Vec3) (T, bool, error) {
	return ix.FindClosestWithin(p, math.Inf(1))
}

// FindClosestWithin is like FindClosest but ignores items farther than
// maxDistance. An item exactly at maxDistance is found. maxDistance may be
// +Inf; a negative or NaN value is rejected.
func (ix *Index[T]) FindClosestWithin(p geom.Vec3, maxDistance float64) (T, bool, error) {
	start := time.Now()
	res, err := ix.findClosest(p, maxDistance)
	n := 0
	if res.Found {
		n = 1
	}
	ix.metrics.RecordQuery(QueryClosest, n, time.Since(start), err)
	return res.Item, res.Found, err
}

func (ix *Index[T]) findClosest(p geom.Vec3, maxDistance float64) (tree.Nearest[T], error) {
	if math.IsNaN(maxDistance) || maxDistance < 0 {
		return tree.Nearest[T]{}, invalidArgument("max distance %v must be >= 0", maxDistance)
	}
	if err := ix.rlock(); err != nil {
		return tree.Nearest[T]{}, err
	}
	defer ix.mu.RUnlock()

	return tree.FindClosest(ix.root, p, distanceLimit(maxDistance)), nil
}

// distanceLimit converts a maximum distance to the inclusive bound on
// integer squared distances it admits.
func distanceLimit(d float64) uint64 {
	sq := d * d
	if math.IsInf(sq, 1) || sq >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(sq)
}

// Contains reports whether item is stored in the index. Like Remove, the
// search is guided by the item's current box.
func (ix *Index[T]) Contains(item T) (bool, error) {
	start := time.Now()
	ok, err := ix.contains(item)
	n := 0
	if ok {
		n = 1
	}
	ix.metrics.RecordQuery(QueryContains, n, time.Since(start), err)
	return ok, err
}

func (ix *Index[T]) contains(item T) (bool, error) {
	if err := validateItem(item); err != nil {
		return false, err
	}
	if err := ix.rlock(); err != nil {
		return false, err
	}
	defer ix.mu.RUnlock()

	return tree.Contains(ix.root, item), nil
}

// Count returns the number of stored entries.
func (ix *Index[T]) Count() (int, error) {
	if err := ix.rlock(); err != nil {
		return 0, err
	}
	defer ix.mu.RUnlock()

	return ix.count, nil
}

// Bounds returns the box enclosing all items, or the zero Box when the index
// is empty.
func (ix *Index[T]) Bounds() (geom.Box, error) {
	if err := ix.rlock(); err != nil {
		return geom.Box{}, err
	}
	defer ix.mu.RUnlock()

	if ix.root == nil {
		return geom.Box{}, nil
	}
	return ix.root.Box(), nil
}

// AutoRebalance reports whether automatic rebalancing is enabled.
func (ix *Index[T]) AutoRebalance() (bool, error) {
	if err := ix.rlock(); err != nil {
		return false, err
	}
	defer ix.mu.RUnlock()

	return ix.autoRebalance, nil
}

// Stats describes the shape of the tree.
type Stats struct {
	Items             int     // stored entries
	Nodes             int     // internal nodes and leaves
	Leaves            int     // leaf nodes
	Height            int     // levels, 0 for an empty index
	AvgLeafFill       float64 // average entries per leaf
	OpsSinceRebalance int     // mutations since the last build or rebalance
	AutoRebalance     bool
	Bounds            geom.Box
}

// Stats walks the tree and returns its shape. It holds the read lock for the
// duration of the walk.
func (ix *Index[T]) Stats() (Stats, error) {
	if err := ix.rlock(); err != nil {
		return Stats{}, err
	}
	defer ix.mu.RUnlock()

	ts := tree.Collect(ix.root)
	s := Stats{
		Items:             ts.Items,
		Nodes:             ts.Nodes,
		Leaves:            ts.Leaves,
		Height:            ts.Height,
		AvgLeafFill:       ts.AvgFill,
		OpsSinceRebalance: ix.opsSinceRebalance,
		AutoRebalance:     ix.autoRebalance,
	}
	if ix.root != nil {
		s.Bounds = ix.root.Box()
	}
	return s, nil
}

// Validate checks the structural invariants of the tree and the stored
// count. A violation is reported as an *InvariantError matching ErrCorrupt.
// The most common cause is an item whose box was changed without Update.
func (ix *Index[T]) Validate() error {
	if err := ix.rlock(); err != nil {
		return err
	}
	defer ix.mu.RUnlock()

	n, err := tree.Validate(ix.root, ix.cfg)
	if err != nil {
		return translateError(err)
	}
	if n != ix.count {
		return &InvariantError{Reason: CountMismatchReason}
	}
	return nil
}

// All returns an iterator over every stored entry in tree order.
//
// The read lock is held until the loop ends, so writers block for the whole
// iteration. The loop body must not call any method of the index: a
// second read lock can deadlock against a waiting writer. A closed index
// yields a single ErrClosed.
func (ix *Index[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if err := ix.rlock(); err != nil {
			var zero T
			yield(zero, err)
			return
		}
		defer ix.mu.RUnlock()

		tree.All(ix.root, func(it T) bool { return yield(it, nil) })
	}
}

// IteratePoint returns an iterator over the items containing p. It has the
// same locking rules as All and yields the same items as QueryPoint without
// allocating a result slice.
func (ix *Index[T]) IteratePoint(p geom.Vec3) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if err := ix.rlock(); err != nil {
			var zero T
			yield(zero, err)
			return
		}
		defer ix.mu.RUnlock()

		tree.Point(ix.root, p, func(it T) bool { return yield(it, nil) })
	}
}
