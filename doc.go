// Package voxbvh provides a thread-safe dynamic bounding volume hierarchy
// over integer axis-aligned boxes, for use as a broad-phase spatial index in
// voxel and block-based worlds.
//
// Any comparable type with a BoundingBox method can be indexed; pointers are
// the usual choice, since items are identified with ==.
//
// # Quick Start
//
//	type Block struct {
//	    Name string
//	    Box  geom.Box
//	}
//
//	func (b *Block) BoundingBox() geom.Box { return b.Box }
//
//	ix := voxbvh.New[*Block]()
//	defer ix.Close()
//
//	_ = ix.Insert(&Block{Name: "stone", Box: geom.NewBox(geom.V3(0, 0, 0), geom.V3(1, 1, 1))})
//	hits, _ := ix.QueryPoint(geom.V3(1, 1, 1))
//
// # Building and Rebalancing
//
// Build and NewFromItems construct the tree top-down with the Surface Area
// Heuristic. Insert descends by minimum surface-area enlargement, which is
// fast but degrades the tree over time. After a configurable number of
// mutations (WithRebalanceThreshold) the index rebuilds itself on a
// background goroutine; Rebalance does the same synchronously.
//
// # Queries
//
//   - Query: items intersecting a box (touching counts)
//   - QueryPoint, IteratePoint: items containing a point
//   - QueryRadius: items within a Euclidean distance of a point
//   - FindClosest, FindClosestWithin: nearest item by box distance
//   - Contains, Count, Bounds, All
//
// # Moving Items
//
// The index caches each item's box in the tree. Change boxes through Move,
// which re-indexes atomically, or call Update right after changing the box.
// Validate detects items whose box changed behind the index's back.
//
// # Concurrency
//
// All methods are safe for concurrent use. Readers share a read lock and
// writers are exclusive. Iterators returned by All and IteratePoint hold the
// read lock until the loop ends; do not call the index from the loop body.
//
// # Observability
//
// WithLogger attaches a slog-based Logger and WithMetricsCollector attaches a
// MetricsCollector. BasicMetricsCollector keeps in-memory counters and the
// promcollector package exports to Prometheus.
package voxbvh
