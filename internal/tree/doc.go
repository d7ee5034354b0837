// Package tree implements the node model and algorithms of a bounding volume
// hierarchy over axis-aligned integer boxes.
//
// # Model
//
// A Node is either a leaf holding 1..LeafCapacity items or an internal node
// exclusively owning two children. Every node caches the union box of its
// subtree. Nodes are immutable once built: Insert and Remove return a new
// root that shares every untouched subtree with the old one and replaces the
// nodes along the modified path. A published root is therefore always a
// consistent snapshot.
//
// # Construction
//
// Build partitions items top-down using the Surface Area Heuristic over all
// three axes. Insert descends by minimum surface-area enlargement and rebuilds
// overflowing leaves with Build.
//
// # Queries
//
// Range, point and radius queries are recursive descents pruned by the cached
// boxes. FindClosest is a best-first branch-and-bound search that visits the
// nearer child first and skips subtrees that cannot beat the current best.
//
// The package performs no locking. Callers serialize writers and publish new
// roots; see the voxbvh package.
package tree
