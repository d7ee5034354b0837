// Package testutil provides testing utilities for voxbvh.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random voxel-like boxes and items,
// and brute-force oracles that compute exact query answers for comparison.
//
// # Random Items
//
//	rng := testutil.NewRNG(seed)
//	items := rng.Items(1000, 512, 8) // 1000 items in a 512³ world, extents up to 8
//
// # Ground Truth
//
//	want := testutil.ExactQuery(items, box)
//	best, ok := testutil.ExactClosest(items, point, limit)
package testutil
