package testutil

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/voxbvh/geom"
)

// Item is a minimal indexable value. Box may be changed by tests to simulate
// moving entities; the index must then be told via Update.
type Item struct {
	ID  int
	Box geom.Box
}

// BoundingBox implements the index item capability.
func (i *Item) BoundingBox() geom.Box { return i.Box }

func (i *Item) String() string {
	return fmt.Sprintf("#%d%v", i.ID, i.Box)
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Point returns a random point with every coordinate in [-world/2, world/2).
func (r *RNG) Point(world int32) geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointLocked(world)
}

func (r *RNG) pointLocked(world int32) geom.Vec3 {
	half := world / 2
	return geom.Vec3{
		X: r.rand.Int31n(world) - half,
		Y: r.rand.Int31n(world) - half,
		Z: r.rand.Int31n(world) - half,
	}
}

// Box returns a random box inside the world with extents in [0, maxExtent].
func (r *RNG) Box(world, maxExtent int32) geom.Box {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.boxLocked(world, maxExtent)
}

func (r *RNG) boxLocked(world, maxExtent int32) geom.Box {
	start := r.pointLocked(world)
	size := geom.Vec3{
		X: r.rand.Int31n(maxExtent + 1),
		Y: r.rand.Int31n(maxExtent + 1),
		Z: r.rand.Int31n(maxExtent + 1),
	}
	return geom.BoxFromSize(start, size)
}

// Items generates n items with IDs 0..n-1 and random boxes.
func (r *RNG) Items(n int, world, maxExtent int32) []*Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]*Item, n)
	for i := range n {
		items[i] = &Item{ID: i, Box: r.boxLocked(world, maxExtent)}
	}
	return items
}

// ClusteredItems generates n items grouped around the given number of random
// cluster centers, like blocks around a few points of interest.
func (r *RNG) ClusteredItems(n, clusters int, world, spread, maxExtent int32) []*Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]geom.Vec3, clusters)
	for i := range centers {
		centers[i] = r.pointLocked(world)
	}

	items := make([]*Item, n)
	for i := range n {
		offset := r.pointLocked(spread)
		size := geom.Vec3{
			X: r.rand.Int31n(maxExtent + 1),
			Y: r.rand.Int31n(maxExtent + 1),
			Z: r.rand.Int31n(maxExtent + 1),
		}
		items[i] = &Item{ID: i, Box: geom.BoxFromSize(centers[i%clusters].Add(offset), size)}
	}
	return items
}

// ExactQuery returns the items whose box intersects q, sorted by ID.
func ExactQuery(items []*Item, q geom.Box) []*Item {
	var out []*Item
	for _, it := range items {
		if it.Box.Intersects(q) {
			out = append(out, it)
		}
	}
	return SortByID(out)
}

// ExactPoint returns the items whose box contains p, sorted by ID.
func ExactPoint(items []*Item, p geom.Vec3) []*Item {
	var out []*Item
	for _, it := range items {
		if it.Box.Contains(p) {
			out = append(out, it)
		}
	}
	return SortByID(out)
}

// ExactRadius returns the items within radius of center, sorted by ID.
func ExactRadius(items []*Item, center geom.Vec3, radius int32) []*Item {
	r2 := uint64(radius) * uint64(radius)
	var out []*Item
	for _, it := range items {
		if it.Box.DistanceSquared(center) <= r2 {
			out = append(out, it)
		}
	}
	return SortByID(out)
}

// ExactClosest returns the smallest squared distance from p to any item box
// not exceeding limit, and whether such an item exists. Several items may be
// tied at that distance.
func ExactClosest(items []*Item, p geom.Vec3, limit uint64) (uint64, bool) {
	var best uint64
	found := false
	for _, it := range items {
		d := it.Box.DistanceSquared(p)
		if d > limit {
			continue
		}
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}

// SortByID sorts items in place by ID and returns them.
func SortByID(items []*Item) []*Item {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
