package voxbvh

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/voxbvh/geom"
	"github.com/hupe1980/voxbvh/internal/resource"
	"github.com/hupe1980/voxbvh/internal/tree"
)

// Item is the capability required of indexed values: an axis-aligned
// bounding box. Items are compared with ==, so use pointer types to get
// reference identity; two distinct pointers with equal boxes are distinct
// entries. The zero value (nil) is rejected.
//
// The index never modifies items. A caller that changes an item's box must
// tell the index through Update or Move.
type Item interface {
	comparable
	BoundingBox() geom.Box
}

// Index is a thread-safe dynamic bounding volume hierarchy.
//
// Reads (queries, Contains, Count, Bounds, iteration) share a read lock;
// writes (Build, Insert, InsertRange, Remove, Update, Move, Rebalance, Clear)
// hold the write lock for their whole duration. Writers build new nodes along
// the modified path and publish them by replacing the root, so a reader
// always sees one consistent tree.
type Index[T Item] struct {
	mu                sync.RWMutex
	root              *tree.Node[T]
	count             int
	opsSinceRebalance int
	autoRebalance     bool
	closed            atomic.Bool // written under mu

	cfg     tree.Config
	opts    options
	logger  *Logger
	metrics MetricsCollector

	bg   *resource.Controller
	bgWG sync.WaitGroup
}

// New creates an empty index.
func New[T Item](optFns ...Option) *Index[T] {
	o := applyOptions(optFns)
	return &Index[T]{
		autoRebalance: o.autoRebalance,
		cfg:           o.treeConfig(),
		opts:          o,
		logger:        o.logger,
		metrics:       o.metricsCollector,
		bg: resource.NewController(resource.Config{
			MaxBackgroundWorkers: 1,
			MinInterval:          o.rebalanceInterval,
		}),
	}
}

// NewFromItems creates an index and bulk-loads items with Build.
func NewFromItems[T Item](items []T, optFns ...Option) (*Index[T], error) {
	ix := New[T](optFns...)
	if err := ix.Build(items); err != nil {
		return nil, err
	}
	return ix, nil
}

// lock acquires the write lock unless the index is closed.
func (ix *Index[T]) lock() error {
	if ix.closed.Load() {
		return ErrClosed
	}
	ix.mu.Lock()
	if ix.closed.Load() {
		ix.mu.Unlock()
		return ErrClosed
	}
	return nil
}

// rlock acquires the read lock unless the index is closed.
func (ix *Index[T]) rlock() error {
	if ix.closed.Load() {
		return ErrClosed
	}
	ix.mu.RLock()
	if ix.closed.Load() {
		ix.mu.RUnlock()
		return ErrClosed
	}
	return nil
}

func isNil[T Item](item T) bool {
	var zero T
	return item == zero
}

func validateItem[T Item](item T) error {
	if isNil(item) {
		return invalidArgument("nil item")
	}
	if b := item.BoundingBox(); !b.Valid() {
		return invalidArgument("item box %v has Start > End", b)
	}
	return nil
}

func validateItems[T Item](items []T) error {
	if items == nil {
		return invalidArgument("nil collection")
	}
	for i, it := range items {
		if err := validateItem(it); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// noteMutationsLocked advances the rebalance counter and dispatches a
// background rebalance once the threshold is reached. Caller holds mu.
func (ix *Index[T]) noteMutationsLocked(n int) {
	ix.opsSinceRebalance += n
	if !ix.autoRebalance || ix.opsSinceRebalance < ix.opts.rebalanceThreshold {
		return
	}
	if !ix.bg.TryStart() {
		ix.logger.LogRebalanceSkipped(ix.opsSinceRebalance, "rebalance pending or interval not elapsed")
		return
	}

	ix.bgWG.Add(1)
	go ix.backgroundRebalance()
}

// backgroundRebalance runs as its own goroutine and competes for the write
// lock like any other writer.
func (ix *Index[T]) backgroundRebalance() {
	defer ix.bgWG.Done()
	defer ix.bg.ReleaseBackground()

	ix.mu.Lock()
	if ix.closed.Load() || !ix.autoRebalance || ix.opsSinceRebalance < ix.opts.rebalanceThreshold {
		ix.mu.Unlock()
		return
	}
	start := time.Now()
	items := ix.rebalanceLocked()
	ix.mu.Unlock()

	d := time.Since(start)
	ix.logger.LogRebalance(items, d, true)
	ix.metrics.RecordRebalance(items, d, true)
}

// rebalanceLocked rebuilds the whole tree from its items. Caller holds mu.
func (ix *Index[T]) rebalanceLocked() int {
	items := tree.Flatten(ix.root)
	ix.root = tree.Build(items, ix.cfg)
	ix.opsSinceRebalance = 0
	return len(items)
}
