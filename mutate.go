package voxbvh

import (
	"time"

	"github.com/hupe1980/voxbvh/internal/tree"
)

// Build replaces the contents of the index with items using a bulk Surface
// Area Heuristic build. items is not modified. The same item listed twice is
// stored twice.
func (ix *Index[T]) Build(items []T) error {
	start := time.Now()
	if err := validateItems(items); err != nil {
		ix.metrics.RecordInsert(0, time.Since(start), err)
		return err
	}
	if err := ix.lock(); err != nil {
		ix.metrics.RecordInsert(0, time.Since(start), err)
		return err
	}

	ix.root = tree.Build(items, ix.cfg)
	ix.count = len(items)
	ix.opsSinceRebalance = 0
	size := ix.count
	ix.mu.Unlock()

	d := time.Since(start)
	ix.logger.LogBuild(size, d)
	ix.metrics.RecordInsert(size, d, nil)
	ix.metrics.RecordSize(size)
	return nil
}

// Insert adds item to the index. Insert does not check for an existing entry
// of the same item; use InsertRange or Contains for that.
func (ix *Index[T]) Insert(item T) error {
	start := time.Now()
	if err := validateItem(item); err != nil {
		ix.metrics.RecordInsert(0, time.Since(start), err)
		return err
	}
	if err := ix.lock(); err != nil {
		ix.metrics.RecordInsert(0, time.Since(start), err)
		return err
	}

	ix.root = tree.Insert(ix.root, item, ix.cfg)
	ix.count++
	size := ix.count
	ix.noteMutationsLocked(1)
	ix.mu.Unlock()

	ix.metrics.RecordInsert(1, time.Since(start), nil)
	ix.metrics.RecordSize(size)
	return nil
}

// InsertRange adds every item not already present. Items repeated within
// items are added once. An empty index is bulk-built; otherwise items are
// inserted one by one.
func (ix *Index[T]) InsertRange(items []T) error {
	start := time.Now()
	if err := validateItems(items); err != nil {
		ix.metrics.RecordInsert(0, time.Since(start), err)
		return err
	}
	if err := ix.lock(); err != nil {
		ix.metrics.RecordInsert(0, time.Since(start), err)
		return err
	}

	seen := make(map[T]struct{}, len(items))
	fresh := make([]T, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		if tree.Contains(ix.root, it) {
			continue
		}
		fresh = append(fresh, it)
	}

	if ix.root == nil {
		ix.root = tree.Build(fresh, ix.cfg)
	} else {
		for _, it := range fresh {
			ix.root = tree.Insert(ix.root, it, ix.cfg)
		}
	}
	ix.count += len(fresh)
	size := ix.count
	ix.noteMutationsLocked(len(fresh))
	ix.mu.Unlock()

	ix.metrics.RecordInsert(len(fresh), time.Since(start), nil)
	ix.metrics.RecordSize(size)
	return nil
}

// Remove deletes every entry of item and reports whether one was found.
//
// The search only visits subtrees whose box intersects the item's current
// box. If the box was changed since the item was inserted and no longer
// overlaps its old position, the entry is not found; use Move to change
// boxes safely.
func (ix *Index[T]) Remove(item T) (bool, error) {
	start := time.Now()
	if err := validateItem(item); err != nil {
		ix.metrics.RecordRemove(false, time.Since(start), err)
		return false, err
	}
	if err := ix.lock(); err != nil {
		ix.metrics.RecordRemove(false, time.Since(start), err)
		return false, err
	}

	root, n := tree.Remove(ix.root, item)
	if n > 0 {
		ix.root = root
		ix.count -= n
		ix.noteMutationsLocked(1)
	}
	size := ix.count
	ix.mu.Unlock()

	if n == 0 {
		ix.logger.LogRemoveMiss(item.BoundingBox())
	}
	ix.metrics.RecordRemove(n > 0, time.Since(start), nil)
	ix.metrics.RecordSize(size)
	return n > 0, nil
}

// Update re-indexes item after its box was changed by the caller. It removes
// and re-inserts the item under a single write lock acquisition.
//
// Removal locates the old entry through the item's new box, which only
// works while the new box still overlaps the subtree that held the old one.
// An item moved further away ends up indexed twice; prefer Move, which
// removes the entry before the box changes.
func (ix *Index[T]) Update(item T) error {
	start := time.Now()
	if err := validateItem(item); err != nil {
		ix.metrics.RecordUpdate(time.Since(start), err)
		return err
	}
	if err := ix.lock(); err != nil {
		ix.metrics.RecordUpdate(time.Since(start), err)
		return err
	}

	root, n := tree.Remove(ix.root, item)
	ix.root = tree.Insert(root, item, ix.cfg)
	ix.count += 1 - n
	size := ix.count
	ix.noteMutationsLocked(1)
	ix.mu.Unlock()

	if n == 0 {
		ix.logger.LogRemoveMiss(item.BoundingBox())
	}
	ix.metrics.RecordUpdate(time.Since(start), nil)
	ix.metrics.RecordSize(size)
	return nil
}

// Move changes an item's box and re-indexes it atomically. move is called
// with the write lock held, after the item's entry was located with its old
// box; it must only change the item and must not call into the index.
//
// If move leaves the item with an invalid box, the index is not changed and
// ErrInvalidArgument is returned. If move panics, the panic propagates with
// the index unchanged and unlocked.
func (ix *Index[T]) Move(item T, move func(T)) error {
	start := time.Now()
	if err := validateItem(item); err != nil {
		ix.metrics.RecordUpdate(time.Since(start), err)
		return err
	}
	if move == nil {
		err := invalidArgument("nil move function")
		ix.metrics.RecordUpdate(time.Since(start), err)
		return err
	}
	if err := ix.lock(); err != nil {
		ix.metrics.RecordUpdate(time.Since(start), err)
		return err
	}

	size, err := ix.moveLocked(item, move)
	if err != nil {
		ix.metrics.RecordUpdate(time.Since(start), err)
		return err
	}

	ix.metrics.RecordUpdate(time.Since(start), nil)
	ix.metrics.RecordSize(size)
	return nil
}

// moveLocked runs move and publishes the re-indexed tree. It releases mu on
// return, including when move panics; the root is only replaced after move
// returned and left a valid box.
func (ix *Index[T]) moveLocked(item T, move func(T)) (int, error) {
	defer ix.mu.Unlock()

	root, n := tree.Remove(ix.root, item)
	move(item)
	if b := item.BoundingBox(); !b.Valid() {
		return 0, invalidArgument("moved box %v has Start > End", b)
	}
	ix.root = tree.Insert(root, item, ix.cfg)
	ix.count += 1 - n
	ix.noteMutationsLocked(1)
	return ix.count, nil
}

// Clear removes all items.
func (ix *Index[T]) Clear() error {
	if err := ix.lock(); err != nil {
		return err
	}
	ix.root = nil
	ix.count = 0
	ix.opsSinceRebalance = 0
	ix.mu.Unlock()

	ix.metrics.RecordSize(0)
	return nil
}

// Rebalance rebuilds the whole tree with a bulk build. It blocks all readers
// and writers for its duration. Items whose boxes changed without Update are
// placed according to their current boxes.
func (ix *Index[T]) Rebalance() error {
	if err := ix.lock(); err != nil {
		return err
	}
	start := time.Now()
	items := ix.rebalanceLocked()
	ix.mu.Unlock()

	d := time.Since(start)
	ix.logger.LogRebalance(items, d, false)
	ix.metrics.RecordRebalance(items, d, false)
	return nil
}

// SetAutoRebalance enables or disables automatic background rebalancing.
// Enabling it with the mutation counter already past the threshold
// schedules a rebalance immediately.
func (ix *Index[T]) SetAutoRebalance(enabled bool) error {
	if err := ix.lock(); err != nil {
		return err
	}
	defer ix.mu.Unlock()

	ix.autoRebalance = enabled
	ix.noteMutationsLocked(0)
	return nil
}
