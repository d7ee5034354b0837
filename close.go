package voxbvh

// Close disposes of the index. It waits for a running background rebalance
// and releases the tree. Every later call, including Close, returns
// ErrClosed. Close blocks while an iteration holds the read lock.
func (ix *Index[T]) Close() error {
	if ix == nil {
		return nil
	}

	ix.mu.Lock()
	if ix.closed.Load() {
		ix.mu.Unlock()
		return ErrClosed
	}
	ix.closed.Store(true)
	n := ix.count
	ix.root = nil
	ix.count = 0
	ix.mu.Unlock()

	ix.bgWG.Wait()
	ix.logger.LogClose(n)
	return nil
}
