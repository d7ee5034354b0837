package voxbvh_test

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/voxbvh"
	"github.com/hupe1980/voxbvh/geom"
	"github.com/hupe1980/voxbvh/testutil"
)

var world = box(math.MinInt32, math.MinInt32, math.MinInt32, math.MaxInt32, math.MaxInt32, math.MaxInt32)

// TestConcurrentInsertAndQuery runs one writer against several readers.
// Items are inserted in ID order, so every consistent snapshot holds exactly
// the IDs 0..n-1 for some n, and n never decreases between reads.
func TestConcurrentInsertAndQuery(t *testing.T) {
	const (
		writes  = 10_000
		readers = 4
	)
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	items := testutil.NewRNG(21).Items(writes, 4096, 8)
	metrics := &voxbvh.BasicMetricsCollector{}
	ix := newIndex(t, voxbvh.WithRebalanceThreshold(2500), voxbvh.WithMetricsCollector(metrics))

	var done atomic.Bool
	var g errgroup.Group

	g.Go(func() error {
		defer done.Store(true)
		for _, it := range items {
			if err := ix.Insert(it); err != nil {
				return err
			}
		}
		return nil
	})

	for range readers {
		g.Go(func() error {
			last := 0
			for !done.Load() {
				got, err := ix.Query(world)
				if err != nil {
					return err
				}
				if !assert.GreaterOrEqual(t, len(got), last) {
					return nil
				}
				last = len(got)

				seen := make([]bool, len(got))
				for _, it := range got {
					if !assert.Less(t, it.ID, len(got), "item beyond snapshot") || !assert.False(t, seen[it.ID], "duplicate %d", it.ID) {
						return nil
					}
					seen[it.ID] = true
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	requireCount(t, ix, writes)
	assert.ElementsMatch(t, items, collect(t, ix))

	// The last scheduled rebalance may still be running.
	require.Eventually(t, func() bool {
		return metrics.GetStats().BackgroundRebalances >= 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestConcurrentMixedWorkload(t *testing.T) {
	rng := testutil.NewRNG(22)
	items := rng.Items(2000, 1024, 6)
	ix := newIndex(t, voxbvh.WithRebalanceThreshold(200))
	require.NoError(t, ix.Build(items[:1000]))

	var g errgroup.Group
	g.Go(func() error {
		for _, it := range items[1000:] {
			if err := ix.Insert(it); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, it := range items[:500] {
			if _, err := ix.Remove(it); err != nil {
				return err
			}
		}
		return nil
	})
	for range 3 {
		g.Go(func() error {
			for range 300 {
				if _, err := ix.QueryPoint(rng.Point(1024)); err != nil {
					return err
				}
				if _, _, err := ix.FindClosest(rng.Point(1024)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	requireCount(t, ix, 1500)
	assert.ElementsMatch(t, items[500:], collect(t, ix))
}

func TestAutoRebalance(t *testing.T) {
	t.Run("TriggersInBackground", func(t *testing.T) {
		metrics := &voxbvh.BasicMetricsCollector{}
		ix := newIndex(t, voxbvh.WithRebalanceThreshold(50), voxbvh.WithMetricsCollector(metrics))

		for _, it := range testutil.NewRNG(23).Items(60, 256, 4) {
			require.NoError(t, ix.Insert(it))
		}

		require.Eventually(t, func() bool {
			return metrics.GetStats().BackgroundRebalances >= 1
		}, 5*time.Second, 5*time.Millisecond)

		s, err := ix.Stats()
		require.NoError(t, err)
		assert.Less(t, s.OpsSinceRebalance, 50)
		requireCount(t, ix, 60)
	})

	t.Run("Disabled", func(t *testing.T) {
		metrics := &voxbvh.BasicMetricsCollector{}
		ix := newIndex(t,
			voxbvh.WithRebalanceThreshold(10),
			voxbvh.WithAutoRebalance(false),
			voxbvh.WithMetricsCollector(metrics),
		)

		for _, it := range testutil.NewRNG(24).Items(50, 256, 4) {
			require.NoError(t, ix.Insert(it))
		}
		enabled, err := ix.AutoRebalance()
		require.NoError(t, err)
		assert.False(t, enabled)

		s, err := ix.Stats()
		require.NoError(t, err)
		assert.Equal(t, 50, s.OpsSinceRebalance)
		assert.Zero(t, metrics.GetStats().RebalanceCount)

		// Enabling past the threshold schedules immediately.
		require.NoError(t, ix.SetAutoRebalance(true))
		require.Eventually(t, func() bool {
			return metrics.GetStats().BackgroundRebalances == 1
		}, 5*time.Second, 5*time.Millisecond)
	})

	t.Run("Paced", func(t *testing.T) {
		metrics := &voxbvh.BasicMetricsCollector{}
		ix := newIndex(t,
			voxbvh.WithRebalanceThreshold(10),
			voxbvh.WithRebalanceInterval(time.Hour),
			voxbvh.WithMetricsCollector(metrics),
		)

		items := testutil.NewRNG(25).Items(200, 256, 4)
		for _, it := range items[:20] {
			require.NoError(t, ix.Insert(it))
		}
		require.Eventually(t, func() bool {
			return metrics.GetStats().BackgroundRebalances == 1
		}, 5*time.Second, 5*time.Millisecond)

		for _, it := range items[20:] {
			require.NoError(t, ix.Insert(it))
		}
		assert.Equal(t, int64(1), metrics.GetStats().BackgroundRebalances)

		s, err := ix.Stats()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.OpsSinceRebalance, 10)
	})
}

func TestCloseWaitsForBackgroundWork(t *testing.T) {
	before := runtime.NumGoroutine()

	for i := range 20 {
		ix := voxbvh.New[item](voxbvh.WithRebalanceThreshold(1))
		for _, it := range testutil.NewRNG(int64(i)).Items(100, 256, 4) {
			require.NoError(t, ix.Insert(it))
		}
		require.NoError(t, ix.Close())
	}

	// Done runs just before a goroutine exits, so allow the scheduler a moment.
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+1
	}, 2*time.Second, 10*time.Millisecond, "goroutines before=%d", before)
}

func TestCloseConcurrentWithWriters(t *testing.T) {
	ix := voxbvh.New[item](voxbvh.WithRebalanceThreshold(5))
	items := testutil.NewRNG(26).Items(1000, 512, 4)

	var wg sync.WaitGroup
	var closedErrs atomic.Int64
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, it := range items[w*250 : (w+1)*250] {
				if err := ix.Insert(it); err != nil {
					assert.ErrorIs(t, err, voxbvh.ErrClosed)
					closedErrs.Add(1)
					return
				}
			}
		}()
	}

	time.Sleep(time.Millisecond)
	require.NoError(t, ix.Close())
	wg.Wait()

	_, err := ix.Query(geom.Box{})
	assert.ErrorIs(t, err, voxbvh.ErrClosed)
	assert.LessOrEqual(t, closedErrs.Load(), int64(4))
}
