package lazytable

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestTable_ParallelReadersAndWriters has readers spin on two disjoint
// key ranges while writers fill them with distinct patterns, concurrently
// with the resizes that the writers' own Puts trigger.
func TestTable_ParallelReadersAndWriters(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test skipped in -short mode")
	}
	runParallelReadersAndWriters(t, 20000, true)
}

func TestTable_ParallelReadersAndWriters_FixedShardCount(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test skipped in -short mode")
	}
	runParallelReadersAndWriters(t, 20000, false)
}

func runParallelReadersAndWriters(t *testing.T, n int, growShards bool) {
	tbl, err := NewString[string](
		WithShards[string, string](256),
		WithCapacity[string, string](256),
		WithGrowShardsOnResize[string, string](growShards),
	)
	require.NoError(t, err)

	pattern := func(prefix string, i int) string { return fmt.Sprintf("%s = %d", prefix, i) }

	var wg sync.WaitGroup
	var mismatches atomic.Int64

	// Writers: A fills [0, n), B fills [n, 2n), C overwrites [0, n) again.
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			tbl.Put(fmt.Sprintf("k%d", i), pattern("AAAAAAA", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			tbl.Put(fmt.Sprintf("k%d", n+i), pattern("BBBBBBB", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			tbl.Put(fmt.Sprintf("k%d", i), pattern("CCCCCCC", i))
		}
	}()

	// Readers: spin until every key in their range shows up with either
	// writer A's or writer C's pattern (they race on the same range), or
	// writer B's pattern in the second range.
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			key := fmt.Sprintf("k%d", i)
			for {
				v, ok := tbl.Get(key)
				if ok && (v == pattern("AAAAAAA", i) || v == pattern("CCCCCCC", i)) {
					break
				}
				if ok {
					mismatches.Add(1)
				}
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			key := fmt.Sprintf("k%d", n+i)
			for {
				v, ok := tbl.Get(key)
				if ok && v == pattern("BBBBBBB", i) {
					break
				}
				if ok {
					mismatches.Add(1)
				}
			}
		}
	}()

	doneCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(60 * time.Second):
		t.Fatal("readers/writers did not complete within timeout")
	}
	require.Zero(t, mismatches.Load())
}

// TestTable_WriteRemoveReadRace has one reader spin on a range expecting a
// specific pattern while a second goroutine puts the expected value and
// immediately removes a different, trailing key in a tight loop, racing
// deletes against the reader's range.
func TestTable_WriteRemoveReadRace(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test skipped in -short mode")
	}

	const n = 20000
	tbl, err := NewString[string](WithShards[string, string](128), WithCapacity[string, string](128))
	require.NoError(t, err)

	pattern := func(i int) string { return fmt.Sprintf("AAAAAAA = %d", i) }
	seen := make([]atomic.Bool, n)

	stop := make(chan struct{})
	var writerWG sync.WaitGroup
	writerWG.Add(1)
	go func() {
		defer writerWG.Done()
		i := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			key := fmt.Sprintf("k%d", i%n)
			tbl.Put(key, pattern(i%n))
			if i >= 20 {
				tbl.Remove(fmt.Sprintf("k%d", (i-20)%n))
			}
			i++
		}
	}()

	for i := 0; i < n; i++ {
		key := fmt.Sprintf("k%d", i)
		for !seen[i].Load() {
			if v, ok := tbl.Get(key); ok && v == pattern(i) {
				seen[i].Store(true)
			}
		}
	}

	close(stop)
	writerWG.Wait()

	for i := 0; i < n; i++ {
		require.True(t, seen[i].Load(), "key %d was never observed with its expected value", i)
	}
}
