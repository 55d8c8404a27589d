package lazytable

import "sync"

// shard is a single mutex guarding a contiguous range of buckets. It is
// padded to a full cache line so that locking shard i never dirties the
// cache line backing shard i+1 on another core.
type shard struct {
	mu  sync.Mutex
	pad [cacheLineSize]byte
}

func (s *shard) Lock()         { s.mu.Lock() }
func (s *shard) Unlock()       { s.mu.Unlock() }
func (s *shard) TryLock() bool { return s.mu.TryLock() }
