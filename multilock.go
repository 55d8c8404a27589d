package lazytable

// multiLock holds every shard mutex of one shardState at once. It is
// acquired by resize and by Export, which need a full barrier against every
// point operation that could still be holding a single shard lock of the
// same generation.
type multiLock struct {
	shards []*shard
}

// lockAll acquires every mutex in shards without deadlocking against
// concurrent point operations that each hold at most one mutex of the same
// set.
//
// It blockingly locks one starting shard, then walks the rest in order
// with TryLock. If any TryLock fails, every mutex taken so far in this
// attempt — including the blocking one — is released and the whole walk
// restarts from a new starting index. A point operation can only ever be
// holding a single mutex, so this thread always makes progress relative
// to whoever preempted it; it cannot livelock against itself because the
// starting index advances on every restart and the walk order is fixed.
//
// logf, if non-nil, is called on every eighth restart so a caller can
// surface a retry storm (many consecutive TryLock failures) instead of it passing
// silently.
func lockAll(shards []*shard, logf func(format string, args ...any)) *multiLock {
	n := len(shards)
	held := make([]*shard, 0, n)
	start := 0
	attempts := 0
	for {
		held = held[:0]
		shards[start%n].Lock()
		held = append(held, shards[start%n])

		ok := true
		for j := 1; j < n; j++ {
			s := shards[(start+j)%n]
			if !s.TryLock() {
				ok = false
				break
			}
			held = append(held, s)
		}

		if ok {
			return &multiLock{shards: held}
		}

		for _, s := range held {
			s.Unlock()
		}
		start++
		attempts++
		if logf != nil && attempts%8 == 0 {
			logf("lazytable: lockAll retrying against %d shards (attempt %d)", n, attempts+1)
		}
	}
}

// unlock releases every mutex held by this multiLock in one sweep.
func (m *multiLock) unlock() {
	for _, s := range m.shards {
		s.Unlock()
	}
}
