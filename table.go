// Package lazytable implements a concurrent lookup table: an in-memory
// map that shards its buckets across multiple mutexes and resizes itself
// online. A resize holds every shard mutex of the current snapshot while it
// migrates entries, so point operations wait for it and then retry against
// the new snapshot.
package lazytable

import (
	"log"
	"sync/atomic"
)

// Table is a concurrent associative container mapping keys of type K to
// values of type V. The zero value is not usable; construct one with New
// or NewString.
//
// A Table must not be copied after first use.
type Table[K comparable, V any] struct {
	noCopy noCopy

	current            atomic.Pointer[shardState[K, V]]
	resizeInProgress   atomic.Bool
	growShardsOnResize bool
	maxLoadFactor      int
	logger             *log.Logger
}

// noCopy implements sync.Locker as a no-op purely so go vet's copylocks
// check treats the embedding struct as non-copyable: copying a Table by
// value would alias its atomic.Pointer and atomic.Bool fields, which is
// never safe once a Table is in use.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New constructs a Table with an explicit hash function for K.
func New[K comparable, V any](hash HashFunc[K], opts ...Option[K, V]) (*Table[K, V], error) {
	cfg := DefaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.InitialShards < 1 {
		return nil, ErrInvalidParam
	}
	if hash == nil {
		return nil, ErrInvalidParam
	}

	buckets := cfg.InitialCapacity
	if buckets < cfg.InitialShards {
		buckets = cfg.InitialShards
	}

	t := &Table[K, V]{
		growShardsOnResize: cfg.GrowShardsOnResize,
		maxLoadFactor:      cfg.MaxLoadFactor,
		logger:             cfg.Logger,
	}
	t.current.Store(newShardState[K, V](buckets, cfg.InitialShards, hash))
	return t, nil
}

// NewString constructs a string-keyed Table using the package's default
// runtime hash (see defaulthash.go), for callers that don't need a
// custom hash function.
func NewString[V any](opts ...Option[string, V]) (*Table[string, V], error) {
	return New[string, V](stringHash, opts...)
}

func (t *Table[K, V]) logf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
	}
}

// Get returns a copy of the value stored for k, or the zero value and
// false if k is absent.
func (t *Table[K, V]) Get(k K) (V, bool) {
	for {
		snap := t.current.Load()
		bi := snap.bucketIndex(k)
		si := snap.shardIndex(bi)
		s := snap.shards[si]

		s.Lock()
		if t.current.Load() != snap {
			s.Unlock()
			continue
		}
		v, ok := snap.buckets[bi].get(k)
		s.Unlock()
		return v, ok
	}
}

// Put inserts or overwrites the value for k. If the bucket k lands in
// grows past the table's MaxLoadFactor and no other resize is already in
// flight, Put kicks off a resize before returning.
func (t *Table[K, V]) Put(k K, v V) {
	var triggerResize bool
	var resizeFrom *shardState[K, V]

	for {
		snap := t.current.Load()
		bi := snap.bucketIndex(k)
		si := snap.shardIndex(bi)
		s := snap.shards[si]

		s.Lock()
		if t.current.Load() != snap {
			s.Unlock()
			continue
		}
		newSize := snap.buckets[bi].put(k, v)
		s.Unlock()

		if newSize > t.maxLoadFactor && t.resizeInProgress.CompareAndSwap(false, true) {
			triggerResize = true
			resizeFrom = snap
		}
		break
	}

	if triggerResize {
		t.resize(resizeFrom)
	}
}

// Remove deletes k's entry if present; it is a silent no-op otherwise.
// Remove never shrinks the table.
func (t *Table[K, V]) Remove(k K) {
	for {
		snap := t.current.Load()
		bi := snap.bucketIndex(k)
		si := snap.shardIndex(bi)
		s := snap.shards[si]

		s.Lock()
		if t.current.Load() != snap {
			s.Unlock()
			continue
		}
		snap.buckets[bi].remove(k)
		s.Unlock()
		return
	}
}

// resize grows the table from B to 2*B+1 buckets (and, if configured,
// doubles its shard count up to maxShards), migrating every live entry
// into the new snapshot before publishing it.
func (t *Table[K, V]) resize(from *shardState[K, V]) {
	defer t.resizeInProgress.Store(false)

	t.logf("lazytable: resize starting from generation %d (%d buckets, %d shards)",
		from.generation, len(from.buckets), len(from.shards))

	for {
		ml := lockAll(from.shards, t.logf)

		if t.current.Load() != from {
			// Someone else already published a newer snapshot; retry the
			// whole protocol against it rather than clobbering their work.
			ml.unlock()
			from = t.current.Load()
			continue
		}

		newBuckets := 2*len(from.buckets) + 1
		newShards := len(from.shards)
		if t.growShardsOnResize {
			newShards = min(2*newShards, maxShards)
		}

		next := newShardState[K, V](newBuckets, newShards, from.hash)
		for bi := range from.buckets {
			b := &from.buckets[bi]
			for _, e := range b.entries {
				ni := next.bucketIndex(e.key)
				next.buckets[ni].put(e.key, e.value)
			}
		}

		t.logf("lazytable: resize generation %d -> %d (%d -> %d buckets, %d -> %d shards)",
			from.generation, next.generation, len(from.buckets), len(next.buckets), len(from.shards), len(next.shards))

		t.current.Store(next)
		ml.unlock()
		return
	}
}
