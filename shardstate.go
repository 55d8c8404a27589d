package lazytable

import (
	"math/rand"

	"github.com/bwmarrin/snowflake"
)

// maxShards bounds the shard count a resize may grow to.
const maxShards = 1024

// HashFunc computes a key's hash. Callers supply one explicitly via New,
// or use NewString for the runtime-hash default (see defaulthash.go).
type HashFunc[K comparable] func(k K) uint64

// shardState is an immutable-once-published snapshot: a fixed set of
// buckets, a fixed set of shard mutexes, the budget mapping one to the
// other, and the hash function used to route keys. Every point operation
// loads the table's current *shardState atomically, so once a shardState
// is reachable from a reader it must never be mutated — only the buckets'
// contents change, and only while the owning shard's mutex is held.
type shardState[K comparable, V any] struct {
	buckets    []bucket[K, V]
	shards     []*shard
	budget     int
	hash       HashFunc[K]
	generation int64
}

// newShardState builds an empty snapshot with b buckets and s shards.
// The table's callers always pass b >= s; with b < s the budget is 1 and
// the extra shards guard no buckets.
func newShardState[K comparable, V any](b, s int, hash HashFunc[K]) *shardState[K, V] {
	budget := (b + s - 1) / s // ceil(b/s)

	st := &shardState[K, V]{
		buckets:    make([]bucket[K, V], b),
		shards:     make([]*shard, s),
		budget:     budget,
		hash:       hash,
		generation: nextGeneration(),
	}
	for i := range st.shards {
		st.shards[i] = &shard{}
	}
	return st
}

func (st *shardState[K, V]) bucketIndex(k K) int {
	return int(st.hash(k) % uint64(len(st.buckets)))
}

func (st *shardState[K, V]) shardIndex(bucketIdx int) int {
	return bucketIdx / st.budget
}

// nextGeneration stamps every shardState with a roughly time-ordered ID
// (each call uses a fresh snowflake node with a random node id, so two IDs
// drawn in the same millisecond can coincide) so log lines about a resize ("generation 4821 ->
// generation 4822") correlate across goroutines without needing to print
// pointers. This has no bearing on correctness — it exists purely for
// diagnostics.
func nextGeneration() int64 {
	nodeID := rand.Int63() % 1023
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		// snowflake.NewNode only fails outside its [0, 1023] node range,
		// which nodeID is masked into above; this is unreachable.
		return 0
	}
	return node.Generate().Int64()
}
