// Package snapshot is a diagnostic-only companion to lazytable.Table. It
// is never imported by the table's own public API, which intentionally
// offers no stable iteration guarantee. It exists so tools like
// cmd/tablestat can take an honest point-in-time look at what a table
// holds.
package snapshot

import (
	"sort"

	"github.com/gansidui/skiplist"
	"github.com/kakosute/lazytable/ds"
	"github.com/kakosute/lazytable/internal/fasthash"
)

// Entry is one (key, value) pair copied out of a table at snapshot time.
type Entry[V any] struct {
	Key   string
	Value V
}

// Of builds an export from a caller-supplied slice of entries. Taking a
// consistent slice is the caller's job: lazytable.Export copies every
// entry while holding all shard locks (the same lockAll barrier resize
// uses), and cmd/tablestat builds its slice from that copy. Tests pass
// hand-written slices directly.
func Of[V any](entries []Entry[V]) *Export[V] {
	return &Export[V]{entries: entries}
}

// Export is an immutable, already-copied view over a table's contents.
type Export[V any] struct {
	entries []Entry[V]
}

// Len returns the number of entries captured.
func (e *Export[V]) Len() int { return len(e.entries) }

// RadixIndex builds an AdaptiveRadixTree over the exported keys, letting
// callers prefix-scan a frozen snapshot.
func (e *Export[V]) RadixIndex() *ds.AdaptiveRadixTree {
	tree := ds.NewART()
	for _, ent := range e.entries {
		tree.Put([]byte(ent.Key), ent.Value)
	}
	return tree
}

// scoredNode adapts one exported entry to skiplist.Interface ordering.
type scoredNode[V any] struct {
	score float64
	entry Entry[V]
}

func (n *scoredNode[V]) Less(other interface{}) bool {
	o := other.(*scoredNode[V])
	if n.score != o.score {
		return n.score < o.score
	}
	return n.entry.Key < o.entry.Key
}

// SortedDump orders the export by score (ascending) using a skip list and
// returns the entries in that order.
func (e *Export[V]) SortedDump(score func(Entry[V]) float64) []Entry[V] {
	skl := skiplist.New()
	for _, ent := range e.entries {
		skl.Insert(&scoredNode[V]{score: score(ent), entry: ent})
	}

	out := make([]Entry[V], 0, len(e.entries))
	if skl.Len() == 0 {
		return out
	}
	n := skl.GetElementByRank(1)
	for i := 0; i < skl.Len(); i++ {
		out = append(out, n.Value.(*scoredNode[V]).entry)
		n = n.Next()
	}
	return out
}

// LexicalDump returns the export sorted by key, without building an
// index — a cheap alternative to RadixIndex().Keys() when no prefix
// query is needed.
func (e *Export[V]) LexicalDump() []Entry[V] {
	out := make([]Entry[V], len(e.entries))
	copy(out, e.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Checksum fingerprints the exported key set with murmur3/128, so two
// dumps taken at different times can be compared for equality cheaply
// without diffing every entry.
func (e *Export[V]) Checksum() []byte {
	keys := make([]string, len(e.entries))
	for i, ent := range e.entries {
		keys[i] = ent.Key
	}
	sort.Strings(keys)

	h := fasthash.NewMurmur128()
	for _, k := range keys {
		_ = h.Write([]byte(k))
	}
	return h.Sum()
}
