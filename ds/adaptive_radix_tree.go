// Package ds holds small data-structure adapters shared by the
// diagnostic snapshot tooling in internal/snapshot. It has no dependency
// on the Table itself — everything here operates on a plain copy of keys
// and values handed to it after the fact.
package ds

import (
	art "github.com/plar/go-adaptive-radix-tree"
)

// AdaptiveRadixTree indexes a frozen set of []byte keys for prefix scans.
// It is built once, from a point-in-time copy of a table, and never
// mutated concurrently with a reader — unlike the live Table, it carries
// no synchronization of its own.
type AdaptiveRadixTree struct {
	tree art.Tree
}

func NewART() *AdaptiveRadixTree {
	return &AdaptiveRadixTree{
		tree: art.New(),
	}
}

func (t *AdaptiveRadixTree) Get(key []byte) interface{} {
	value, _ := t.tree.Search(key)
	return value
}

func (t *AdaptiveRadixTree) Put(key []byte, value interface{}) (oldVal interface{}, updated bool) {
	return t.tree.Insert(key, value)
}

func (t *AdaptiveRadixTree) Delete(key []byte) (val interface{}, updated bool) {
	return t.tree.Delete(key)
}

func (t *AdaptiveRadixTree) Size() int {
	return t.tree.Size()
}

func (t *AdaptiveRadixTree) Iterator() art.Iterator {
	return t.tree.Iterator()
}

// PrefixScan returns keys starting with the given prefix. count bounds
// how many keys are returned; a negative count means no limit.
func (t *AdaptiveRadixTree) PrefixScan(prefix []byte, count int) (keys [][]byte) {
	cb := func(node art.Node) bool {
		if node.Kind() != art.Leaf {
			return true
		}
		if count == 0 {
			return false
		}
		keys = append(keys, node.Key())
		if count > 0 {
			count--
		}
		return true
	}

	if len(prefix) == 0 {
		t.tree.ForEach(cb)
	} else {
		t.tree.ForEachPrefix(prefix, cb)
	}
	return
}

// Keys returns every key currently indexed, in the tree's natural
// (lexicographic) order.
func (t *AdaptiveRadixTree) Keys() [][]byte {
	return t.PrefixScan(nil, -1)
}
