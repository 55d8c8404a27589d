// Command tablestat builds a lazytable.Table, drives enough load through
// it to force at least one resize, and prints a sorted diagnostic dump
// plus a content checksum using internal/snapshot.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/kakosute/lazytable"
	"github.com/kakosute/lazytable/internal/snapshot"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func key(n int) string {
	return fmt.Sprintf("tablestat_key_%d", n)
}

func value() string {
	var buf bytes.Buffer
	for i := 0; i < 32; i++ {
		buf.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return buf.String()
}

func main() {
	count := flag.Int("n", 10000, "number of entries to insert")
	top := flag.Int("top", 10, "number of entries to print from the sorted dump")
	flag.Parse()

	t, err := lazytable.NewString[string]()
	if err != nil {
		fmt.Fprintln(os.Stderr, "construct table:", err)
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		t.Put(key(i), value())
	}

	kvs := lazytable.Export(t)
	entries := make([]snapshot.Entry[string], len(kvs))
	for i, kv := range kvs {
		entries[i] = snapshot.Entry[string]{Key: kv.Key, Value: kv.Value}
	}

	export := snapshot.Of(entries)
	dump := export.LexicalDump()
	if len(dump) > *top {
		dump = dump[:*top]
	}

	fmt.Printf("entries: %d\n", export.Len())
	fmt.Printf("checksum: %x\n", export.Checksum())
	fmt.Printf("first %d keys (lexical order):\n", len(dump))
	for _, e := range dump {
		fmt.Printf("  %s = %s\n", e.Key, e.Value)
	}
}
