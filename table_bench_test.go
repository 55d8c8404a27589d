package lazytable

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"
)

const benchAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func benchKey(n int) string {
	return "bench_test_key_" + fmt.Sprintf("%d", n)
}

func benchValue() string {
	var str bytes.Buffer
	for i := 0; i < 512; i++ {
		str.WriteByte(benchAlphabet[rand.Int()%36])
	}
	return str.String()
}

func newBenchTable(b *testing.B) *Table[string, string] {
	tbl, err := NewString[string]()
	if err != nil {
		b.Fatal(err)
	}
	return tbl
}

func BenchmarkTable_Get(b *testing.B) {
	tbl := newBenchTable(b)
	for i := 0; i < 500000; i++ {
		tbl.Put(benchKey(i), benchValue())
	}
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		tbl.Get(benchKey(i))
	}
}

func BenchmarkTable_Put(b *testing.B) {
	tbl := newBenchTable(b)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		tbl.Put(benchKey(i), benchValue())
	}
}

func BenchmarkTable_PutParallel(b *testing.B) {
	tbl := newBenchTable(b)
	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			tbl.Put(benchKey(i), benchValue())
			i++
		}
	})
}
