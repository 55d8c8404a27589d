package lazytable

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// cacheLineSize is used to pad each shard's mutex so that adjacent shards
// never share a cache line — under contention two goroutines locking
// neighboring shards would otherwise ping-pong the same line between
// cores for no logical reason.
const cacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
