package lazytable

import "github.com/kakosute/lazytable/internal/fasthash"

// stringHash is the default HashFunc used by NewString. It is the same
// runtime-internal hash Go's own map type uses, which is fast but
// reseeded every process start — fine for routing keys to buckets,
// unsuitable for anything that outlives the process.
func stringHash(s string) uint64 {
	return fasthash.MemHashString(s)
}
