// Package fasthash provides the low-level hashing primitives lazytable
// builds its default key hash and diagnostic checksums on top of.
package fasthash

import (
	"encoding/binary"
	"io"
	"unsafe"

	"github.com/spaolacci/murmur3"
)

//go:linkname runtimeMemhash runtime.memhash
//go:noescape
func runtimeMemhash(p unsafe.Pointer, seed, s uintptr) uintptr

// MemHash is the hash function the Go runtime's own map uses internally
// (AES-accelerated when the hardware supports it). The seed changes every
// process start, so the result must never be persisted or compared across
// runs — lazytable only ever uses it to pick a bucket within one process's
// lifetime.
func MemHash(buf []byte) uint64 {
	return rthash(buf, 923)
}

// MemHashString is MemHash without the string-to-[]byte copy.
func MemHashString(s string) uint64 {
	if len(s) == 0 {
		return MemHash(nil)
	}
	return rthash(unsafe.Slice(unsafe.StringData(s), len(s)), 923)
}

func rthash(b []byte, seed uint64) uint64 {
	if len(b) == 0 {
		return seed
	}
	// The runtime hasher only works on uintptr. For 64-bit architectures we
	// use it directly; for 32-bit we combine two parallel hashes of the
	// lower and upper halves of the seed.
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return uint64(runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed), uintptr(len(b))))
	}
	lo := runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed), uintptr(len(b)))
	hi := runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed>>32), uintptr(len(b)))
	return uint64(hi)<<32 | uint64(lo)
}

// Murmur128 is a running murmur3/128 hash, used where a stable (not
// process-seeded) fingerprint is needed, e.g. comparing two diagnostic
// snapshots of a table.
type Murmur128 struct {
	mur murmur3.Hash128
}

func NewMurmur128() *Murmur128 {
	return &Murmur128{mur: murmur3.New128()}
}

func (m *Murmur128) Write(p []byte) error {
	n, err := m.mur.Write(p)
	if n != len(p) {
		return io.ErrShortWrite
	}
	return err
}

// Sum encodes the running 128-bit state as a pair of varints.
func (m *Murmur128) Sum() []byte {
	buf := make([]byte, binary.MaxVarintLen64*2)
	s1, s2 := m.mur.Sum128()
	var index int
	index += binary.PutUvarint(buf[index:], s1)
	index += binary.PutUvarint(buf[index:], s2)
	return buf[:index]
}

func (m *Murmur128) Reset() {
	m.mur.Reset()
}
