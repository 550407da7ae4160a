package column

import (
	"bytes"
	"encoding/binary"

	"github.com/kasuga-db/chconn/internal/checksum"
)

// dictTracker deduplicates LowCardinality dictionary entries by their
// encoded byte representation. It is adapted from arloliu/mebo's
// internal/collision.Tracker, which deduplicated metric names by a single
// hash with a verbatim-string fallback on collision; here the "verbatim
// fallback" isn't available (the dictionary itself is the value store, not
// a side table), so both 64-bit halves of the frame checksum are used as
// the lookup key and an exact byte comparison resolves the rare case where
// two distinct values hash equal on one half, per §4.4.8's "two
// independent hashes reduce collisions in practice" note.
type dictTracker struct {
	buckets map[[2]uint64][]int32
}

func newDictTracker() *dictTracker {
	return &dictTracker{buckets: make(map[[2]uint64][]int32)}
}

func hashKey(encoded []byte) [2]uint64 {
	sum := checksum.Sum(encoded)

	return [2]uint64{
		binary.LittleEndian.Uint64(sum[0:8]),
		binary.LittleEndian.Uint64(sum[8:16]),
	}
}

// lookup returns the dictionary index already holding encoded, consulting
// entries with the same hash and comparing bytes to rule out a collision.
func (t *dictTracker) lookup(encoded []byte, dictAt func(idx int32) []byte) (int32, bool) {
	key := hashKey(encoded)
	for _, idx := range t.buckets[key] {
		if bytes.Equal(dictAt(idx), encoded) {
			return idx, true
		}
	}

	return 0, false
}

// record associates encoded's hash with the dictionary index idx.
func (t *dictTracker) record(encoded []byte, idx int32) {
	key := hashKey(encoded)
	t.buckets[key] = append(t.buckets[key], idx)
}

// reset clears the tracker, used when a LowCardinality column's dictionary
// is rebuilt (e.g. after Slice compacts it).
func (t *dictTracker) reset() {
	t.buckets = make(map[[2]uint64][]int32)
}
