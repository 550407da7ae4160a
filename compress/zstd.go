package compress

// ZstdCompressor implements the ZSTD compression method (wire id 0x90).
// It favors compression ratio over speed, at the cost of more CPU per block
// than LZ4Compressor. This module only ever picks the method the session
// was configured with.
//
// The Compress/Decompress bodies live in zstd_pure.go (pure-Go, default
// build) and zstd_cgo.go (cgo gozstd, built only under the "nobuild" tag,
// i.e. never by default) so the type itself stays build-tag free.
type ZstdCompressor struct{}

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
