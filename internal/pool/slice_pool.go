package pool

import "sync"

// SlicePool pools reusable slices of a fixed element type T, avoiding a fresh
// allocation every time a column codec needs a scratch slice to decode a
// block's worth of values into. Generalized from arloliu/mebo's
// per-type (int64/float64/string) sync.Pool slices into a single generic
// pool, in the same generic style as package column's numericColumn[T],
// rather than hand-duplicating the same pool three times over.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates a SlicePool for element type T.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return new([]T) },
		},
	}
}

// Get retrieves a slice of length size from the pool, reusing the backing
// array when it has sufficient capacity and allocating a new one otherwise.
// The caller must call the returned cleanup function, typically via defer,
// to return the slice to the pool.
func (p *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { p.pool.Put(ptr) }
}

var (
	int8SlicePool    = NewSlicePool[int8]()
	int16SlicePool   = NewSlicePool[int16]()
	int32SlicePool   = NewSlicePool[int32]()
	int64SlicePool   = NewSlicePool[int64]()
	uint8SlicePool   = NewSlicePool[uint8]()
	uint16SlicePool  = NewSlicePool[uint16]()
	uint32SlicePool  = NewSlicePool[uint32]()
	uint64SlicePool  = NewSlicePool[uint64]()
	float32SlicePool = NewSlicePool[float32]()
	float64SlicePool = NewSlicePool[float64]()
	stringSlicePool  = NewSlicePool[string]()
)

// GetInt8Slice retrieves a reusable []int8 of length size.
func GetInt8Slice(size int) ([]int8, func()) { return int8SlicePool.Get(size) }

// GetInt16Slice retrieves a reusable []int16 of length size.
func GetInt16Slice(size int) ([]int16, func()) { return int16SlicePool.Get(size) }

// GetInt32Slice retrieves a reusable []int32 of length size.
func GetInt32Slice(size int) ([]int32, func()) { return int32SlicePool.Get(size) }

// GetInt64Slice retrieves a reusable []int64 of length size.
func GetInt64Slice(size int) ([]int64, func()) { return int64SlicePool.Get(size) }

// GetUint8Slice retrieves a reusable []uint8 of length size.
func GetUint8Slice(size int) ([]uint8, func()) { return uint8SlicePool.Get(size) }

// GetUint16Slice retrieves a reusable []uint16 of length size.
func GetUint16Slice(size int) ([]uint16, func()) { return uint16SlicePool.Get(size) }

// GetUint32Slice retrieves a reusable []uint32 of length size.
func GetUint32Slice(size int) ([]uint32, func()) { return uint32SlicePool.Get(size) }

// GetUint64Slice retrieves a reusable []uint64 of length size.
func GetUint64Slice(size int) ([]uint64, func()) { return uint64SlicePool.Get(size) }

// GetFloat32Slice retrieves a reusable []float32 of length size.
func GetFloat32Slice(size int) ([]float32, func()) { return float32SlicePool.Get(size) }

// GetFloat64Slice retrieves a reusable []float64 of length size.
func GetFloat64Slice(size int) ([]float64, func()) { return float64SlicePool.Get(size) }

// GetStringSlice retrieves a reusable []string of length size.
func GetStringSlice(size int) ([]string, func()) { return stringSlicePool.Get(size) }
