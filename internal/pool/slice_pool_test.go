package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInt64Slice_Length(t *testing.T) {
	s, cleanup := GetInt64Slice(100)
	defer cleanup()

	assert.Equal(t, 100, len(s))
}

func TestGetInt64Slice_ReuseAfterCleanup(t *testing.T) {
	s, cleanup := GetInt64Slice(50)
	s[0] = 42
	cleanup()

	s2, cleanup2 := GetInt64Slice(10)
	defer cleanup2()

	assert.Equal(t, 10, len(s2))
}

func TestGetFloat64Slice_GrowsWhenTooSmall(t *testing.T) {
	s, cleanup := GetFloat64Slice(4)
	cleanup()

	s2, cleanup2 := GetFloat64Slice(4096)
	defer cleanup2()

	assert.Equal(t, 4096, len(s2))
}

func TestGetStringSlice_ZeroLength(t *testing.T) {
	s, cleanup := GetStringSlice(0)
	defer cleanup()

	assert.Equal(t, 0, len(s))
}

func TestGetUint8Slice_Length(t *testing.T) {
	s, cleanup := GetUint8Slice(16)
	defer cleanup()

	assert.Equal(t, 16, len(s))
	for _, v := range s {
		assert.Equal(t, uint8(0), v)
	}
}

func TestSlicePool_GenericTypes(t *testing.T) {
	i8, c1 := GetInt8Slice(3)
	i16, c2 := GetInt16Slice(3)
	i32, c3 := GetInt32Slice(3)
	u16, c4 := GetUint16Slice(3)
	u32, c5 := GetUint32Slice(3)
	u64, c6 := GetUint64Slice(3)
	f32, c7 := GetFloat32Slice(3)
	defer c1()
	defer c2()
	defer c3()
	defer c4()
	defer c5()
	defer c6()
	defer c7()

	assert.Len(t, i8, 3)
	assert.Len(t, i16, 3)
	assert.Len(t, i32, 3)
	assert.Len(t, u16, 3)
	assert.Len(t, u32, 3)
	assert.Len(t, u64, 3)
	assert.Len(t, f32, 3)
}

func TestNewSlicePool_Independent(t *testing.T) {
	p1 := NewSlicePool[int64]()
	p2 := NewSlicePool[int64]()

	s1, c1 := p1.Get(8)
	s2, c2 := p2.Get(8)
	defer c1()
	defer c2()

	s1[0] = 7
	assert.Equal(t, int64(0), s2[0])
}
