package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuga-db/chconn/wire"
)

func buildUint64Array(t *testing.T, rows [][]uint64) *arrayColumn {
	t.Helper()

	col := NewArrayColumn(NewUInt64Column()).(*arrayColumn)
	nested := col.Nested().(*numericColumn[uint64])
	for _, row := range rows {
		nested.SetValues(append(nested.Values(), row...))
		col.AppendSubArray(len(row))
	}

	return col
}

func TestArrayColumn_RoundTrip(t *testing.T) {
	rows := [][]uint64{{1, 2, 3}, {}, {4}, {}, {5, 6}}
	col := buildUint64Array(t, rows)
	require.Equal(t, len(rows), col.Len())

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, col.SaveBody(w))

	out := NewArrayColumn(NewUInt64Column()).(*arrayColumn)
	r := wire.NewReader(newByteReader(w.Bytes()))
	require.NoError(t, out.LoadBody(r, len(rows)))

	for i, row := range rows {
		begin, end := out.SubArrayBounds(i)
		assert.Equal(t, row, out.Nested().(*numericColumn[uint64]).Values()[begin:end], "row %d", i)
	}
}

func TestArrayColumn_NestedArrayOfArray(t *testing.T) {
	// Array(Array(UInt64)) with an empty inner array sandwiched between
	// non-empty ones.
	inner := NewArrayColumn(NewUInt64Column())
	outer := NewArrayColumn(inner).(*arrayColumn)

	innerArr := outer.Nested().(*arrayColumn)
	leafOf := func(row []uint64) {
		leaf := innerArr.Nested().(*numericColumn[uint64])
		leaf.SetValues(append(leaf.Values(), row...))
		innerArr.AppendSubArray(len(row))
	}

	// Outer row 0: two inner arrays [1,2] and [] -> 2 inner rows.
	leafOf([]uint64{1, 2})
	leafOf(nil)
	outer.AppendSubArray(2)

	// Outer row 1: one inner array [3].
	leafOf([]uint64{3})
	outer.AppendSubArray(1)

	require.Equal(t, 2, outer.Len())

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, outer.SaveBody(w))

	out := NewArrayColumn(NewArrayColumn(NewUInt64Column())).(*arrayColumn)
	r := wire.NewReader(newByteReader(w.Bytes()))
	require.NoError(t, out.LoadBody(r, 2))

	innerOut := out.Nested().(*arrayColumn)
	assert.Equal(t, 3, innerOut.Len())

	b, e := innerOut.SubArrayBounds(0)
	assert.Equal(t, []uint64{1, 2}, innerOut.Nested().(*numericColumn[uint64]).Values()[b:e])

	b, e = innerOut.SubArrayBounds(1)
	assert.Equal(t, 0, e-b)

	b, e = innerOut.SubArrayBounds(2)
	assert.Equal(t, []uint64{3}, innerOut.Nested().(*numericColumn[uint64]).Values()[b:e])
}

func TestArrayColumn_Slice(t *testing.T) {
	col := buildUint64Array(t, [][]uint64{{1, 2}, {3}, {}, {4, 5, 6}})

	sliced, err := col.Slice(1, 2)
	require.NoError(t, err)
	s := sliced.(*arrayColumn)
	require.Equal(t, 2, s.Len())

	b, e := s.SubArrayBounds(0)
	assert.Equal(t, []uint64{3}, s.Nested().(*numericColumn[uint64]).Values()[b:e])
	b, e = s.SubArrayBounds(1)
	assert.Equal(t, 0, e-b)
}

func TestArrayColumn_AppendFrom(t *testing.T) {
	src := buildUint64Array(t, [][]uint64{{1}, {2, 3}, {}, {4}})
	dst := NewArrayColumn(NewUInt64Column()).(*arrayColumn)

	require.NoError(t, dst.AppendFrom(src, 1, 2))
	require.Equal(t, 2, dst.Len())

	b, e := dst.SubArrayBounds(0)
	assert.Equal(t, []uint64{2, 3}, dst.Nested().(*numericColumn[uint64]).Values()[b:e])
	b, e = dst.SubArrayBounds(1)
	assert.Equal(t, 0, e-b)
}
