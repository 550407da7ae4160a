package column

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuga-db/chconn/wire"
)

func appendString(t *testing.T, col *lowCardinalityColumn, s string) {
	t.Helper()
	row := NewStringColumn().(*stringColumn)
	row.Append(s)
	require.NoError(t, col.AppendValue(row))
}

func TestLowCardinalityColumn_DedupAndRoundTrip(t *testing.T) {
	col := NewLowCardinalityColumn(NewStringColumn(), false).(*lowCardinalityColumn)

	appendString(t, col, "alpha")
	appendString(t, col, "beta")
	appendString(t, col, "alpha") // dedups to the same dictionary index
	appendString(t, col, "gamma")

	require.Equal(t, 4, col.Len())
	// alpha's two occurrences must share an index.
	assert.Equal(t, col.indices[0], col.indices[2])
	assert.NotEqual(t, col.indices[0], col.indices[1])

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, col.SavePrefix(w))
	require.NoError(t, col.SaveBody(w))

	out := NewLowCardinalityColumn(NewStringColumn(), false).(*lowCardinalityColumn)
	r := wire.NewReader(newByteReader(w.Bytes()))
	require.NoError(t, out.LoadPrefix(r, 4))
	require.NoError(t, out.LoadBody(r, 4))

	assert.Equal(t, col.indices, out.indices)
	assert.Equal(t, col.Dict().(*stringColumn).Values(), out.Dict().(*stringColumn).Values())
}

func TestLowCardinalityColumn_Nullable(t *testing.T) {
	col := NewLowCardinalityColumn(NewStringColumn(), true).(*lowCardinalityColumn)

	appendString(t, col, "x")
	require.NoError(t, col.AppendNull())
	appendString(t, col, "x") // dedup against the first

	assert.Equal(t, uint64(0), col.indices[1])
	assert.Equal(t, col.indices[0], col.indices[2])

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, col.SaveBody(w))

	out := NewLowCardinalityColumn(NewStringColumn(), true).(*lowCardinalityColumn)
	r := wire.NewReader(newByteReader(w.Bytes()))
	require.NoError(t, out.LoadBody(r, 3))
	assert.Equal(t, uint64(0), out.indices[1])
}

// TestLowCardinalityColumn_IndexWidths checks that widthForKeys picks each of
// the four index widths (u8/u16/u32/u64 selectors) at key counts around the
// 256, 65536, and 2^32 boundaries, per §8's boundary scenario. Every case
// calls widthForKeys directly rather than growing a dictionary, since
// materializing 2^32 distinct strings isn't practical in a test.
func TestLowCardinalityColumn_IndexWidths(t *testing.T) {
	cases := []struct {
		numberOfKeys int
		wantWidth    uint64
	}{
		{1, 0}, {200, 0}, {256, 0}, {257, 1}, {400, 1}, {65536, 1}, {65537, 2}, {70000, 2},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("keys=%d", c.numberOfKeys), func(t *testing.T) {
			assert.Equal(t, c.wantWidth, widthForKeys(c.numberOfKeys))
		})
	}

	assert.Equal(t, uint64(3), widthForKeys(1<<32+1))
}

func TestLowCardinalityColumn_ForcesU16Width(t *testing.T) {
	col := NewLowCardinalityColumn(NewStringColumn(), false).(*lowCardinalityColumn)
	for i := 0; i < 300; i++ {
		appendString(t, col, fmt.Sprintf("v%d", i))
	}
	// 300 distinct values plus 2 reserved entries = 302 keys, exceeding 256.
	require.Equal(t, uint64(1), widthForKeys(col.Dict().Len()))

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, col.SaveBody(w))

	out := NewLowCardinalityColumn(NewStringColumn(), false).(*lowCardinalityColumn)
	r := wire.NewReader(newByteReader(w.Bytes()))
	require.NoError(t, out.LoadBody(r, 300))
	assert.Equal(t, col.indices, out.indices)
}

func TestLowCardinalityColumn_SliceCompactsDictionary(t *testing.T) {
	col := NewLowCardinalityColumn(NewStringColumn(), false).(*lowCardinalityColumn)
	appendString(t, col, "a")
	appendString(t, col, "b")
	appendString(t, col, "c")
	appendString(t, col, "a")

	// Slice rows [1,3) -> values "b","c"; the resulting dictionary must only
	// contain the two reserved entries plus "b" and "c", not "a".
	sliced, err := col.Slice(1, 2)
	require.NoError(t, err)
	s := sliced.(*lowCardinalityColumn)

	require.Equal(t, 2, s.Len())
	dictValues := s.Dict().(*stringColumn).Values()
	assert.Equal(t, 4, len(dictValues)) // 2 reserved + "b" + "c"
	assert.NotContains(t, dictValues[2:], "a")

	w := wire.NewWriter()
	defer w.Release()
	require.NoError(t, s.SaveBody(w))

	out := NewLowCardinalityColumn(NewStringColumn(), false).(*lowCardinalityColumn)
	r := wire.NewReader(newByteReader(w.Bytes()))
	require.NoError(t, out.LoadBody(r, 2))

	gotValues := make([]string, 2)
	for i, idx := range out.indices {
		gotValues[i] = out.Dict().(*stringColumn).Values()[idx]
	}
	assert.Equal(t, []string{"b", "c"}, gotValues)
}

func TestLowCardinalityColumn_RejectsWrongKeySerializationVersion(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	w.WriteFixed64(2) // only version 1 is accepted

	r := wire.NewReader(newByteReader(w.Bytes()))
	col := NewLowCardinalityColumn(NewStringColumn(), false).(*lowCardinalityColumn)
	err := col.LoadPrefix(r, 0)
	require.Error(t, err)
}
