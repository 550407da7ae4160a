package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
)

func TestFactory_Primitives(t *testing.T) {
	col, err := Factory(chtype.UInt32())
	require.NoError(t, err)
	assert.Equal(t, chtype.UInt32(), col.Type())
}

func TestFactory_Nullable(t *testing.T) {
	col, err := Factory(chtype.Nullable(chtype.String()))
	require.NoError(t, err)
	_, ok := col.(*nullableColumn)
	require.True(t, ok)
	assert.Equal(t, "Nullable(String)", col.Type().String())
}

func TestFactory_NestedArray(t *testing.T) {
	col, err := Factory(chtype.Array(chtype.Array(chtype.UInt64())))
	require.NoError(t, err)
	assert.Equal(t, "Array(Array(UInt64))", col.Type().String())
}

func TestFactory_Map(t *testing.T) {
	col, err := Factory(chtype.Map(chtype.UUID(), chtype.LowCardinality(chtype.Nullable(chtype.String()))))
	require.NoError(t, err)
	assert.Equal(t, "Map(UUID, LowCardinality(Nullable(String)))", col.Type().String())
}

func TestFactory_AggregateFunctionUnsupported(t *testing.T) {
	typ, err := chtype.Parse("AggregateFunction(sum, UInt64)")
	require.NoError(t, err)

	_, err = Factory(typ)
	require.Error(t, err)
	assert.True(t, errs.IsUnsupported(err))
}

func TestFactory_RoundTripsEveryParsedTypeName(t *testing.T) {
	names := []string{
		"Int8", "UInt64", "Float64", "UUID", "IPv4", "IPv6", "Date", "Date32",
		"DateTime", "DateTime64(3, 'UTC')", "Decimal(10,2)", "String",
		"FixedString(8)", "Enum8('a' = 1, 'b' = 2)", "Nothing",
		"Nullable(Int32)", "Array(String)", "Tuple(Int32, String)",
		"Map(String, Int64)", "LowCardinality(String)",
		"LowCardinality(Nullable(String))",
	}

	for _, name := range names {
		typ, err := chtype.Parse(name)
		require.NoError(t, err, name)

		col, err := Factory(typ)
		require.NoError(t, err, name)
		assert.Equal(t, name, col.Type().String(), name)
	}
}
