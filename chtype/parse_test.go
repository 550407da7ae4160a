package chtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Primitives(t *testing.T) {
	cases := map[string]Kind{
		"Int8": KindInt8, "UInt64": KindUInt64, "Float64": KindFloat64,
		"UUID": KindUUID, "IPv4": KindIPv4, "IPv6": KindIPv6,
		"Date": KindDate, "Date32": KindDate32, "String": KindString,
		"Nothing": KindNothing,
	}

	for name, kind := range cases {
		got, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, kind, got.Kind, name)
		assert.Equal(t, name, got.String(), name)
	}
}

func TestParse_FixedString(t *testing.T) {
	got, err := Parse("FixedString(16)")
	require.NoError(t, err)
	assert.Equal(t, KindFixedString, got.Kind)
	assert.Equal(t, 16, got.FixedStringLength)
	assert.Equal(t, "FixedString(16)", got.String())
}

func TestParse_DateTime(t *testing.T) {
	got, err := Parse("DateTime")
	require.NoError(t, err)
	assert.Equal(t, "DateTime", got.String())

	got, err = Parse("DateTime('UTC')")
	require.NoError(t, err)
	assert.Equal(t, "UTC", got.Timezone)
	assert.Equal(t, "DateTime('UTC')", got.String())
}

func TestParse_DateTime64(t *testing.T) {
	got, err := Parse("DateTime64(3)")
	require.NoError(t, err)
	assert.Equal(t, 3, got.DateTimePrecision)
	assert.Equal(t, "DateTime64(3)", got.String())

	got, err = Parse("DateTime64(6, 'UTC')")
	require.NoError(t, err)
	assert.Equal(t, 6, got.DateTimePrecision)
	assert.Equal(t, "UTC", got.Timezone)
}

func TestParse_Decimal(t *testing.T) {
	got, err := Parse("Decimal(18, 4)")
	require.NoError(t, err)
	assert.Equal(t, 18, got.DecimalPrecision)
	assert.Equal(t, 4, got.DecimalScale)
	assert.Equal(t, 8, got.DecimalWidth())

	got, err = Parse("Decimal32(2)")
	require.NoError(t, err)
	assert.Equal(t, 9, got.DecimalPrecision)
	assert.Equal(t, 4, got.DecimalWidth())

	got, err = Parse("Decimal128(10)")
	require.NoError(t, err)
	assert.Equal(t, 16, got.DecimalWidth())
}

func TestParse_Enum(t *testing.T) {
	got, err := Parse("Enum8('a' = 1, 'b' = 2)")
	require.NoError(t, err)
	require.Len(t, got.EnumValues, 2)
	assert.Equal(t, "a", got.EnumValues[0].Name)
	assert.Equal(t, int16(1), got.EnumValues[0].Value)
	assert.Equal(t, "Enum8('a' = 1, 'b' = 2)", got.String())
}

func TestParse_NestedCompounds(t *testing.T) {
	got, err := Parse("Array(Nullable(String))")
	require.NoError(t, err)
	assert.Equal(t, KindArray, got.Kind)
	assert.Equal(t, KindNullable, got.Elem.Kind)
	assert.Equal(t, KindString, got.Elem.Elem.Kind)
	assert.Equal(t, "Array(Nullable(String))", got.String())
}

func TestParse_Tuple(t *testing.T) {
	got, err := Parse("Tuple(Int8, Tuple(Int8, Int8), String)")
	require.NoError(t, err)
	require.Len(t, got.Elems, 3)
	assert.Equal(t, KindTuple, got.Elems[1].Kind)
	assert.Equal(t, "Tuple(Int8, Tuple(Int8, Int8), String)", got.String())
}

func TestParse_Map(t *testing.T) {
	got, err := Parse("Map(UUID, LowCardinality(Nullable(String)))")
	require.NoError(t, err)
	assert.Equal(t, KindMap, got.Kind)
	assert.Equal(t, KindUUID, got.Elems[0].Kind)
	assert.Equal(t, KindLowCardinality, got.Elems[1].Kind)
}

func TestParse_AggregateFunction(t *testing.T) {
	got, err := Parse("AggregateFunction(sum, UInt64)")
	require.NoError(t, err)
	assert.Equal(t, KindAggregateFunction, got.Kind)
	assert.Equal(t, "sum", got.AggregateFunctionName)
	assert.Equal(t, KindUInt64, got.Elems[0].Kind)
}

func TestParse_GeoAliases(t *testing.T) {
	got, err := Parse("Ring")
	require.NoError(t, err)
	assert.Equal(t, KindArray, got.Kind)
	assert.Equal(t, KindTuple, got.Elem.Kind)
	assert.Equal(t, "Array(Tuple(Float64, Float64))", got.String())
}

func TestParse_RejectsInvalidNesting(t *testing.T) {
	_, err := Parse("Nullable(Array(UInt8))")
	assert.Error(t, err)

	_, err = Parse("Nullable(LowCardinality(String))")
	assert.Error(t, err)
}

func TestParse_RejectsMalformed(t *testing.T) {
	_, err := Parse("NotAType")
	assert.Error(t, err)

	_, err = Parse("FixedString(notanumber)")
	assert.Error(t, err)
}

func TestParse_IsIdentityWithString(t *testing.T) {
	inputs := []string{
		"Int64", "String", "Array(UInt64)",
		"Nullable(Float64)", "Tuple(String, Int32)",
		"LowCardinality(String)", "Decimal(9,2)",
		"FixedString(4)",
	}

	for _, in := range inputs {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, got.String(), in)
	}
}
