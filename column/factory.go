package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
)

// Factory instantiates the concrete Column implementation for t, recursing
// into compound types' elements. It plays the same role mebo's
// blob.NumericEncoderConfig-driven construction does, generalized to the
// full recursive grammar package chtype parses.
func Factory(t chtype.Type) (Column, error) {
	switch t.Kind {
	case chtype.KindInt8:
		return NewInt8Column(), nil
	case chtype.KindInt16:
		return NewInt16Column(), nil
	case chtype.KindInt32:
		return NewInt32Column(), nil
	case chtype.KindInt64:
		return NewInt64Column(), nil
	case chtype.KindInt128:
		return NewInt128Column(), nil
	case chtype.KindUInt8:
		return NewUInt8Column(), nil
	case chtype.KindUInt16:
		return NewUInt16Column(), nil
	case chtype.KindUInt32:
		return NewUInt32Column(), nil
	case chtype.KindUInt64:
		return NewUInt64Column(), nil
	case chtype.KindUInt128:
		return NewUInt128Column(), nil
	case chtype.KindFloat32:
		return NewFloat32Column(), nil
	case chtype.KindFloat64:
		return NewFloat64Column(), nil
	case chtype.KindUUID:
		return NewUUIDColumn(), nil
	case chtype.KindIPv4:
		return NewIPv4Column(), nil
	case chtype.KindIPv6:
		return NewIPv6Column(), nil
	case chtype.KindDate:
		return NewDateColumn(), nil
	case chtype.KindDate32:
		return NewDate32Column(), nil
	case chtype.KindDateTime:
		return NewDateTimeColumn(t.Timezone), nil
	case chtype.KindDateTime64:
		return NewDateTime64Column(t.DateTimePrecision, t.Timezone), nil
	case chtype.KindDecimal:
		return NewDecimalColumn(t.DecimalPrecision, t.DecimalScale)
	case chtype.KindString:
		return NewStringColumn(), nil
	case chtype.KindFixedString:
		return NewFixedStringColumn(t.FixedStringLength), nil
	case chtype.KindEnum8:
		return NewEnum8Column(t.EnumValues), nil
	case chtype.KindEnum16:
		return NewEnum16Column(t.EnumValues), nil
	case chtype.KindNothing:
		return NewNothingColumn(), nil

	case chtype.KindNullable:
		nested, err := Factory(*t.Elem)
		if err != nil {
			return nil, err
		}

		return NewNullableColumn(nested), nil

	case chtype.KindArray:
		nested, err := Factory(*t.Elem)
		if err != nil {
			return nil, err
		}

		return NewArrayColumn(nested), nil

	case chtype.KindTuple:
		elems := make([]Column, len(t.Elems))
		for i, et := range t.Elems {
			c, err := Factory(et)
			if err != nil {
				return nil, err
			}
			elems[i] = c
		}

		return NewTupleColumn(elems...), nil

	case chtype.KindMap:
		key, err := Factory(t.Elems[0])
		if err != nil {
			return nil, err
		}
		value, err := Factory(t.Elems[1])
		if err != nil {
			return nil, err
		}

		return NewMapColumn(key, value), nil

	case chtype.KindLowCardinality:
		elem := *t.Elem
		nullable := elem.Kind == chtype.KindNullable
		dictType := elem
		if nullable {
			dictType = *elem.Elem
		}

		dict, err := Factory(dictType)
		if err != nil {
			return nil, err
		}

		return NewLowCardinalityColumn(dict, nullable), nil

	case chtype.KindAggregateFunction:
		return nil, errs.Unsupported("AggregateFunction columns are not supported")

	default:
		return nil, errs.Unsupported("no column codec for kind %s", t.Kind)
	}
}
