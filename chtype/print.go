package chtype

import (
	"strconv"
	"strings"
)

// String renders t as the canonical type-name string the server expects,
// the exact inverse of Parse.
func (t Type) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t Type) writeTo(b *strings.Builder) {
	switch t.Kind {
	case KindFixedString:
		b.WriteString("FixedString(")
		b.WriteString(strconv.Itoa(t.FixedStringLength))
		b.WriteByte(')')
	case KindDecimal:
		b.WriteString("Decimal(")
		b.WriteString(strconv.Itoa(t.DecimalPrecision))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(t.DecimalScale))
		b.WriteByte(')')
	case KindDateTime:
		b.WriteString("DateTime")
		if t.Timezone != "" {
			b.WriteByte('(')
			b.WriteByte('\'')
			b.WriteString(t.Timezone)
			b.WriteByte('\'')
			b.WriteByte(')')
		}
	case KindDateTime64:
		b.WriteString("DateTime64(")
		b.WriteString(strconv.Itoa(t.DateTimePrecision))
		if t.Timezone != "" {
			b.WriteString(", '")
			b.WriteString(t.Timezone)
			b.WriteByte('\'')
		}
		b.WriteByte(')')
	case KindEnum8, KindEnum16:
		b.WriteString(t.Kind.String())
		b.WriteByte('(')
		for i, ev := range t.EnumValues {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('\'')
			b.WriteString(ev.Name)
			b.WriteByte('\'')
			b.WriteString(" = ")
			b.WriteString(strconv.Itoa(int(ev.Value)))
		}
		b.WriteByte(')')
	case KindNullable, KindArray, KindLowCardinality:
		b.WriteString(t.Kind.String())
		b.WriteByte('(')
		t.Elem.writeTo(b)
		b.WriteByte(')')
	case KindTuple:
		b.WriteString("Tuple(")
		for i := range t.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			t.Elems[i].writeTo(b)
		}
		b.WriteByte(')')
	case KindMap:
		b.WriteString("Map(")
		t.Elems[0].writeTo(b)
		b.WriteString(", ")
		t.Elems[1].writeTo(b)
		b.WriteByte(')')
	case KindAggregateFunction:
		b.WriteString("AggregateFunction(")
		b.WriteString(t.AggregateFunctionName)
		for _, e := range t.Elems {
			b.WriteString(", ")
			e.writeTo(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString(t.Kind.String())
	}
}
