package chtype

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a type-name string, as sent by the server in per-column
// metadata, into a Type. It rejects malformed input with an error naming
// the offending fragment, per §4.2.
func Parse(s string) (Type, error) {
	t, err := parseType(strings.TrimSpace(s))
	if err != nil {
		return Type{}, err
	}

	if err := t.Validate(); err != nil {
		return Type{}, err
	}

	return t, nil
}

func parseType(s string) (Type, error) {
	name, args, hasArgs := splitNameArgs(s)

	if !hasArgs {
		switch name {
		case "Point":
			return Point(), nil
		case "Ring":
			return Ring(), nil
		case "Polygon":
			return Polygon(), nil
		case "MultiPolygon":
			return MultiPolygon(), nil
		}

		if kind, ok := primitiveKinds[name]; ok {
			return Type{Kind: kind}, nil
		}
		if name == "DateTime" {
			return DateTime(""), nil
		}

		return Type{}, fmt.Errorf("chtype: unrecognized type %q", s)
	}

	switch name {
	case "FixedString":
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return Type{}, fmt.Errorf("chtype: invalid FixedString length in %q", s)
		}

		return FixedString(n), nil

	case "DateTime":
		tz, err := parseOptionalTimezone(args)
		if err != nil {
			return Type{}, fmt.Errorf("chtype: invalid DateTime args in %q: %w", s, err)
		}

		return DateTime(tz), nil

	case "DateTime64":
		parts := splitTopLevelArgs(args)
		if len(parts) < 1 || len(parts) > 2 {
			return Type{}, fmt.Errorf("chtype: invalid DateTime64 args in %q", s)
		}
		precision, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || precision < 0 || precision > 9 {
			return Type{}, fmt.Errorf("chtype: invalid DateTime64 precision in %q", s)
		}
		tz := ""
		if len(parts) == 2 {
			tz = unquote(strings.TrimSpace(parts[1]))
		}

		return DateTime64(precision, tz), nil

	case "Decimal":
		parts := splitTopLevelArgs(args)
		if len(parts) != 2 {
			return Type{}, fmt.Errorf("chtype: invalid Decimal args in %q", s)
		}
		p, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		sc, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return Type{}, fmt.Errorf("chtype: invalid Decimal(P,S) in %q", s)
		}

		return Decimal(p, sc), nil

	case "Decimal32", "Decimal64", "Decimal128", "Decimal256":
		sc, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return Type{}, fmt.Errorf("chtype: invalid %s(S) in %q", name, s)
		}
		p := map[string]int{"Decimal32": 9, "Decimal64": 18, "Decimal128": 38, "Decimal256": 76}[name]

		return Decimal(p, sc), nil

	case "Enum8", "Enum16":
		values, err := parseEnumValues(args)
		if err != nil {
			return Type{}, fmt.Errorf("chtype: invalid %s args in %q: %w", name, s, err)
		}
		if name == "Enum8" {
			return Enum8(values), nil
		}

		return Enum16(values), nil

	case "Nullable":
		elem, err := parseType(strings.TrimSpace(args))
		if err != nil {
			return Type{}, err
		}

		return Nullable(elem), nil

	case "Array":
		elem, err := parseType(strings.TrimSpace(args))
		if err != nil {
			return Type{}, err
		}

		return Array(elem), nil

	case "LowCardinality":
		elem, err := parseType(strings.TrimSpace(args))
		if err != nil {
			return Type{}, err
		}

		return LowCardinality(elem), nil

	case "Tuple":
		parts := splitTopLevelArgs(args)
		elems := make([]Type, len(parts))
		for i, p := range parts {
			elem, err := parseType(strings.TrimSpace(p))
			if err != nil {
				return Type{}, err
			}
			elems[i] = elem
		}

		return Tuple(elems...), nil

	case "Map":
		parts := splitTopLevelArgs(args)
		if len(parts) != 2 {
			return Type{}, fmt.Errorf("chtype: Map requires exactly 2 arguments in %q", s)
		}
		k, err := parseType(strings.TrimSpace(parts[0]))
		if err != nil {
			return Type{}, err
		}
		v, err := parseType(strings.TrimSpace(parts[1]))
		if err != nil {
			return Type{}, err
		}

		return Map(k, v), nil

	case "AggregateFunction":
		parts := splitTopLevelArgs(args)
		if len(parts) < 1 {
			return Type{}, fmt.Errorf("chtype: AggregateFunction requires a function name in %q", s)
		}
		elems := make([]Type, 0, len(parts)-1)
		for _, p := range parts[1:] {
			elem, err := parseType(strings.TrimSpace(p))
			if err != nil {
				return Type{}, err
			}
			elems = append(elems, elem)
		}

		return Type{
			Kind:                  KindAggregateFunction,
			AggregateFunctionName: strings.TrimSpace(parts[0]),
			Elems:                 elems,
		}, nil
	}

	return Type{}, fmt.Errorf("chtype: unrecognized parameterized type %q", s)
}

// splitNameArgs splits "Name(args)" into ("Name", "args", true), or returns
// (s, "", false) when s has no argument list.
func splitNameArgs(s string) (name string, args string, hasArgs bool) {
	i := strings.IndexByte(s, '(')
	if i < 0 {
		return s, "", false
	}
	if s[len(s)-1] != ')' {
		return s, "", false
	}

	return s[:i], s[i+1 : len(s)-1], true
}

// splitTopLevelArgs splits a comma-separated argument list, respecting
// nested parentheses and single-quoted string literals so that e.g.
// "Tuple(Int8, Tuple(Int8, Int8))" or "Enum8('a, b' = 1)" split correctly.
func splitTopLevelArgs(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' && (i == 0 || s[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
			// inside a quoted literal, ignore structural characters
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	return parts
}

func parseOptionalTimezone(args string) (string, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return "", nil
	}

	return unquote(args), nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}

	return s
}

func parseEnumValues(args string) ([]EnumValue, error) {
	parts := splitTopLevelArgs(args)
	values := make([]EnumValue, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		eq := strings.LastIndexByte(p, '=')
		if eq < 0 {
			return nil, fmt.Errorf("missing '=' in enum entry %q", p)
		}

		name := unquote(strings.TrimSpace(p[:eq]))
		value, err := strconv.Atoi(strings.TrimSpace(p[eq+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid enum value in %q", p)
		}

		values = append(values, EnumValue{Name: name, Value: int16(value)})
	}

	return values, nil
}
