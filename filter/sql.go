package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SQLEncoder encodes predicates in the dialect consumed by the lake query
// engine (DataFusion flavoured): identifiers are always double-quoted, binary
// comparisons carry no surrounding spaces and list membership uses array_contains.
type SQLEncoder struct {
	opts *EncoderOptions
}

// NewSQLEncoder creates a new default dialect encoder.
// If opts is nil, default options are used.
func NewSQLEncoder(opts *EncoderOptions) *SQLEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	return &SQLEncoder{opts: opts}
}

var defaultEncoder = NewSQLEncoder(nil)

// Render encodes expr with the default SQL encoder.
func Render(expr Expression) string {
	return defaultEncoder.Encode(expr)
}

// Encode implements Encoder.
func (e *SQLEncoder) Encode(expr Expression) string {
	if IsAlwaysTrue(expr) {
		return ""
	}
	return e.encode(collapse(expr))
}

func (e *SQLEncoder) encode(expr Expression) string {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		return e.column(ex.Column) + comparisonOperator(ex.ExprType, false) + formatLiteral(ex.Value)
	case *InExpression:
		op := " IN "
		if ex.Negated {
			op = " NOT IN "
		}
		return e.column(ex.Column) + op + formatList(ex.Values, formatLiteral)
	case *LikeExpression:
		return e.column(ex.Column) + " LIKE " + quoteLiteral(ex.Pattern)
	case *ArrayContainsExpression:
		return e.opts.arrayContains("array_contains") + "(" + e.column(ex.Column) + "," + formatLiteral(ex.Value) + ")"
	case *ConjunctionExpression:
		if IsAlwaysFalse(ex) {
			return "false"
		}
		return encodeConjunction(ex, e.encode)
	default:
		return ""
	}
}

func (e *SQLEncoder) column(name string) string {
	return e.opts.column(name, quoteAlways)
}

// comparisonOperator returns the SQL spelling of a scalar comparison type.
func comparisonOperator(t ExpressionType, spaced bool) string {
	var op string
	switch t {
	case TypeCompareEqual:
		op = "="
	case TypeCompareNotEqual:
		op = "<>"
	case TypeCompareLessThan:
		op = "<"
	case TypeCompareLessThanOrEqual:
		op = "<="
	case TypeCompareGreaterThan:
		op = ">"
	case TypeCompareGreaterThanOrEqual:
		op = ">="
	}
	if spaced {
		return " " + op + " "
	}
	return op
}

// formatLiteral renders a scalar in the default dialect.
func formatLiteral(v Value) string {
	switch v.kind {
	case KindString:
		return quoteLiteral(v.str)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return formatFloat(v.float)
	case KindBool:
		if v.bool {
			return "true"
		}
		return "false"
	case KindTimestamp:
		return "'" + formatISOTimestamp(v.time) + "'"
	case KindDate:
		return "'" + v.time.Format(time.DateOnly) + "'"
	case KindDecimal:
		return v.dec.ToString(v.scale)
	case KindUUID:
		return quoteLiteral(v.uuid.String())
	case KindList:
		return formatList(v.list, formatLiteral)
	default:
		return "NULL"
	}
}

// formatList renders a parenthesized, comma-separated list with no spaces.
// A single element gets no trailing comma.
func formatList(values []Value, format func(Value) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// formatFloat renders the shortest representation that round-trips, in fixed
// notation for decimal exponents in [-4, 16) and with ".0" for integral values.
// Non-finite values become quoted strings that SQL engines cast to DOUBLE.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "'NaN'"
	case math.IsInf(f, 1):
		return "'Infinity'"
	case math.IsInf(f, -1):
		return "'-Infinity'"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// formatISOTimestamp renders t as ISO-8601 with a numeric UTC offset, adding
// microseconds only when they are non-zero.
func formatISOTimestamp(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05")
	if micros := t.Nanosecond() / 1000; micros != 0 {
		s += fmt.Sprintf(".%06d", micros)
	}
	return s + t.Format("-07:00")
}
