package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DuckDBEncoder encodes predicates to DuckDB SQL syntax.
type DuckDBEncoder struct {
	opts *EncoderOptions
}

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
// If opts is nil, default options are used.
func NewDuckDBEncoder(opts *EncoderOptions) *DuckDBEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	return &DuckDBEncoder{opts: opts}
}

// Encode implements Encoder.
func (e *DuckDBEncoder) Encode(expr Expression) string {
	if IsAlwaysTrue(expr) {
		return ""
	}
	return e.encode(collapse(expr))
}

func (e *DuckDBEncoder) encode(expr Expression) string {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		return e.encodeColumn(ex.Column) + comparisonOperator(ex.ExprType, true) + e.formatValue(ex.Value)
	case *InExpression:
		return e.encodeIn(ex)
	case *LikeExpression:
		return e.encodeColumn(ex.Column) + " LIKE " + quoteLiteral(ex.Pattern)
	case *ArrayContainsExpression:
		return e.opts.arrayContains("list_contains") + "(" + e.encodeColumn(ex.Column) + ", " + e.formatValue(ex.Value) + ")"
	case *ConjunctionExpression:
		if IsAlwaysFalse(ex) {
			return "FALSE"
		}
		return encodeConjunction(ex, e.encode)
	default:
		return ""
	}
}

// encodeIn encodes IN/NOT IN expressions.
func (e *DuckDBEncoder) encodeIn(in *InExpression) string {
	values := make([]string, len(in.Values))
	for i, v := range in.Values {
		values[i] = e.formatValue(v)
	}

	op := " IN "
	if in.Negated {
		op = " NOT IN "
	}

	return e.encodeColumn(in.Column) + op + "(" + strings.Join(values, ", ") + ")"
}

// encodeColumn encodes a column reference.
func (e *DuckDBEncoder) encodeColumn(name string) string {
	return e.opts.column(name, quoteIdentifier)
}

// formatValue formats a Value as a DuckDB SQL literal.
func (e *DuckDBEncoder) formatValue(v Value) string {
	switch v.kind {
	case KindBool:
		if v.bool {
			return "TRUE"
		}
		return "FALSE"
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return e.formatFloatValue(v.float)
	case KindDecimal:
		return v.dec.ToString(v.scale)
	case KindString:
		return quoteLiteral(v.str)
	case KindDate:
		return "DATE '" + v.time.Format(time.DateOnly) + "'"
	case KindTimestamp:
		return e.formatTimestampValue(v.time)
	case KindUUID:
		return quoteLiteral(v.uuid.String())
	case KindList:
		parts := make([]string, len(v.list))
		for i, child := range v.list {
			parts[i] = e.formatValue(child)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "NULL"
	}
}

// formatFloatValue formats a floating-point value.
func (e *DuckDBEncoder) formatFloatValue(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	switch s {
	case "NaN":
		return "'NaN'::DOUBLE"
	case "+Inf":
		return "'Infinity'::DOUBLE"
	case "-Inf":
		return "'-Infinity'::DOUBLE"
	}
	return s
}

// formatTimestampValue formats a timestamp with its UTC offset.
func (e *DuckDBEncoder) formatTimestampValue(t time.Time) string {
	formatted := t.Format("2006-01-02 15:04:05")
	if micros := t.Nanosecond() / 1000; micros != 0 {
		formatted = fmt.Sprintf("%s.%06d", formatted, micros)
	}
	return "TIMESTAMPTZ '" + formatted + t.Format("-07:00") + "'"
}
