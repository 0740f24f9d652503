package filter

import (
	"fmt"
	"reflect"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/google/uuid"
)

// ValueKind identifies the literal type carried by a Value.
type ValueKind string

const (
	KindInvalid   ValueKind = ""
	KindString    ValueKind = "string"
	KindInt       ValueKind = "int"
	KindFloat     ValueKind = "float"
	KindBool      ValueKind = "bool"
	KindTimestamp ValueKind = "timestamp"
	KindDate      ValueKind = "date"
	KindDecimal   ValueKind = "decimal"
	KindUUID      ValueKind = "uuid"
	KindList      ValueKind = "list"
)

// Value is an immutable filter literal: a single scalar or a sequence of scalars.
// The zero Value is invalid and is rejected by filter validation.
type Value struct {
	kind  ValueKind
	str   string
	num   int64
	float float64
	bool  bool
	time  time.Time
	dec   decimal128.Num
	scale int32
	uuid  uuid.UUID
	list  []Value
}

// String returns a string literal.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer literal.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a floating-point literal.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// Bool returns a boolean literal.
func Bool(b bool) Value { return Value{kind: KindBool, bool: b} }

// Timestamp returns a timestamp literal. The location of t is kept and
// rendered as the UTC offset. Literals carry microsecond precision, the finest
// unit SQL engines accept; t is truncated to it.
func Timestamp(t time.Time) Value {
	return Value{kind: KindTimestamp, time: t.Truncate(time.Microsecond)}
}

// Date returns a calendar date literal built from the year, month and day of t
// in its own location.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Decimal returns a fixed-point literal with the given scale.
func Decimal(n decimal128.Num, scale int32) Value {
	return Value{kind: KindDecimal, dec: n, scale: scale}
}

// UUID returns a UUID literal. It is rendered as a quoted string.
func UUID(u uuid.UUID) Value { return Value{kind: KindUUID, uuid: u} }

// List returns a sequence literal. The elements are copied.
func List(values ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), values...)}
}

// Strings is a shorthand for a sequence of string literals.
func Strings(values ...string) Value {
	list := make([]Value, len(values))
	for i, s := range values {
		list[i] = String(s)
	}
	return Value{kind: KindList, list: list}
}

// Ints is a shorthand for a sequence of integer literals.
func Ints(values ...int64) Value {
	list := make([]Value, len(values))
	for i, n := range values {
		list[i] = Int(n)
	}
	return Value{kind: KindList, list: list}
}

// ValueOf converts a dynamically typed Go value into a Value.
// Supported inputs are strings, signed and unsigned integers, floats, booleans,
// time.Time (as a timestamp), uuid.UUID, Value itself and slices or arrays of
// any of those. Unsigned values above math.MaxInt64 are rejected.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint:
		return uintValue(uint64(x))
	case uint64:
		return uintValue(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case time.Time:
		return Timestamp(x), nil
	case uuid.UUID:
		return UUID(x), nil
	case []any:
		list := make([]Value, 0, len(x))
		for _, item := range x {
			elem, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			list = append(list, elem)
		}
		return Value{kind: KindList, list: list}, nil
	case nil:
		return Value{}, newError(ErrTypeMismatch, "", "", "null is not a supported filter value")
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			list = append(list, elem)
		}
		return Value{kind: KindList, list: list}, nil
	}

	return Value{}, newError(ErrTypeMismatch, "", "", fmt.Sprintf("unsupported filter value type %T", v))
}

func uintValue(u uint64) (Value, error) {
	if u > 1<<63-1 {
		return Value{}, newError(ErrTypeMismatch, "", "", fmt.Sprintf("integer value %d overflows int64", u))
	}
	return Int(int64(u)), nil
}

// Kind returns the literal kind.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsList reports whether v is a sequence.
func (v Value) IsList() bool { return v.kind == KindList }

// IsScalar reports whether v is a valid non-sequence literal.
func (v Value) IsScalar() bool { return v.kind != KindInvalid && v.kind != KindList }

// Len returns the number of elements of a sequence, or 0 for scalars.
func (v Value) Len() int { return len(v.list) }

// Elements returns a copy of the sequence elements. Scalars yield nil.
func (v Value) Elements() []Value {
	if v.kind != KindList {
		return nil
	}
	return append([]Value(nil), v.list...)
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) { return v.num, v.kind == KindInt }

// AsFloat returns the floating-point payload.
func (v Value) AsFloat() (float64, bool) { return v.float, v.kind == KindFloat }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.bool, v.kind == KindBool }

// AsTime returns the payload of timestamp and date literals.
func (v Value) AsTime() (time.Time, bool) {
	return v.time, v.kind == KindTimestamp || v.kind == KindDate
}

// AsDecimal returns the unscaled number and its scale.
func (v Value) AsDecimal() (decimal128.Num, int32, bool) {
	return v.dec, v.scale, v.kind == KindDecimal
}

// AsUUID returns the UUID payload.
func (v Value) AsUUID() (uuid.UUID, bool) { return v.uuid, v.kind == KindUUID }

// Equal reports whether two literals are of the same kind and hold equal payloads.
// Timestamps must be the same instant at the same UTC offset, so equal literals
// always render the same SQL.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindFloat:
		return v.float == o.float
	case KindBool:
		return v.bool == o.bool
	case KindTimestamp, KindDate:
		_, offset := v.time.Zone()
		_, otherOffset := o.time.Zone()
		return v.time.Equal(o.time) && offset == otherOffset
	case KindDecimal:
		return v.dec == o.dec && v.scale == o.scale
	case KindUUID:
		return v.uuid == o.uuid
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the literal the way the default SQL encoder does.
func (v Value) String() string {
	if v.kind == KindList {
		return formatList(v.list, formatLiteral)
	}
	return formatLiteral(v)
}
