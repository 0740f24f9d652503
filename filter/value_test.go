package filter

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestValueOf(t *testing.T) {
	ts := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")

	tests := []struct {
		name     string
		in       any
		expected Value
	}{
		{"String", "x", String("x")},
		{"Int", 1, Int(1)},
		{"Int8", int8(-3), Int(-3)},
		{"Int32", int32(7), Int(7)},
		{"Uint16", uint16(9), Int(9)},
		{"Uint64", uint64(math.MaxInt64), Int(math.MaxInt64)},
		{"Float32", float32(0.5), Float(0.5)},
		{"Float64", 2.25, Float(2.25)},
		{"Bool", true, Bool(true)},
		{"Time", ts, Timestamp(ts)},
		{"UUID", id, UUID(id)},
		{"Value", Int(4), Int(4)},
		{"AnySlice", []any{1, "a"}, List(Int(1), String("a"))},
		{"TypedSlice", []int64{1, 2}, Ints(1, 2)},
		{"StringArray", [2]string{"a", "b"}, Strings("a", "b")},
		{"EmptySlice", []string{}, List()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.in)
			if err != nil {
				t.Fatalf("ValueOf failed: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s (%s), got %s (%s)", tt.expected, tt.expected.Kind(), got, got.Kind())
			}
		})
	}
}

func TestValueOfErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"Nil", nil},
		{"Overflow", uint64(math.MaxUint64)},
		{"Map", map[string]int{"a": 1}},
		{"Struct", struct{}{}},
		{"NilInSlice", []any{1, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValueOf(tt.in); !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("expected ErrTypeMismatch, got %v", err)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	utc := time.Date(2024, 4, 5, 12, 0, 0, 0, time.UTC)
	plus2 := utc.In(time.FixedZone("", 2*3600))

	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"SameInt", Int(1), Int(1), true},
		{"IntVsFloat", Int(1), Float(1), false},
		{"IntVsString", Int(1), String("1"), false},
		// Same instant, different rendered offset
		{"SameInstantOtherOffset", Timestamp(utc), Timestamp(plus2), false},
		{"SameInstantSameOffset", Timestamp(plus2), Timestamp(utc.In(time.FixedZone("CEST", 2*3600))), true},
		{"SubMicrosecondIgnored", Timestamp(utc.Add(999)), Timestamp(utc), true},
		{"DateVsTimestamp", Date(utc), Timestamp(utc), false},
		{"DateIgnoresClock", Date(utc), Date(utc.Add(3 * time.Hour)), true},
		{"DecimalScale", Decimal(decimal128.FromI64(10), 1), Decimal(decimal128.FromI64(10), 2), false},
		{"ListOrder", Ints(1, 2), Ints(2, 1), false},
		{"ListSame", Strings("a", "b"), Strings("a", "b"), true},
		{"Invalid", Value{}, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("expected %v, got %v", tt.equal, got)
			}
		})
	}
}

func TestValueEqualMatchesRendering(t *testing.T) {
	utc := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	values := []Value{
		Timestamp(utc),
		Timestamp(utc.In(time.FixedZone("", 2*3600))),
		Timestamp(utc.Add(time.Microsecond)),
		Timestamp(utc.Add(999)),
		Date(utc),
	}

	for i, a := range values {
		for j, b := range values {
			if a.Equal(b) != (a.String() == b.String()) {
				t.Errorf("values %d and %d: Equal=%v but rendered '%s' and '%s'", i, j, a.Equal(b), a, b)
			}
		}
	}
}

func TestTimestampMicrosecondPrecision(t *testing.T) {
	ts := Timestamp(time.Date(2024, 4, 5, 1, 2, 3, 123456789, time.UTC))

	got, _ := ts.AsTime()
	if got.Nanosecond() != 123456000 {
		t.Errorf("expected truncation to 123456000ns, got %d", got.Nanosecond())
	}
	if expected := "'2024-04-05T01:02:03.123456+00:00'"; ts.String() != expected {
		t.Errorf("expected '%s', got '%s'", expected, ts.String())
	}
}

func TestValueIsImmutable(t *testing.T) {
	elems := []Value{Int(1), Int(2)}
	v := List(elems...)
	elems[0] = Int(9)

	if !v.Equal(Ints(1, 2)) {
		t.Fatalf("List shares its argument: %s", v)
	}

	out := v.Elements()
	out[1] = Int(9)
	if !v.Equal(Ints(1, 2)) {
		t.Errorf("Elements shares the backing array: %s", v)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{String("it's"), `'it''s'`},
		{Int(-7), "-7"},
		{Bool(false), "false"},
		{Float(math.NaN()), "'NaN'"},
		{Float(math.Inf(-1)), "'-Infinity'"},
		{Ints(1, 2), "(1,2)"},
		{Value{}, "NULL"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.expected {
			t.Errorf("expected '%s', got '%s'", tt.expected, got)
		}
	}
}

func TestOperators(t *testing.T) {
	for _, op := range Operators {
		parsed, err := ParseOperator(string(op))
		if err != nil {
			t.Errorf("ParseOperator(%q) failed: %v", op, err)
		}
		if parsed != op {
			t.Errorf("expected %q, got %q", op, parsed)
		}
	}

	for _, s := range []string{"", "==", "IN", "like", "includes_any"} {
		if _, err := ParseOperator(s); !errors.Is(err, ErrInvalidOperator) {
			t.Errorf("ParseOperator(%q): expected ErrInvalidOperator, got %v", s, err)
		}
	}
}

func TestErrorGRPCStatus(t *testing.T) {
	_, err := New("int_col", OpIn, List())
	if err == nil {
		t.Fatal("expected error")
	}

	if code := status.Code(err); code != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", code)
	}

	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected error to carry a gRPC status")
	}
	if st.Message() != err.Error() {
		t.Errorf("expected message '%s', got '%s'", err.Error(), st.Message())
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustNew to panic")
		}
	}()
	MustNew("", OpEqual, Int(1))
}
