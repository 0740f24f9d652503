package filter

import (
	"errors"
	"testing"
)

var (
	fStr = MustNew("str_col", OpEqual, String("x"))
	fInt = MustNew("int_col", OpEqual, Int(123))
	fLt  = MustNew("int_col", OpLess, Int(456))
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected Normalized
	}{
		{"NoFilters", NoFilters(), Normalized{}},
		{"ZeroInput", Input{}, Normalized{}},
		{"Single", Single(fStr), Normalized{{fStr}}},
		{"AllEmpty", All(), Normalized{}},
		{"AllOne", All(fStr), Normalized{{fStr}}},
		{"AllMany", All(fStr, fInt), Normalized{{fStr, fInt}}},
		{"AnyOfEmpty", AnyOf(), Normalized{}},
		{"AnyOfSingletons", AnyOf([]Filter{fStr}, []Filter{fInt}), Normalized{{fStr}, {fInt}}},
		{"AnyOfMixed", AnyOf([]Filter{fStr}, []Filter{fInt, fLt}), Normalized{{fStr}, {fInt, fLt}}},
		{"AnyOfKeepsEmptyGroup", AnyOf([]Filter{fStr}, nil), Normalized{{fStr}, {}}},
		{"KeepsDuplicates", All(fStr, fStr), Normalized{{fStr, fStr}}},
		{"KeepsOrder", AnyOf([]Filter{fLt, fInt}, []Filter{fStr}), Normalized{{fLt, fInt}, {fStr}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got == nil {
				t.Fatal("expected non-nil result")
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []Input{
		NoFilters(),
		Single(fStr),
		All(fStr, fInt),
		AnyOf([]Filter{fStr}, []Filter{fInt, fLt}),
		AnyOf([]Filter{}, []Filter{fInt}),
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once.Input())
		if !once.Equal(twice) {
			t.Errorf("expected %s to be stable, got %s", once, twice)
		}
	}
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	flat := []Filter{fStr, fInt}
	in := All(flat...)
	flat[0] = fLt

	got := Normalize(in)
	if !got[0][0].Equal(fStr) {
		t.Fatalf("input mutation leaked into normalized output: %s", got)
	}

	got[0][1] = fLt
	again := Normalize(in)
	if !again[0][1].Equal(fInt) {
		t.Errorf("output mutation leaked into input: %s", again)
	}

	groups := [][]Filter{{fStr}}
	nested := AnyOf(groups...)
	groups[0][0] = fLt
	if got := Normalize(nested); !got[0][0].Equal(fStr) {
		t.Errorf("nested input mutation leaked into normalized output: %s", got)
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected Normalized
	}{
		{"Nil", nil, Normalized{}},
		{"Input", All(fStr), Normalized{{fStr}}},
		{"Filter", fStr, Normalized{{fStr}}},
		{"FilterSlice", []Filter{fStr, fInt}, Normalized{{fStr, fInt}}},
		{"EmptyFilterSlice", []Filter{}, Normalized{}},
		{"Group", Group{fStr}, Normalized{{fStr}}},
		{"Nested", [][]Filter{{fStr}, {fInt, fLt}}, Normalized{{fStr}, {fInt, fLt}}},
		{"Groups", []Group{{fStr}, {fInt}}, Normalized{{fStr}, {fInt}}},
		{"Normalized", Normalized{{fStr}, {}}, Normalized{{fStr}, {}}},
		{"EmptyAny", []any{}, Normalized{}},
		{"AnyFilters", []any{fStr, fInt}, Normalized{{fStr, fInt}}},
		{"AnySequences", []any{[]Filter{fStr}, Group{fInt}, []any{fLt}}, Normalized{{fStr}, {fInt}, {fLt}}},
		{"AnyEmptySequence", []any{[]any{}}, Normalized{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeValue(tt.in)
			if err != nil {
				t.Fatalf("NormalizeValue failed: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNormalizeValueErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"FilterThenSequence", []any{fStr, []Filter{fInt}}},
		{"SequenceThenFilter", []any{[]Filter{fInt}, fStr}},
		{"NonFilterScalar", []any{"str_col"}},
		{"NonFilterInSequence", []any{[]any{fStr, 42}}},
		{"UnsupportedType", map[string]any{"column": "str_col"}},
		{"String", "str_col = 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeValue(tt.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if got != nil {
				t.Errorf("expected nil result on error, got %s", got)
			}
		})
	}
}
