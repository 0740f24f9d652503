package filter

import (
	"fmt"
	"strings"
)

// Operator is a filter operator, spelled the way catalog definitions spell it.
type Operator string

const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpIn             Operator = "in"
	OpNotIn          Operator = "not in"
	OpContains       Operator = "contains"
	OpIncludes       Operator = "includes"
	OpIncludesAny    Operator = "includes any"
	OpIncludesAll    Operator = "includes all"
)

// Operators lists every recognized operator.
var Operators = []Operator{
	OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual,
	OpIn, OpNotIn, OpContains, OpIncludes, OpIncludesAny, OpIncludesAll,
}

// ParseOperator returns the operator with the given spelling.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if !op.Valid() {
		return "", newError(ErrInvalidOperator, "", op, fmt.Sprintf("invalid operator %q", s))
	}
	return op, nil
}

// Valid reports whether o is a recognized operator.
func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual,
		OpIn, OpNotIn, OpContains, OpIncludes, OpIncludesAny, OpIncludesAll:
		return true
	}
	return false
}

// IsArrayOperator reports whether o only applies to list columns.
func (o Operator) IsArrayOperator() bool {
	return o == OpIncludes || o == OpIncludesAny || o == OpIncludesAll
}

// TakesSequence reports whether o expects a non-empty sequence value.
func (o Operator) TakesSequence() bool {
	return o == OpIn || o == OpNotIn || o == OpIncludesAny || o == OpIncludesAll
}

// Filter is a single predicate on one column.
// Filters are values: copy them freely, never mutate a shared one.
type Filter struct {
	Column string
	Op     Operator
	Value  Value
}

// New builds a validated filter.
func New(column string, op Operator, value Value) (Filter, error) {
	f := Filter{Column: column, Op: op, Value: value}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// MustNew is like New but panics on invalid input.
// Intended for static table definitions and tests.
func MustNew(column string, op Operator, value Value) Filter {
	f, err := New(column, op, value)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate checks the schema-independent invariants of the filter.
func (f Filter) Validate() error {
	if f.Column == "" {
		return newError(ErrInvalidInput, "", f.Op, "filter column must not be empty")
	}
	if !f.Op.Valid() {
		return newError(ErrInvalidOperator, f.Column, f.Op, fmt.Sprintf("invalid operator %q", string(f.Op)))
	}
	if !f.Value.IsValid() {
		return newError(ErrTypeMismatch, f.Column, f.Op, fmt.Sprintf("filter on %s has no value", f.Column))
	}

	switch {
	case f.Op.TakesSequence():
		if !f.Value.IsList() {
			return newError(ErrTypeMismatch, f.Column, f.Op,
				fmt.Sprintf("operator %s on %s requires a sequence value, got %s", f.Op, f.Column, f.Value.Kind()))
		}
		if f.Value.Len() == 0 {
			return newError(ErrEmptyValueSequence, f.Column, f.Op,
				fmt.Sprintf("operator %s on %s requires at least one value", f.Op, f.Column))
		}
		for _, elem := range f.Value.list {
			if !elem.IsScalar() {
				return newError(ErrTypeMismatch, f.Column, f.Op,
					fmt.Sprintf("operator %s on %s requires scalar elements, got %s", f.Op, f.Column, elem.Kind()))
			}
		}
	case f.Op == OpContains:
		if f.Value.Kind() != KindString {
			return newError(ErrTypeMismatch, f.Column, f.Op,
				fmt.Sprintf("operator contains on %s requires a string value, got %s", f.Column, f.Value.Kind()))
		}
	default:
		if !f.Value.IsScalar() {
			return newError(ErrTypeMismatch, f.Column, f.Op,
				fmt.Sprintf("operator %s on %s requires a scalar value, got %s", f.Op, f.Column, f.Value.Kind()))
		}
	}
	return nil
}

// Equal reports whether column, operator and value are all equal.
func (f Filter) Equal(o Filter) bool {
	return f.Column == o.Column && f.Op == o.Op && f.Value.Equal(o.Value)
}

func (f Filter) String() string {
	return f.Column + " " + string(f.Op) + " " + f.Value.String()
}

// Group is an AND-combined list of filters. Order is kept for deterministic rendering.
type Group []Filter

// Equal reports whether both groups hold equal filters in the same order.
func (g Group) Equal(o Group) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if !g[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (g Group) String() string {
	parts := make([]string, len(g))
	for i, f := range g {
		parts[i] = f.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Normalized is the canonical OR-of-ANDs form consumed by Compile.
// An empty Normalized means no filtering at all.
type Normalized []Group

// Equal reports whether both forms hold equal groups in the same order.
func (n Normalized) Equal(o Normalized) bool {
	if len(n) != len(o) {
		return false
	}
	for i := range n {
		if !n[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Input returns n in the nested input shape, so it can be normalized again.
func (n Normalized) Input() Input {
	groups := make([][]Filter, len(n))
	for i, g := range n {
		groups[i] = g
	}
	return AnyOf(groups...)
}

func (n Normalized) String() string {
	parts := make([]string, len(n))
	for i, g := range n {
		parts[i] = g.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
