package filter

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Compile translates normalized filters into a predicate over schema.
// Groups are OR'ed and the filters inside a group are AND'ed, both in input order.
// Empty filters, or any empty group, compile to the always-true predicate.
// Compilation is all-or-nothing: on error the returned expression is nil.
func Compile(schema *arrow.Schema, filters Normalized) (Expression, error) {
	if schema == nil {
		return nil, newError(ErrInvalidInput, "", "", "schema must not be nil")
	}

	matchAll := len(filters) == 0
	groups := make([]Expression, 0, len(filters))
	for _, g := range filters {
		if len(g) == 0 {
			matchAll = true
			continue
		}
		expr, err := CompileGroup(schema, g)
		if err != nil {
			return nil, err
		}
		groups = append(groups, expr)
	}

	if matchAll {
		return AlwaysTrue(), nil
	}
	return Or(groups...), nil
}

// CompileGroup translates one AND group.
func CompileGroup(schema *arrow.Schema, group Group) (Expression, error) {
	if len(group) == 0 {
		return AlwaysTrue(), nil
	}
	exprs := make([]Expression, 0, len(group))
	for _, f := range group {
		expr, err := CompileFilter(schema, f)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return And(exprs...), nil
}

// CompileFilter validates f against schema and translates it.
func CompileFilter(schema *arrow.Schema, f Filter) (Expression, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	field, ok := lookupField(schema, f.Column)
	if !ok {
		return nil, newError(ErrUnknownColumn, f.Column, f.Op, "invalid column name "+f.Column)
	}

	switch f.Op {
	case OpEqual:
		return compare(TypeCompareEqual, f), nil
	case OpNotEqual:
		return compare(TypeCompareNotEqual, f), nil
	case OpLess:
		return compare(TypeCompareLessThan, f), nil
	case OpLessOrEqual:
		return compare(TypeCompareLessThanOrEqual, f), nil
	case OpGreater:
		return compare(TypeCompareGreaterThan, f), nil
	case OpGreaterOrEqual:
		return compare(TypeCompareGreaterThanOrEqual, f), nil
	case OpIn:
		return &InExpression{Column: f.Column, Values: f.Value.Elements()}, nil
	case OpNotIn:
		return &InExpression{Column: f.Column, Values: f.Value.Elements(), Negated: true}, nil
	case OpContains:
		s, _ := f.Value.AsString()
		return &LikeExpression{Column: f.Column, Pattern: "%" + s + "%"}, nil
	case OpIncludes, OpIncludesAny, OpIncludesAll:
		if !isListType(field.Type) {
			return nil, newError(ErrTypeMismatch, f.Column, f.Op,
				fmt.Sprintf("operator %s requires a list column, %s is %s", f.Op, f.Column, field.Type))
		}
		values := []Value{f.Value}
		if f.Op != OpIncludes {
			values = f.Value.Elements()
		}
		exprs := make([]Expression, len(values))
		for i, v := range values {
			exprs[i] = &ArrayContainsExpression{Column: f.Column, Value: v}
		}
		if f.Op == OpIncludesAll {
			return And(exprs...), nil
		}
		return Or(exprs...), nil
	default:
		return nil, newError(ErrInvalidOperator, f.Column, f.Op, fmt.Sprintf("invalid operator %q", string(f.Op)))
	}
}

// CompileSQL compiles filters and renders them with the default SQL encoder.
// Returns empty string when the filters match every row.
func CompileSQL(schema *arrow.Schema, filters Normalized) (string, error) {
	expr, err := Compile(schema, filters)
	if err != nil {
		return "", err
	}
	return Render(expr), nil
}

func compare(t ExpressionType, f Filter) Expression {
	return &ComparisonExpression{ExprType: t, Column: f.Column, Value: f.Value}
}

func lookupField(schema *arrow.Schema, name string) (arrow.Field, bool) {
	idx := schema.FieldIndices(name)
	if len(idx) == 0 {
		return arrow.Field{}, false
	}
	return schema.Field(idx[0]), true
}

// isListType reports whether dt is one of the arrow list layouts, looking
// through extension types to their storage.
func isListType(dt arrow.DataType) bool {
	if ext, ok := dt.(arrow.ExtensionType); ok {
		dt = ext.StorageType()
	}
	switch dt.ID() {
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST, arrow.LIST_VIEW, arrow.LARGE_LIST_VIEW:
		return true
	}
	return false
}
