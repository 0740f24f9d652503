package filter

// ExpressionType identifies the specific node type of a compiled predicate.
type ExpressionType string

const (
	// Comparison operators
	TypeCompareEqual              ExpressionType = "COMPARE_EQUAL"
	TypeCompareNotEqual           ExpressionType = "COMPARE_NOTEQUAL"
	TypeCompareLessThan           ExpressionType = "COMPARE_LESSTHAN"
	TypeCompareGreaterThan        ExpressionType = "COMPARE_GREATERTHAN"
	TypeCompareLessThanOrEqual    ExpressionType = "COMPARE_LESSTHANOREQUALTO"
	TypeCompareGreaterThanOrEqual ExpressionType = "COMPARE_GREATERTHANOREQUALTO"
	TypeCompareIn                 ExpressionType = "COMPARE_IN"
	TypeCompareNotIn              ExpressionType = "COMPARE_NOT_IN"

	// Pattern and list membership
	TypeLike          ExpressionType = "LIKE"
	TypeArrayContains ExpressionType = "ARRAY_CONTAINS"

	// Conjunction operators
	TypeConjunctionAnd ExpressionType = "CONJUNCTION_AND"
	TypeConjunctionOr  ExpressionType = "CONJUNCTION_OR"
)

// Expression is the interface implemented by all compiled predicate nodes.
// The set of implementations is closed; use a type switch to walk a tree.
type Expression interface {
	// Type returns the specific node type (e.g., COMPARE_EQUAL, CONJUNCTION_AND).
	Type() ExpressionType

	// expressionMarker is a marker method to prevent external implementation.
	expressionMarker()
}

// ComparisonExpression compares a column with a scalar literal.
// ExprType is one of the six COMPARE_* scalar comparison types.
type ComparisonExpression struct {
	ExprType ExpressionType
	Column   string
	Value    Value
}

// InExpression tests a column for membership in a literal list.
type InExpression struct {
	Column  string
	Values  []Value
	Negated bool
}

// LikeExpression matches a string column against a LIKE pattern.
// Pattern is raw; encoders quote and escape it.
type LikeExpression struct {
	Column  string
	Pattern string
}

// ArrayContainsExpression tests whether a list column holds a value.
// Each dialect chooses its own membership function.
type ArrayContainsExpression struct {
	Column string
	Value  Value
}

// ConjunctionExpression is an AND/OR of its children.
// An AND with no children is the always-true predicate; an OR with no children
// is the always-false one.
type ConjunctionExpression struct {
	ExprType ExpressionType
	Children []Expression
}

func (e *ComparisonExpression) Type() ExpressionType { return e.ExprType }

func (e *InExpression) Type() ExpressionType {
	if e.Negated {
		return TypeCompareNotIn
	}
	return TypeCompareIn
}

func (e *LikeExpression) Type() ExpressionType          { return TypeLike }
func (e *ArrayContainsExpression) Type() ExpressionType { return TypeArrayContains }
func (e *ConjunctionExpression) Type() ExpressionType   { return e.ExprType }

func (e *ComparisonExpression) expressionMarker()    {}
func (e *InExpression) expressionMarker()            {}
func (e *LikeExpression) expressionMarker()          {}
func (e *ArrayContainsExpression) expressionMarker() {}
func (e *ConjunctionExpression) expressionMarker()   {}

// And combines expressions with AND. Nested ANDs are kept as children; a single
// child is returned unwrapped.
func And(children ...Expression) Expression {
	return conjunction(TypeConjunctionAnd, children)
}

// Or combines expressions with OR. A single child is returned unwrapped and
// no children yield the always-false predicate.
func Or(children ...Expression) Expression {
	return conjunction(TypeConjunctionOr, children)
}

func conjunction(t ExpressionType, children []Expression) Expression {
	if len(children) == 1 {
		return children[0]
	}
	return &ConjunctionExpression{ExprType: t, Children: append([]Expression(nil), children...)}
}

// AlwaysTrue returns the predicate that matches every row.
func AlwaysTrue() Expression {
	return &ConjunctionExpression{ExprType: TypeConjunctionAnd}
}

// IsAlwaysTrue reports whether expr matches every row. Callers should omit the
// WHERE clause entirely in that case.
func IsAlwaysTrue(expr Expression) bool {
	c, ok := expr.(*ConjunctionExpression)
	if !ok {
		return expr == nil
	}
	if len(c.Children) == 0 {
		return c.ExprType == TypeConjunctionAnd
	}
	if c.ExprType == TypeConjunctionOr {
		for _, child := range c.Children {
			if IsAlwaysTrue(child) {
				return true
			}
		}
		return false
	}
	for _, child := range c.Children {
		if !IsAlwaysTrue(child) {
			return false
		}
	}
	return true
}

// IsAlwaysFalse reports whether expr matches no row. Encoders render it as a
// literal false rather than an empty string.
func IsAlwaysFalse(expr Expression) bool {
	c, ok := expr.(*ConjunctionExpression)
	if !ok {
		return false
	}
	if len(c.Children) == 0 {
		return c.ExprType == TypeConjunctionOr
	}
	if c.ExprType == TypeConjunctionAnd {
		for _, child := range c.Children {
			if IsAlwaysFalse(child) {
				return true
			}
		}
		return false
	}
	for _, child := range c.Children {
		if !IsAlwaysFalse(child) {
			return false
		}
	}
	return true
}
