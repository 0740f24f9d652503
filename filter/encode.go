package filter

import "strings"

// Encoder converts compiled predicates to SQL strings.
// Implementations handle dialect-specific syntax (DataFusion, DuckDB, etc.).
// Encoders are immutable after construction and safe for concurrent use.
type Encoder interface {
	// Encode converts a predicate to a WHERE clause body, without the "WHERE" keyword.
	// Returns empty string for the always-true predicate.
	Encode(expr Expression) string
}

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps filter column names to target names.
	// Columns not in the map use their original names.
	ColumnMapping map[string]string

	// ColumnExpressions maps column names to SQL expressions.
	// Takes precedence over ColumnMapping.
	// Use for computed columns or complex transformations.
	ColumnExpressions map[string]string

	// ArrayContainsFunc overrides the dialect's list membership function
	// (array_contains for the default dialect, list_contains for DuckDB).
	ArrayContainsFunc string
}

func (o *EncoderOptions) column(name string, quote func(string) string) string {
	if expr, ok := o.ColumnExpressions[name]; ok {
		return expr
	}
	if mapped, ok := o.ColumnMapping[name]; ok {
		name = mapped
	}
	return quote(name)
}

func (o *EncoderOptions) arrayContains(def string) string {
	if o.ArrayContainsFunc != "" {
		return o.ArrayContainsFunc
	}
	return def
}

// encodeConjunction joins the children of c. A child conjunction is wrapped in
// parentheses only when it has more than one term and its operator differs from c's.
// Always-true children of an AND are dropped.
func encodeConjunction(c *ConjunctionExpression, encode func(Expression) string) string {
	op := " AND "
	if c.ExprType == TypeConjunctionOr {
		op = " OR "
	}

	parts := make([]string, 0, len(c.Children))
	for _, child := range c.Children {
		if c.ExprType == TypeConjunctionAnd && IsAlwaysTrue(child) {
			continue
		}
		child = collapse(child)
		encoded := encode(child)
		if cc, ok := child.(*ConjunctionExpression); ok && cc.ExprType != c.ExprType {
			encoded = "(" + encoded + ")"
		}
		parts = append(parts, encoded)
	}
	return strings.Join(parts, op)
}

// collapse descends through conjunctions that contribute a single term.
func collapse(expr Expression) Expression {
	for {
		c, ok := expr.(*ConjunctionExpression)
		if !ok {
			return expr
		}
		terms := c.Children
		if c.ExprType == TypeConjunctionAnd {
			terms = terms[:0:0]
			for _, child := range c.Children {
				if !IsAlwaysTrue(child) {
					terms = append(terms, child)
				}
			}
		}
		if len(terms) != 1 {
			return expr
		}
		expr = terms[0]
	}
}

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// quoteAlways returns name as a double-quoted identifier.
func quoteAlways(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteIdentifier returns a quoted identifier if needed.
// DuckDB uses double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return quoteAlways(name)
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	// Check first character (must be letter or underscore)
	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}

	// Check remaining characters (letters, digits, or underscore)
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Check for reserved words (simplified list)
	upper := strings.ToUpper(name)
	switch upper {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "TABLE", "INDEX",
		"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "ON", "AS", "IN", "IS", "LIKE",
		"BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END", "ORDER", "BY",
		"GROUP", "HAVING", "LIMIT", "OFFSET", "UNION", "EXCEPT", "INTERSECT",
		"ALL", "DISTINCT", "VALUES", "SET", "INTO", "PRIMARY", "KEY", "FOREIGN",
		"REFERENCES", "CONSTRAINT", "DEFAULT", "CHECK", "UNIQUE", "ASC", "DESC",
		"NULLS", "FIRST", "LAST", "CAST", "INTERVAL", "DATE", "TIME", "TIMESTAMP":
		return true
	}

	return false
}

// isLetter returns true if c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit returns true if c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
