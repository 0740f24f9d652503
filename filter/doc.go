// Package filter compiles row filters declared in lake table definitions into
// SQL WHERE clause bodies, and extracts partition equalities for pruning.
//
// This package enables catalog and query developers to:
//   - Declare filters as (column, operator, value) triples
//   - Normalize the accepted input shapes into OR-of-AND groups
//   - Compile normalized filters against an Arrow schema into an expression tree
//   - Encode the tree to SQL for the lake query engine or DuckDB
//   - Find the single equality filter that pins a partition column
//
// # Basic Usage
//
//	f := filter.MustNew("int_col", filter.OpEqual, filter.Int(123))
//	expr, err := filter.Compile(schema, filter.Normalize(filter.Single(f)))
//	if err != nil {
//	    return err // Unknown column, type mismatch, ...
//	}
//
//	where := filter.Render(expr) // "int_col"=123
//	if where != "" {
//	    query := "SELECT * FROM table WHERE " + where
//	}
//
// # Input Shapes
//
// Filters are supplied as one of four shapes, each with its own constructor:
//
//	filter.NoFilters() // []
//	filter.Single(a)   // [[a]]
//	filter.All(a, b)   // [[a, b]]      a AND b
//	filter.AnyOf(      // [[a], [b, c]] a OR (b AND c)
//	    []filter.Filter{a},
//	    []filter.Filter{b, c},
//	)
//
// NormalizeValue accepts the same shapes held in untyped containers.
//
// # Operators
//
// The recognized operators are =, !=, <, <=, >, >=, in, not in, contains,
// includes, includes any and includes all. The includes family only applies to
// list columns and is encoded with the dialect's list membership function.
//
// # Custom Dialects
//
// Implement the Encoder interface for other SQL dialects:
//
//	type PostgreSQLEncoder struct { ... }
//	func (e *PostgreSQLEncoder) Encode(expr Expression) string { ... }
//
// # Errors
//
// All failures are synchronous and wrap one of ErrInvalidInput, ErrUnknownColumn,
// ErrTypeMismatch, ErrInvalidOperator or ErrEmptyValueSequence. They describe
// bad table definitions and are never worth retrying.
package filter
