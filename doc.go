// Package lakefilter compiles row filters for lake tables into SQL predicates.
//
// The lakefilter package ties together:
//   - The filter package, which models, normalizes, compiles and encodes filters
//   - The catalog package, which supplies table schemas and partition layouts
//   - Structured logging of compiled predicates via log/slog
//
// # Quick Start
//
//	schema := arrow.NewSchema([]arrow.Field{
//	    {Name: "str_col", Type: arrow.BinaryTypes.String},
//	    {Name: "int_col", Type: arrow.PrimitiveTypes.Int64},
//	}, nil)
//
//	c, err := lakefilter.NewCompiler(lakefilter.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	where, err := c.Where(schema, filter.AnyOf(
//	    []filter.Filter{filter.MustNew("str_col", filter.OpEqual, filter.String("x"))},
//	    []filter.Filter{
//	        filter.MustNew("int_col", filter.OpEqual, filter.Int(123)),
//	        filter.MustNew("int_col", filter.OpLess, filter.Int(456)),
//	    },
//	))
//	// "str_col"='x' OR ("int_col"=123 AND "int_col"<456)
//
// # Dialects
//
// Config.Dialect selects the SQL flavour: DialectDefault emits the syntax of the
// lake query engine (array_contains, always-quoted identifiers); DialectDuckDB
// emits DuckDB syntax (list_contains, typed temporal literals). Config.Encoder
// plugs in any other filter.Encoder.
//
// # Partition Pruning
//
// PrunePrefix resolves the storage path prefix pinned by the equality filters of
// one AND group:
//
//	prefix, pinned, err := c.PrunePrefix(ctx, cat, "partsupp", group)
//	// prefix "ps_partkey=1/ps_suppkey=1", pinned 2
//
// # Errors
//
// Filter errors wrap the sentinel errors of the filter package and describe
// invalid table definitions or queries. They are deterministic and never retryable.
package lakefilter
