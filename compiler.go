package lakefilter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/lakefilter/catalog"
	"github.com/hugr-lab/lakefilter/filter"
)

// Compiler turns caller filter input into WHERE clause bodies for one dialect.
// A Compiler is immutable and safe for concurrent use.
type Compiler struct {
	encoder filter.Encoder
	logger  *slog.Logger
}

// NewCompiler creates a Compiler.
//
// The function:
//  1. Validates the Config
//  2. Selects the encoder for the configured dialect
//  3. Applies logger defaults
//
// Example:
//
//	c, err := lakefilter.NewCompiler(lakefilter.Config{Dialect: lakefilter.DialectDuckDB})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	where, err := c.Where(schema, filter.All(f1, f2))
func NewCompiler(config Config) (*Compiler, error) {
	encoder, err := newEncoder(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
		if config.LogLevel != nil {
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: *config.LogLevel,
			})
			logger = slog.New(handler)
		}
	}

	return &Compiler{encoder: encoder, logger: logger}, nil
}

func newEncoder(config Config) (filter.Encoder, error) {
	if config.Encoder != nil {
		return config.Encoder, nil
	}
	switch config.Dialect {
	case "", DialectDefault, DialectDataFusion:
		return filter.NewSQLEncoder(config.EncoderOptions), nil
	case DialectDuckDB:
		return filter.NewDuckDBEncoder(config.EncoderOptions), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", config.Dialect)
	}
}

// Compile normalizes in and compiles it against schema.
func (c *Compiler) Compile(schema *arrow.Schema, in filter.Input) (filter.Expression, error) {
	normalized := filter.Normalize(in)
	expr, err := filter.Compile(schema, normalized)
	if err != nil {
		c.logger.Warn("Filter compilation failed",
			"filters", normalized.String(),
			"error", err,
		)
		return nil, err
	}
	return expr, nil
}

// Where compiles in and encodes it with the configured dialect.
// Returns empty string when the input filters nothing out; callers then omit
// the WHERE clause.
func (c *Compiler) Where(schema *arrow.Schema, in filter.Input) (string, error) {
	expr, err := c.Compile(schema, in)
	if err != nil {
		return "", err
	}
	where := c.encoder.Encode(expr)
	c.logger.Debug("Compiled filter predicate", "where", where)
	return where, nil
}

// WhereForTable is like Where but resolves the schema of table from schemas.
func (c *Compiler) WhereForTable(ctx context.Context, schemas catalog.SchemaProvider, table string, in filter.Input) (string, error) {
	schema, err := schemas.TableSchema(ctx, table)
	if err != nil {
		return "", fmt.Errorf("failed to get schema for table %s: %w", table, err)
	}
	if schema == nil {
		return "", fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	where, err := c.Where(schema, in)
	if err != nil {
		return "", fmt.Errorf("table %s: %w", table, err)
	}
	return where, nil
}

// PrunePrefix returns the storage path prefix of table selected by one AND
// group, and how many partition keys it pins.
func (c *Compiler) PrunePrefix(ctx context.Context, partitions catalog.PartitionProvider, table string, group filter.Group) (string, int, error) {
	keys, scheme, err := partitions.TablePartitions(ctx, table)
	if err != nil {
		return "", 0, fmt.Errorf("failed to get partitions for table %s: %w", table, err)
	}
	if keys == nil {
		return "", 0, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	prefix, pinned := filter.PartitionPrefix(scheme, keys, group)
	c.logger.Debug("Resolved partition prefix",
		"table", table,
		"prefix", prefix,
		"pinned", pinned,
		"partitions", len(keys),
	)
	return prefix, pinned, nil
}
