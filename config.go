package lakefilter

import (
	"errors"
	"log/slog"

	"github.com/hugr-lab/lakefilter/filter"
)

// Supported SQL dialects.
const (
	// DialectDefault is the dialect of the lake query engine.
	DialectDefault = "default"
	// DialectDataFusion is an alias of DialectDefault.
	DialectDataFusion = "datafusion"
	// DialectDuckDB renders DuckDB SQL.
	DialectDuckDB = "duckdb"
)

// Config contains configuration for a Compiler.
type Config struct {
	// Dialect selects the SQL encoder.
	// OPTIONAL: If empty, uses DialectDefault.
	// Ignored when Encoder is set.
	Dialect string

	// Encoder replaces the built-in dialect encoders.
	// OPTIONAL: Use for dialects this module does not ship.
	Encoder filter.Encoder

	// EncoderOptions configures the built-in encoders (column mapping,
	// column expressions, list membership function).
	// OPTIONAL: If nil, defaults are used.
	EncoderOptions *filter.EncoderOptions

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses the Logger as is.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level
}

// Standard errors returned by the lakefilter package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid compiler config")

	// ErrTableNotFound indicates the schema or partition provider does not know the table.
	ErrTableNotFound = errors.New("table not found")
)
