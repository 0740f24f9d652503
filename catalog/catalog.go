// Package catalog defines the metadata boundary the filter compiler depends on:
// where table schemas come from and how tables are partitioned.
//
// The package follows an interface-based design to support both static and dynamic implementations:
//   - Static catalogs: Built using NewStaticCatalog() and AddTable (immutable after setup, fast lookup)
//   - Dynamic catalogs: Custom implementations that can reflect live metastore state
//
// All interfaces are goroutine-safe and support context-based cancellation.
package catalog

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/lakefilter/filter"
)

// SchemaProvider resolves table schemas for filter compilation.
// Implementations MUST be goroutine-safe.
type SchemaProvider interface {
	// TableSchema returns the schema of the named table.
	// Returns (nil, nil) if table doesn't exist (not an error).
	// Returns (nil, err) if lookup fails for other reasons.
	// MUST respect context cancellation.
	// Callers treat the returned schema as read-only.
	TableSchema(ctx context.Context, name string) (*arrow.Schema, error)
}

// PartitionProvider describes how tables are laid out in storage.
// Implementations MUST be goroutine-safe.
type PartitionProvider interface {
	// TablePartitions returns the ordered partition keys of the named table and
	// their storage scheme. Unpartitioned tables return an empty slice.
	// Returns (nil, 0, nil) if table doesn't exist (not an error).
	TablePartitions(ctx context.Context, name string) ([]filter.Partition, filter.PartitioningScheme, error)
}
