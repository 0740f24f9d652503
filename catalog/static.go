package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/lakefilter/filter"
)

// Errors returned by StaticCatalog.AddTable.
var (
	// ErrTableExists is returned when adding a table with a name that already exists.
	ErrTableExists = errors.New("table already exists")
	// ErrInvalidTable is returned when a table definition is incomplete or inconsistent.
	ErrInvalidTable = errors.New("invalid table definition")
)

// TableDef declares a table for the static catalog.
type TableDef struct {
	// Name is the table name. REQUIRED.
	Name string

	// Comment is optional table documentation.
	Comment string

	// Schema describes the table columns. REQUIRED.
	Schema *arrow.Schema

	// Partitions lists the partition keys in storage order. OPTIONAL.
	Partitions []filter.Partition

	// Scheme is the partition layout. Defaults to PartitionHive when
	// Partitions is non-empty.
	Scheme filter.PartitioningScheme

	// DocsFilters are example filters shown in table documentation.
	// They are compiled against Schema when the table is added.
	DocsFilters []filter.Filter
}

// StaticCatalog is an in-memory catalog.
// Tables are added during setup; afterwards it is read-only and safe for concurrent use.
type StaticCatalog struct {
	tables map[string]*TableDef
}

// NewStaticCatalog creates an empty static catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		tables: make(map[string]*TableDef),
	}
}

// AddTable validates def and registers it.
// Partition columns and docs filters must reference columns of def.Schema.
// AddTable MUST NOT be called concurrently with lookups.
func (c *StaticCatalog) AddTable(def TableDef) error {
	if def.Name == "" {
		return fmt.Errorf("%w: table name is required", ErrInvalidTable)
	}
	if def.Schema == nil {
		return fmt.Errorf("%w: table %s has no schema", ErrInvalidTable, def.Name)
	}
	if _, ok := c.tables[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrTableExists, def.Name)
	}

	for _, p := range def.Partitions {
		if !def.Schema.HasField(p.Column) {
			return fmt.Errorf("%w: table %s partition column %s is not in the schema", ErrInvalidTable, def.Name, p.Column)
		}
	}
	if len(def.DocsFilters) > 0 {
		if _, err := filter.Compile(def.Schema, filter.Normalize(filter.All(def.DocsFilters...))); err != nil {
			return fmt.Errorf("%w: table %s docs filters: %w", ErrInvalidTable, def.Name, err)
		}
	}

	if len(def.Partitions) > 0 && def.Scheme == 0 {
		def.Scheme = filter.PartitionHive
	}
	def.Partitions = append([]filter.Partition(nil), def.Partitions...)
	def.DocsFilters = append([]filter.Filter(nil), def.DocsFilters...)
	c.tables[def.Name] = &def
	return nil
}

// TableNames returns the registered table names in sorted order.
func (c *StaticCatalog) TableNames() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table returns a copy of the table definition.
// Returns (nil, nil) if table doesn't exist.
func (c *StaticCatalog) Table(ctx context.Context, name string) (*TableDef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def, ok := c.tables[name]
	if !ok {
		return nil, nil // Not found, not an error
	}
	cp := *def
	cp.Partitions = append([]filter.Partition{}, def.Partitions...)
	cp.DocsFilters = append([]filter.Filter(nil), def.DocsFilters...)
	return &cp, nil
}

// TableSchema implements SchemaProvider.
func (c *StaticCatalog) TableSchema(ctx context.Context, name string) (*arrow.Schema, error) {
	def, err := c.Table(ctx, name)
	if err != nil || def == nil {
		return nil, err
	}
	return def.Schema, nil
}

// TablePartitions implements PartitionProvider.
func (c *StaticCatalog) TablePartitions(ctx context.Context, name string) ([]filter.Partition, filter.PartitioningScheme, error) {
	def, err := c.Table(ctx, name)
	if err != nil || def == nil {
		return nil, 0, err
	}
	return def.Partitions, def.Scheme, nil
}
