package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
)

// Partition describes one partition key of a table.
type Partition struct {
	Column string
	Type   arrow.DataType
}

// PartitioningScheme defines how partition values appear in storage paths.
type PartitioningScheme int

const (
	// PartitionDirectory lays out bare values, e.g. s3://bucket/5956/2024-03-24.
	PartitionDirectory PartitioningScheme = iota + 1
	// PartitionHive lays out key=value pairs, e.g. s3://bucket/implant_id=5956/date=2024-03-24.
	PartitionHive
)

func (s PartitioningScheme) String() string {
	switch s {
	case PartitionDirectory:
		return "directory"
	case PartitionHive:
		return "hive"
	default:
		return "unknown"
	}
}

// ExtractEquality returns the filter pinning p to a single value.
// It succeeds only when exactly one filter of the group references the partition
// column and that filter is an equality. Pruning is only sound inside one AND
// group, so OR'ed groups must be checked one at a time.
func ExtractEquality(p Partition, group Group) (Filter, bool) {
	var match Filter
	found := false

	for _, f := range group {
		if f.Column != p.Column {
			continue
		}
		if found || f.Op != OpEqual {
			return Filter{}, false
		}
		match = f
		found = true
	}

	return match, found
}

// PartitionPrefix builds the storage path prefix selected by group.
// Partitions are consumed in order until one has no unique equality filter;
// the returned count is the number of partitions pinned. A count of zero
// means the whole table must be scanned.
func PartitionPrefix(scheme PartitioningScheme, partitions []Partition, group Group) (string, int) {
	segments := make([]string, 0, len(partitions))
	for _, p := range partitions {
		f, ok := ExtractEquality(p, group)
		if !ok {
			break
		}
		value, ok := pathValue(f.Value)
		if !ok {
			break
		}
		if scheme == PartitionHive {
			value = p.Column + "=" + value
		}
		segments = append(segments, value)
	}
	return strings.Join(segments, "/"), len(segments)
}

// pathValue renders a scalar the way it appears in a partition directory name.
func pathValue(v Value) (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, !strings.Contains(v.str, "/")
	case KindInt:
		return strconv.FormatInt(v.num, 10), true
	case KindBool:
		return strconv.FormatBool(v.bool), true
	case KindDate:
		return v.time.Format(time.DateOnly), true
	case KindDecimal:
		return v.dec.ToString(v.scale), true
	case KindUUID:
		return v.uuid.String(), true
	default:
		return "", false
	}
}
