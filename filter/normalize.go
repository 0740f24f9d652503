package filter

import "fmt"

type inputShape int

const (
	shapeNone inputShape = iota
	shapeSingle
	shapeFlat
	shapeNested
)

// Input is the caller-facing description of the filters. It holds exactly one of the
// accepted shapes; build it with NoFilters, Single, All or AnyOf.
// The zero Input means no filters.
type Input struct {
	shape  inputShape
	single Filter
	flat   []Filter
	nested [][]Filter
}

// NoFilters returns an input that filters nothing out.
func NoFilters() Input { return Input{} }

// Single returns an input holding one filter.
func Single(f Filter) Input { return Input{shape: shapeSingle, single: f} }

// All returns an input whose filters must all match.
func All(filters ...Filter) Input {
	return Input{shape: shapeFlat, flat: append([]Filter(nil), filters...)}
}

// AnyOf returns an input matching rows that satisfy every filter of at least one group.
func AnyOf(groups ...[]Filter) Input {
	nested := make([][]Filter, len(groups))
	for i, g := range groups {
		nested[i] = append([]Filter(nil), g...)
	}
	return Input{shape: shapeNested, nested: nested}
}

// Normalize converts the input into its canonical OR-of-ANDs form.
// Order is preserved; nothing is deduplicated, sorted or flattened.
// The result never shares backing arrays with the input.
func Normalize(in Input) Normalized {
	switch in.shape {
	case shapeSingle:
		return Normalized{Group{in.single}}
	case shapeFlat:
		if len(in.flat) == 0 {
			return Normalized{}
		}
		return Normalized{append(Group(nil), in.flat...)}
	case shapeNested:
		out := make(Normalized, 0, len(in.nested))
		for _, g := range in.nested {
			out = append(out, append(Group{}, g...))
		}
		return out
	default:
		return Normalized{}
	}
}

// NormalizeValue normalizes dynamically shaped filter input, such as
// one assembled from decoded catalog metadata. It accepts nil, Input, Filter,
// []Filter, Group, [][]Filter, []Group, Normalized and []any holding either
// only filters or only filter sequences. Anything else fails with ErrInvalidInput.
func NormalizeValue(v any) (Normalized, error) {
	switch x := v.(type) {
	case nil:
		return Normalized{}, nil
	case Input:
		return Normalize(x), nil
	case Filter:
		return Normalize(Single(x)), nil
	case []Filter:
		return Normalize(All(x...)), nil
	case Group:
		return Normalize(All(x...)), nil
	case [][]Filter:
		return Normalize(AnyOf(x...)), nil
	case []Group:
		return normalizeGroups(x), nil
	case Normalized:
		return normalizeGroups(x), nil
	case []any:
		return normalizeAny(x)
	default:
		return nil, newError(ErrInvalidInput, "", "", fmt.Sprintf("unsupported filter input type %T", v))
	}
}

func normalizeGroups(groups []Group) Normalized {
	nested := make([][]Filter, len(groups))
	for i, g := range groups {
		nested[i] = g
	}
	return Normalize(AnyOf(nested...))
}

func normalizeAny(items []any) (Normalized, error) {
	if len(items) == 0 {
		return Normalized{}, nil
	}

	if _, ok := items[0].(Filter); ok {
		flat := make([]Filter, 0, len(items))
		for i, item := range items {
			f, ok := item.(Filter)
			if !ok {
				return nil, newError(ErrInvalidInput, "", "",
					fmt.Sprintf("element %d is %T, expected a filter like the preceding elements", i, item))
			}
			flat = append(flat, f)
		}
		return Normalize(All(flat...)), nil
	}

	nested := make([][]Filter, 0, len(items))
	for i, item := range items {
		group, err := filterSequence(item)
		if err != nil {
			return nil, newError(ErrInvalidInput, "", "",
				fmt.Sprintf("element %d: %v", i, err))
		}
		nested = append(nested, group)
	}
	return Normalize(AnyOf(nested...)), nil
}

func filterSequence(v any) ([]Filter, error) {
	switch x := v.(type) {
	case []Filter:
		return x, nil
	case Group:
		return x, nil
	case []any:
		group := make([]Filter, 0, len(x))
		for i, item := range x {
			f, ok := item.(Filter)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, expected a filter", i, item)
			}
			group = append(group, f)
		}
		return group, nil
	default:
		return nil, fmt.Errorf("%T is neither a filter nor a sequence of filters", v)
	}
}
