package filter

import (
	"fmt"
	"sync"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/google/uuid"

	"github.com/hugr-lab/lakefilter/internal/msgpack"
	"github.com/hugr-lab/lakefilter/internal/serialize"
)

// codecVersion is bumped whenever the wire layout changes incompatibly.
const codecVersion = 2

type wirePayload struct {
	Version int            `msgpack:"version"`
	Groups  [][]wireFilter `msgpack:"groups"`
}

type wireFilter struct {
	Column string    `msgpack:"c"`
	Op     string    `msgpack:"o"`
	Value  wireValue `msgpack:"v"`
}

// wireValue carries the literal kind explicitly so that timestamps, dates,
// decimals and uuids survive the round trip. Instants travel as Unix seconds
// plus nanoseconds so that every representable year fits.
type wireValue struct {
	Kind   ValueKind   `msgpack:"k"`
	Str    string      `msgpack:"s,omitempty"`
	Int    int64       `msgpack:"i,omitempty"`
	Float  float64     `msgpack:"f,omitempty"`
	Bool   bool        `msgpack:"b,omitempty"`
	Secs   int64       `msgpack:"t,omitempty"`
	Nanos  int32       `msgpack:"n,omitempty"`
	Offset int         `msgpack:"z,omitempty"`
	Hi     int64       `msgpack:"hi,omitempty"`
	Lo     uint64      `msgpack:"lo,omitempty"`
	Scale  int32       `msgpack:"sc,omitempty"`
	List   []wireValue `msgpack:"l,omitempty"`
}

// Marshal encodes normalized filters as MessagePack.
func Marshal(n Normalized) ([]byte, error) {
	payload := wirePayload{Version: codecVersion, Groups: make([][]wireFilter, len(n))}
	for i, g := range n {
		group := make([]wireFilter, len(g))
		for j, f := range g {
			group[j] = wireFilter{Column: f.Column, Op: string(f.Op), Value: toWire(f.Value)}
		}
		payload.Groups[i] = group
	}
	return msgpack.Encode(payload)
}

// Unmarshal decodes filters produced by Marshal. Every decoded filter is
// validated, so a corrupt payload fails with one of the package errors.
func Unmarshal(data []byte) (Normalized, error) {
	var payload wirePayload
	if err := msgpack.Decode(data, &payload); err != nil {
		return nil, newError(ErrInvalidInput, "", "", err.Error())
	}
	if payload.Version != codecVersion {
		return nil, newError(ErrInvalidInput, "", "",
			fmt.Sprintf("unsupported filter payload version %d", payload.Version))
	}

	out := make(Normalized, 0, len(payload.Groups))
	for _, wg := range payload.Groups {
		group := make(Group, 0, len(wg))
		for _, wf := range wg {
			v, err := fromWire(wf.Value)
			if err != nil {
				return nil, err
			}
			op, err := ParseOperator(wf.Op)
			if err != nil {
				return nil, err
			}
			f, err := New(wf.Column, op, v)
			if err != nil {
				return nil, err
			}
			group = append(group, f)
		}
		out = append(out, group)
	}
	return out, nil
}

var sharedCodec = sync.OnceValues(serialize.NewCodec)

// MarshalCompressed is Marshal followed by ZStandard compression.
func MarshalCompressed(n Normalized) ([]byte, error) {
	codec, err := sharedCodec()
	if err != nil {
		return nil, err
	}
	data, err := Marshal(n)
	if err != nil {
		return nil, err
	}
	return codec.Compress(data), nil
}

// UnmarshalCompressed decodes a payload produced by MarshalCompressed.
func UnmarshalCompressed(compressed []byte) (Normalized, error) {
	codec, err := sharedCodec()
	if err != nil {
		return nil, err
	}
	data, err := codec.Decompress(compressed)
	if err != nil {
		return nil, newError(ErrInvalidInput, "", "", err.Error())
	}
	return Unmarshal(data)
}

func toWire(v Value) wireValue {
	w := wireValue{Kind: v.kind}
	switch v.kind {
	case KindString:
		w.Str = v.str
	case KindInt:
		w.Int = v.num
	case KindFloat:
		w.Float = v.float
	case KindBool:
		w.Bool = v.bool
	case KindTimestamp, KindDate:
		_, offset := v.time.Zone()
		w.Secs = v.time.Unix()
		w.Nanos = int32(v.time.Nanosecond())
		w.Offset = offset
	case KindDecimal:
		w.Hi = v.dec.HighBits()
		w.Lo = v.dec.LowBits()
		w.Scale = v.scale
	case KindUUID:
		w.Str = v.uuid.String()
	case KindList:
		w.List = make([]wireValue, len(v.list))
		for i, elem := range v.list {
			w.List[i] = toWire(elem)
		}
	}
	return w
}

func fromWire(w wireValue) (Value, error) {
	switch w.Kind {
	case KindString:
		return String(w.Str), nil
	case KindInt:
		return Int(w.Int), nil
	case KindFloat:
		return Float(w.Float), nil
	case KindBool:
		return Bool(w.Bool), nil
	case KindTimestamp:
		return Timestamp(time.Unix(w.Secs, int64(w.Nanos)).In(zoneFor(w.Offset))), nil
	case KindDate:
		return Date(time.Unix(w.Secs, 0).UTC()), nil
	case KindDecimal:
		return Decimal(decimal128.New(w.Hi, w.Lo), w.Scale), nil
	case KindUUID:
		u, err := uuid.Parse(w.Str)
		if err != nil {
			return Value{}, newError(ErrTypeMismatch, "", "", fmt.Sprintf("invalid uuid literal %q", w.Str))
		}
		return UUID(u), nil
	case KindList:
		list := make([]Value, len(w.List))
		for i, elem := range w.List {
			v, err := fromWire(elem)
			if err != nil {
				return Value{}, err
			}
			list[i] = v
		}
		return Value{kind: KindList, list: list}, nil
	default:
		return Value{}, newError(ErrTypeMismatch, "", "", fmt.Sprintf("unknown literal kind %q", string(w.Kind)))
	}
}

func zoneFor(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}
