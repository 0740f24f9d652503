// Package msgpack encodes and decodes filter payloads as MessagePack.
//
// Decoding is strict: a payload with fields the target struct does not
// declare, or with bytes after the encoded value, is rejected rather than
// partially applied.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrTrailingData is returned when bytes follow the decoded value.
var ErrTrailingData = errors.New("trailing data after MessagePack value")

// Decode deserializes a single MessagePack value into v, which must be a pointer.
// Unknown struct fields and trailing bytes are errors.
//
// Example:
//
//	type wireFilter struct {
//	    Column string `msgpack:"c"`
//	    Op     string `msgpack:"o"`
//	}
//
//	var f wireFilter
//	err := msgpack.Decode(data, &f)
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty MessagePack data")
	}

	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	if r.Len() > 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Len())
	}

	return nil
}

// Encode serializes v as MessagePack, using the smallest integer encoding
// that holds each value.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	return buf.Bytes(), nil
}
