package msgpack

import (
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	type wireFilter struct {
		Column string `msgpack:"c"`
		Op     string `msgpack:"o"`
		Values []int64 `msgpack:"v"`
	}

	in := wireFilter{Column: "int_col", Op: "in", Values: []int64{1, 2}}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var out wireFilter
	if err := Decode(data, &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if out.Column != in.Column || out.Op != in.Op || len(out.Values) != 2 || out.Values[1] != 2 {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestDecodeErrors(t *testing.T) {
	var v map[string]any
	if err := Decode(nil, &v); err == nil {
		t.Error("expected error for empty data")
	}
	if err := Decode([]byte{0xc1}, &v); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestDecodeIsStrict(t *testing.T) {
	type wireFilterV2 struct {
		Column string `msgpack:"c"`
		Op     string `msgpack:"o"`
		Negate bool   `msgpack:"neg"`
	}
	type wireFilter struct {
		Column string `msgpack:"c"`
		Op     string `msgpack:"o"`
	}

	data, err := Encode(wireFilterV2{Column: "int_col", Op: "=", Negate: true})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var f wireFilter
	if err := Decode(data, &f); err == nil {
		t.Error("expected error for unknown field")
	}

	data, err = Encode(wireFilter{Column: "int_col", Op: "="})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := Decode(append(data, 0x01), &f); !errors.Is(err, ErrTrailingData) {
		t.Errorf("expected ErrTrailingData, got %v", err)
	}
	if err := Decode(data, &f); err != nil {
		t.Errorf("Decode failed: %v", err)
	}
}

func TestEncodeCompactInts(t *testing.T) {
	data, err := Encode(int64(7))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data) != 1 {
		t.Errorf("expected a 1 byte fixint, got %d bytes", len(data))
	}

	var n int64
	if err := Decode(data, &n); err != nil || n != 7 {
		t.Errorf("expected 7, got %d (%v)", n, err)
	}
}
