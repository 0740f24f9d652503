package serialize

import (
	"bytes"
	"errors"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	defer codec.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", []byte{}},
		{"Small", []byte("int_col = 1")},
		{"Repetitive", bytes.Repeat([]byte(`"list_col" includes all (1,2,3) `), 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed := codec.Compress(tt.data)
			got, err := codec.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(tt.data))
			}
		})
	}
}

func TestCodecCompresses(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	defer codec.Close()

	data := bytes.Repeat([]byte("ps_partkey=1/ps_suppkey=1/"), 4096)
	if compressed := codec.Compress(data); len(compressed) >= len(data)/10 {
		t.Errorf("expected strong compression, got %d of %d bytes", len(compressed), len(data))
	}
}

func TestCodecDecompressErrors(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	defer codec.Close()

	if _, err := codec.Decompress([]byte("definitely not zstd")); err == nil {
		t.Error("expected error for corrupt input")
	}

	huge := codec.Compress(make([]byte, MaxPayloadSize+1))
	if _, err := codec.Decompress(huge); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
}
