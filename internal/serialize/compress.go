// Package serialize compresses encoded filter payloads with ZStandard.
package serialize

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// MaxPayloadSize bounds the decompressed size of a filter payload.
const MaxPayloadSize = 64 << 20

// ErrPayloadTooLarge is returned when a payload decompresses past MaxPayloadSize.
var ErrPayloadTooLarge = errors.New("filter payload too large")

// Codec compresses and decompresses filter payloads.
// Create once and reuse; all methods are safe for concurrent use.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec creates a reusable codec at SpeedDefault (level 3).
// Caller must call Close() when done to release resources.
func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxPayloadSize))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Compress compresses data. Empty input yields empty output.
func (c *Codec) Compress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	// Filter payloads are small and repetitive; half the input is a generous bound.
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress reverses Compress.
func (c *Codec) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}

	data, err := c.decoder.DecodeAll(compressed, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, ErrPayloadTooLarge
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return data, nil
}

// Close releases encoder and decoder resources.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}
