// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Encoding is the on-disk compression of a patch file.
type Encoding uint8

const (
	EncodingNone Encoding = iota
	EncodingZstd
	EncodingLZ4
)

// maxPatchSize bounds decompressed output. The largest valid IPS file
// is far smaller; anything bigger is corrupt or hostile.
const maxPatchSize = 64 << 20

// encodings is the lookup order for a resource name.
var encodings = []Encoding{EncodingNone, EncodingZstd, EncodingLZ4}

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingNone:
		return "none"
	case EncodingZstd:
		return "zstd"
	case EncodingLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", e)
	}
}

// Suffix is appended to the resource name on disk.
func (e Encoding) Suffix() string {
	switch e {
	case EncodingZstd:
		return ".zst"
	case EncodingLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// EncodingOf infers the encoding of a file from its suffix.
func EncodingOf(path string) Encoding {
	for _, encoding := range encodings {
		if encoding != EncodingNone && strings.HasSuffix(path, encoding.Suffix()) {
			return encoding
		}
	}
	return EncodingNone
}

// ParseEncoding parses an encoding name.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "none", "":
		return EncodingNone, nil
	case "zstd":
		return EncodingZstd, nil
	case "lz4":
		return EncodingLZ4, nil
	default:
		return 0, fmt.Errorf("unknown encoding: %q", name)
	}
}

// zstd encoders and decoders are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		panic("resource: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPatchSize))
	if err != nil {
		panic("resource: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress encodes data for storage.
func Compress(data []byte, encoding Encoding) ([]byte, error) {
	switch encoding {
	case EncodingNone:
		return data, nil

	case EncodingZstd:
		return zstdEncoder.EncodeAll(data, nil), nil

	case EncodingLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if err := writer.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
			return nil, fmt.Errorf("lz4 options: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}

// Decompress reverses Compress.
func Decompress(data []byte, encoding Encoding) ([]byte, error) {
	switch encoding {
	case EncodingNone:
		return data, nil

	case EncodingZstd:
		result, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return result, nil

	case EncodingLZ4:
		reader := io.LimitReader(lz4.NewReader(bytes.NewReader(data)), maxPatchSize+1)
		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if len(result) > maxPatchSize {
			return nil, fmt.Errorf("lz4 decompress: output exceeds %d bytes", maxPatchSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
