package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression applied to a datafile body.
type Compression uint8

const (
	// CompressionNone stores the body raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, good for cold data).
	CompressionZSTD Compression = 2
)

// String returns the string representation of a Compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCompression parses a string into a Compression value.
func ParseCompression(s string) (Compression, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, true
	case "lz4":
		return CompressionLZ4, true
	case "zstd":
		return CompressionZSTD, true
	default:
		return CompressionNone, false
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means the block is stored raw.
const (
	blockHeaderSize = 8
	maxBlockSize    = 256 * 1024
)

// compressBody splits data into blocks and compresses each one. Blocks
// that do not shrink below 90% stay raw so decompression never loses.
func compressBody(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}

	out := make([]byte, 0, len(data)/2+blockHeaderSize)
	for len(data) > 0 {
		block := data
		if len(block) > maxBlockSize {
			block = block[:maxBlockSize]
		}
		data = data[len(block):]

		var compressed []byte
		var err error

		switch c {
		case CompressionLZ4:
			compressed, err = compressBlockLZ4(block)
		case CompressionZSTD:
			compressed = compressBlockZSTD(block)
		}
		if err != nil {
			return nil, err
		}

		var hdr [blockHeaderSize]byte
		binary.LittleEndian.PutUint32(hdr[0:], uint32(len(block)))
		if len(compressed) == 0 || float64(len(compressed)) > float64(len(block))*0.9 {
			binary.LittleEndian.PutUint32(hdr[4:], 0)
			out = append(out, hdr[:]...)
			out = append(out, block...)
		} else {
			binary.LittleEndian.PutUint32(hdr[4:], uint32(len(compressed)))
			out = append(out, hdr[:]...)
			out = append(out, compressed...)
		}
	}
	return out, nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressBlockZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

// decompressBody reassembles a block stream produced by compressBody.
func decompressBody(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}

	var out []byte
	for len(data) > 0 {
		if len(data) < blockHeaderSize {
			return nil, errors.New("dataset: block too small for header")
		}
		rawLen := binary.LittleEndian.Uint32(data[0:])
		compLen := binary.LittleEndian.Uint32(data[4:])
		data = data[blockHeaderSize:]

		if compLen == 0 {
			if uint32(len(data)) < rawLen {
				return nil, errors.New("dataset: block extends beyond data")
			}
			out = append(out, data[:rawLen]...)
			data = data[rawLen:]
			continue
		}

		if uint32(len(data)) < compLen {
			return nil, errors.New("dataset: compressed block extends beyond data")
		}
		block := data[:compLen]
		data = data[compLen:]

		result := make([]byte, rawLen)
		switch c {
		case CompressionZSTD:
			dec := getZstdDecoder()
			decoded, err := dec.DecodeAll(block, result[:0])
			putZstdDecoder(dec)
			if err != nil {
				return nil, err
			}
			if uint32(len(decoded)) != rawLen {
				return nil, errors.New("dataset: decompressed size mismatch")
			}
			out = append(out, decoded...)

		case CompressionLZ4:
			n, err := lz4.UncompressBlock(block, result)
			if err != nil {
				return nil, err
			}
			if uint32(n) != rawLen {
				return nil, errors.New("dataset: decompressed size mismatch")
			}
			out = append(out, result[:n]...)

		default:
			return nil, fmt.Errorf("dataset: unsupported compression %d", c)
		}
	}
	return out, nil
}
