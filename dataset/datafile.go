package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Datafile layout:
//
//	Header
//	  24-bit magic: E9 AA 05
//	  8-bit flags: bit 0 set for little endian, bits 1-2 the Compression
//	  u32 set count (2..256)
//	Body (compressed per the flags)
//	  array of u32 set lengths
//	  array of sets, each a run of u32 values
var magic = [3]byte{0xe9, 0xaa, 0x05}

const (
	flagLittleEndian  = 0x01
	flagCompressShift = 1
	flagCompressMask  = 0b11

	minSetCount = 2
	maxSetCount = 256

	headerSize = 8
)

var (
	// ErrBadMagic is returned when a datafile does not start with the magic bytes.
	ErrBadMagic = errors.New("dataset: bad magic")
	// ErrBadEndianness is returned for datafiles written on a big-endian machine.
	ErrBadEndianness = errors.New("dataset: bad endianness")
	// ErrBadSetCount is returned when the set count is outside 2..256.
	ErrBadSetCount = errors.New("dataset: bad set count")
	// ErrTruncated is returned when the body is shorter than the lengths demand.
	ErrTruncated = errors.New("dataset: truncated body")
)

// WriteSets writes sets as a datafile. Values are always encoded little
// endian; the flag byte records that for readers on other machines.
func WriteSets(w io.Writer, sets [][]uint32, c Compression) error {
	count := len(sets)
	if count < minSetCount || count > maxSetCount {
		return fmt.Errorf("%w: %d", ErrBadSetCount, count)
	}

	total := 0
	for _, set := range sets {
		total += len(set)
	}

	body := make([]byte, 0, 4*(count+total))
	var scratch [4]byte
	for _, set := range sets {
		binary.LittleEndian.PutUint32(scratch[:], uint32(len(set)))
		body = append(body, scratch[:]...)
	}
	for _, set := range sets {
		for _, v := range set {
			binary.LittleEndian.PutUint32(scratch[:], v)
			body = append(body, scratch[:]...)
		}
	}

	body, err := compressBody(body, c)
	if err != nil {
		return err
	}

	header := [headerSize]byte{
		magic[0], magic[1], magic[2],
		flagLittleEndian | byte(c)<<flagCompressShift,
	}
	binary.LittleEndian.PutUint32(header[4:], uint32(count))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// ReadSets reads a datafile written by WriteSets.
func ReadSets(r io.Reader) ([][]uint32, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	if header[0] != magic[0] || header[1] != magic[1] || header[2] != magic[2] {
		return nil, ErrBadMagic
	}
	if header[3]&flagLittleEndian == 0 {
		return nil, ErrBadEndianness
	}
	c := Compression(header[3] >> flagCompressShift & flagCompressMask)

	count := binary.LittleEndian.Uint32(header[4:])
	if count < minSetCount || count > maxSetCount {
		return nil, fmt.Errorf("%w: %d", ErrBadSetCount, count)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body, err = decompressBody(body, c)
	if err != nil {
		return nil, err
	}

	// Length fields come from the wire; widen before multiplying so a
	// corrupt length cannot wrap the bounds check.
	if uint64(len(body)) < 4*uint64(count) {
		return nil, ErrTruncated
	}
	lengths := make([]uint32, count)
	for i := range lengths {
		lengths[i] = binary.LittleEndian.Uint32(body[4*i:])
	}
	body = body[4*count:]

	sets := make([][]uint32, count)
	for i, length := range lengths {
		if uint64(len(body)) < 4*uint64(length) {
			return nil, ErrTruncated
		}
		set := make([]uint32, length)
		for j := range set {
			set[j] = binary.LittleEndian.Uint32(body[4*j:])
		}
		sets[i] = set
		body = body[4*length:]
	}
	return sets, nil
}
