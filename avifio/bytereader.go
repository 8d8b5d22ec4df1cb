package avifio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ByteReader reads big-endian values out of an in-memory ISOBMFF file.
type ByteReader struct {
	data []byte
	pos  int64
}

func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

// Seek works the same as io.Seeker but never goes past the end of the data.
func (br *ByteReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = br.pos + offset
	case io.SeekEnd:
		abs = int64(len(br.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}

	if abs < 0 || abs > int64(len(br.data)) {
		return br.pos, fmt.Errorf("seek to %d out of range: %w", abs, io.ErrUnexpectedEOF)
	}
	br.pos = abs
	return abs, nil
}

func (br *ByteReader) Pos() int64 {
	return br.pos
}

func (br *ByteReader) Len() int64 {
	return int64(len(br.data))
}

func (br *ByteReader) Remaining() int64 {
	return int64(len(br.data)) - br.pos
}

func (br *ByteReader) AtEnd() bool {
	return br.pos >= int64(len(br.data))
}

func (br *ByteReader) Skip(n int64) error {
	_, err := br.Seek(n, io.SeekCurrent)
	return err
}

// ReadBytes returns the next n bytes. The slice aliases the underlying data.
func (br *ByteReader) ReadBytes(n int64) ([]byte, error) {
	if n < 0 || n > br.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	b := br.data[br.pos : br.pos+n]
	br.pos += n
	return b, nil
}

func (br *ByteReader) ReadU8() (uint8, error) {
	b, err := br.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (br *ByteReader) ReadU16() (uint16, error) {
	b, err := br.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (br *ByteReader) ReadU32() (uint32, error) {
	b, err := br.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (br *ByteReader) ReadU64() (uint64, error) {
	b, err := br.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadUintN reads an unsigned value stored in noBytes bytes (0, 1, 2, 4 or 8).
// A size of 0 reads nothing and returns 0, as used by iloc.
func (br *ByteReader) ReadUintN(noBytes int) (uint64, error) {
	switch noBytes {
	case 0:
		return 0, nil
	case 1:
		v, err := br.ReadU8()
		return uint64(v), err
	case 2:
		v, err := br.ReadU16()
		return uint64(v), err
	case 4:
		v, err := br.ReadU32()
		return uint64(v), err
	case 8:
		return br.ReadU64()
	}
	return 0, fmt.Errorf("unsupported field size %d", noBytes)
}

// ReadFourCC reads a 4 character box or brand code.
func (br *ByteReader) ReadFourCC() (string, error) {
	b, err := br.ReadBytes(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFullBoxHeader reads the version and 24 bit flags of a FullBox.
func (br *ByteReader) ReadFullBoxHeader() (uint8, uint32, error) {
	vf, err := br.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	return uint8(vf >> 24), vf & 0xFFFFFF, nil
}

// ReadCString reads a null terminated string, stopping at limit if no
// terminator is found first.
func (br *ByteReader) ReadCString(limit int64) (string, error) {
	start := br.pos
	for br.pos < limit && br.pos < int64(len(br.data)) {
		if br.data[br.pos] == 0 {
			s := string(br.data[start:br.pos])
			br.pos++
			return s, nil
		}
		br.pos++
	}
	return string(br.data[start:br.pos]), nil
}
