// Package metadata reads the Exif item an AVIF file may carry.
package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

var ErrInvalidExif = errors.New("invalid exif payload")

// Summary holds the handful of tags the tools report.
type Summary struct {
	Make        string
	Model       string
	Orientation int
	DateTime    time.Time
}

// DecodeExif parses an AVIF Exif item. The payload starts with a 4 byte big
// endian offset to the TIFF header.
func DecodeExif(payload []byte) (*exif.Exif, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%d bytes: %w", len(payload), ErrInvalidExif)
	}
	offset := binary.BigEndian.Uint32(payload)
	if uint64(offset)+4 > uint64(len(payload)) {
		return nil, fmt.Errorf("tiff header offset %d beyond %d bytes: %w", offset, len(payload), ErrInvalidExif)
	}

	x, err := exif.Decode(bytes.NewReader(payload[4+offset:]))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidExif)
	}
	return x, nil
}

// Summarise picks out the camera and time tags. Missing tags are left at
// their zero value.
func Summarise(x *exif.Exif) Summary {
	var s Summary
	if tag, err := x.Get(exif.Make); err == nil {
		if v, err := tag.StringVal(); err == nil {
			s.Make = v
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if v, err := tag.StringVal(); err == nil {
			s.Model = v
		}
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if v, err := tag.Int(0); err == nil {
			s.Orientation = v
		}
	}
	if dt, err := x.DateTime(); err == nil {
		s.DateTime = dt
	}
	return s
}
