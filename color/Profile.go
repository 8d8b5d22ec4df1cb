package color

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"seehuhn.de/go/icc"
)

var ErrInvalidICC = errors.New("invalid ICC profile")

// Profile is the colour description read from an AVIF file. Either ICC
// is populated or Type holds the classified CICP triple.
type Profile struct {
	Type ColorSpace
	ICC  []byte

	Primaries ColorPrimaries
	Transfer  TransferCharacteristics
	Matrix    MatrixCoefficients
	FullRange bool

	// HasNCLX is set when the triple was read from an nclx box rather than
	// defaulted.
	HasNCLX bool
}

func (p *Profile) HasICCProfile() bool {
	return len(p.ICC) > 0
}

func (p *Profile) String() string {
	if p.HasICCProfile() {
		return fmt.Sprintf("ICC profile (%d bytes)", len(p.ICC))
	}
	return fmt.Sprintf("%s (primaries %s, transfer %s, matrix %s)", p.Type, p.Primaries, p.Transfer, p.Matrix)
}

// ICCHeader is the part of the ICC header the loader reports. The
// signatures are the four character codes with trailing spaces removed.
type ICCHeader struct {
	Size       uint32
	Version    uint32
	Class      string
	ColorSpace string
	PCS        string
}

func (h ICCHeader) VersionString() string {
	return fmt.Sprintf("%d.%d.%d", h.Version>>24, (h.Version>>20)&0xF, (h.Version>>16)&0xF)
}

// ParseICCHeader sanity checks an embedded ICC profile and returns its
// header. data is not modified.
func ParseICCHeader(data []byte) (*ICCHeader, error) {
	// icc.Decode takes ownership of its argument and clears the profile ID
	// fields, the caller's bytes must stay as read from the file.
	p, err := icc.Decode(append([]byte(nil), data...))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidICC)
	}

	size := binary.BigEndian.Uint32(data[0:4])
	if int(size) > len(data) {
		return nil, fmt.Errorf("header size %d exceeds data length %d: %w", size, len(data), ErrInvalidICC)
	}

	return &ICCHeader{
		Size:       size,
		Version:    uint32(p.Version),
		Class:      signature(uint32(p.Class)),
		ColorSpace: signature(uint32(p.ColorSpace)),
		PCS:        signature(uint32(p.PCS)),
	}, nil
}

func signature(v uint32) string {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return strings.TrimRight(string(b), " ")
}
