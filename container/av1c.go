package container

import "fmt"

// AV1C is the AV1CodecConfigurationRecord stored in the av1C property.
type AV1C struct {
	Version              uint8
	SeqProfile           uint8
	SeqLevelIdx0         uint8
	SeqTier0             uint8
	HighBitDepth         bool
	TwelveBit            bool
	Monochrome           bool
	ChromaSubsamplingX   uint8
	ChromaSubsamplingY   uint8
	ChromaSamplePosition uint8

	// sequence header and metadata OBUs, if any.
	ConfigOBUs []byte
}

// ParseAV1C parses the 4 byte fixed header of an av1C payload.
func ParseAV1C(b []byte) (*AV1C, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("av1C too short (%d bytes): %w", len(b), ErrInvalidContainer)
	}
	if b[0]>>7 != 1 {
		return nil, fmt.Errorf("av1C marker bit not set: %w", ErrInvalidContainer)
	}

	rec := &AV1C{
		Version:              b[0] & 0x7F,
		SeqProfile:           b[1] >> 5,
		SeqLevelIdx0:         b[1] & 0x1F,
		SeqTier0:             b[2] >> 7,
		HighBitDepth:         (b[2]>>6)&0x01 != 0,
		TwelveBit:            (b[2]>>5)&0x01 != 0,
		Monochrome:           (b[2]>>4)&0x01 != 0,
		ChromaSubsamplingX:   (b[2] >> 3) & 0x01,
		ChromaSubsamplingY:   (b[2] >> 2) & 0x01,
		ChromaSamplePosition: b[2] & 0x03,
	}
	if len(b) > 4 {
		rec.ConfigOBUs = append([]byte(nil), b[4:]...)
	}
	return rec, nil
}

// BitDepth returns 8, 10 or 12.
func (a *AV1C) BitDepth() uint8 {
	if !a.HighBitDepth {
		return 8
	}
	if a.SeqProfile == 2 && a.TwelveBit {
		return 12
	}
	return 10
}

// PixelFormat describes the chroma subsampling, e.g. "YUV420".
func (a *AV1C) PixelFormat() string {
	switch {
	case a.Monochrome:
		return "YUV400"
	case a.ChromaSubsamplingX == 1 && a.ChromaSubsamplingY == 1:
		return "YUV420"
	case a.ChromaSubsamplingX == 1:
		return "YUV422"
	}
	return "YUV444"
}
