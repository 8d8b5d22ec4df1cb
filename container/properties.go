package container

import (
	"fmt"

	"github.com/kpfaulkner/avif-go/avifio"
	"github.com/kpfaulkner/avif-go/color"
)

const (
	colourTypeNCLX = "nclx"
	colourTypeProf = "prof"
	colourTypeRICC = "rICC"
)

// applyProperties decodes the properties heif leaves as raw boxes and
// copies them into the container.
// Later properties of the same kind do not override earlier ones, except
// that an ICC colr and an nclx colr may both be present.
func applyProperties(c *Container, props []property) error {
	seen := make(map[string]bool)

	for _, prop := range props {
		br := avifio.NewByteReader(prop.payload)

		switch prop.boxType {
		case BoxPixi:
			if seen[BoxPixi] {
				continue
			}
			seen[BoxPixi] = true
			if _, _, err := br.ReadFullBoxHeader(); err != nil {
				return fmt.Errorf("pixi: %w", ErrTruncated)
			}
			channels, err := br.ReadU8()
			if err != nil || channels == 0 {
				return fmt.Errorf("pixi: %w", ErrInvalidContainer)
			}
			depth, err := br.ReadU8()
			if err != nil {
				return fmt.Errorf("pixi: %w", ErrTruncated)
			}
			// av1C wins when both are present.
			if c.AV1C == nil {
				c.Depth = depth
			}

		case BoxAv1C:
			if seen[BoxAv1C] {
				continue
			}
			seen[BoxAv1C] = true
			a, err := ParseAV1C(prop.payload)
			if err != nil {
				return err
			}
			c.AV1C = a
			c.Depth = a.BitDepth()

		case BoxColr:
			if err := applyColour(c, br, seen); err != nil {
				return err
			}

		case BoxImir:
			axis, err := br.ReadU8()
			if err != nil {
				return fmt.Errorf("imir: %w", ErrTruncated)
			}
			c.Mirror = int(axis & 0x01)

		case BoxClli:
			maxCLL, err := br.ReadU16()
			if err != nil {
				return fmt.Errorf("clli: %w", ErrTruncated)
			}
			maxPALL, err := br.ReadU16()
			if err != nil {
				return fmt.Errorf("clli: %w", ErrTruncated)
			}
			c.CLLI = &ContentLightLevel{MaxCLL: maxCLL, MaxPALL: maxPALL}
		}
	}
	return nil
}

func applyColour(c *Container, br *avifio.ByteReader, seen map[string]bool) error {
	colourType, err := br.ReadFourCC()
	if err != nil {
		return fmt.Errorf("colr: %w", ErrTruncated)
	}

	switch colourType {
	case colourTypeNCLX:
		if seen[colourTypeNCLX] {
			return nil
		}
		seen[colourTypeNCLX] = true
		primaries, err := br.ReadU16()
		if err != nil {
			return fmt.Errorf("nclx: %w", ErrTruncated)
		}
		transfer, err := br.ReadU16()
		if err != nil {
			return fmt.Errorf("nclx: %w", ErrTruncated)
		}
		matrix, err := br.ReadU16()
		if err != nil {
			return fmt.Errorf("nclx: %w", ErrTruncated)
		}
		rangeByte, err := br.ReadU8()
		if err != nil {
			return fmt.Errorf("nclx: %w", ErrTruncated)
		}
		c.Primaries = color.ColorPrimaries(primaries)
		c.Transfer = color.TransferCharacteristics(transfer)
		c.Matrix = color.MatrixCoefficients(matrix)
		c.FullRange = rangeByte&0x80 != 0
		c.HasNCLX = true

	case colourTypeProf, colourTypeRICC:
		if seen[colourTypeProf] {
			return nil
		}
		seen[colourTypeProf] = true
		icc, err := br.ReadBytes(br.Remaining())
		if err != nil {
			return err
		}
		c.ICC = append([]byte(nil), icc...)
	}
	return nil
}
