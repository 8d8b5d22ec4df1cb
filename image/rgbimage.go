package image

import (
	"encoding/binary"
	"fmt"

	"github.com/kpfaulkner/avif-go/util"
)

const RGBChannels = 3

// RGBImage is the interleaved RGB output of the AV1 decoder. Depths above 8
// store every sample as a little endian 16 bit word.
type RGBImage struct {
	Width    int
	Height   int
	Depth    int
	RowBytes int
	Pixels   []byte
}

// NewRGBImage allocates a tightly packed RGB image.
func NewRGBImage(width int, height int, depth int) (*RGBImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d: %w", width, height, ErrInvalidBuffer)
	}
	if depth < 1 || depth > 16 {
		return nil, fmt.Errorf("invalid depth %d: %w", depth, ErrInvalidBuffer)
	}
	rowBytes := width * RGBChannels * bytesPerSample(depth)
	return &RGBImage{
		Width:    width,
		Height:   height,
		Depth:    depth,
		RowBytes: rowBytes,
		Pixels:   make([]byte, rowBytes*height),
	}, nil
}

func bytesPerSample(depth int) int {
	if depth > 8 {
		return 2
	}
	return 1
}

func (rgb *RGBImage) BytesPerSample() int {
	return bytesPerSample(rgb.Depth)
}

// MaxValue is the largest sample value for the image depth.
func (rgb *RGBImage) MaxValue() uint32 {
	return util.MaxValueForDepth(rgb.Depth)
}

func (rgb *RGBImage) offset(x int, y int, c int) int {
	return y*rgb.RowBytes + (RGBChannels*x+c)*rgb.BytesPerSample()
}

// Sample returns channel c of pixel (x,y).
func (rgb *RGBImage) Sample(x int, y int, c int) uint16 {
	o := rgb.offset(x, y, c)
	if rgb.Depth > 8 {
		return binary.LittleEndian.Uint16(rgb.Pixels[o:])
	}
	return uint16(rgb.Pixels[o])
}

func (rgb *RGBImage) SetSample(x int, y int, c int, v uint16) {
	o := rgb.offset(x, y, c)
	if rgb.Depth > 8 {
		binary.LittleEndian.PutUint16(rgb.Pixels[o:], v)
		return
	}
	rgb.Pixels[o] = uint8(v)
}

// Row8 returns row y for 8 bit images.
func (rgb *RGBImage) Row8(y int) []uint8 {
	start := y * rgb.RowBytes
	return rgb.Pixels[start : start+rgb.Width*RGBChannels]
}

// Validate checks the buffer is large enough for the declared geometry.
func (rgb *RGBImage) Validate() error {
	minRow := rgb.Width * RGBChannels * rgb.BytesPerSample()
	if rgb.Width <= 0 || rgb.Height <= 0 || rgb.RowBytes < minRow {
		return fmt.Errorf("rgb image %dx%d with row bytes %d: %w", rgb.Width, rgb.Height, rgb.RowBytes, ErrInvalidBuffer)
	}
	if len(rgb.Pixels) < rgb.RowBytes*(rgb.Height-1)+minRow {
		return fmt.Errorf("rgb image pixel buffer too small (%d bytes): %w", len(rgb.Pixels), ErrInvalidBuffer)
	}
	return nil
}
