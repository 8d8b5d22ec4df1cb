package image

import (
	"errors"
	"fmt"
	goimage "image"
	gocolor "image/color"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/kpfaulkner/avif-go/color"
	"github.com/kpfaulkner/avif-go/util"
)

const (
	TYPE_INT   = 0
	TYPE_FLOAT = 1

	// colour space tags of a buffer descriptor.
	IOP_CS_NONE = 0
	IOP_CS_RAW  = 1
	IOP_CS_LAB  = 2
	IOP_CS_RGB  = 3

	FLAG_RAW uint32 = 1 << 0
	FLAG_LDR uint32 = 1 << 1
	FLAG_HDR uint32 = 1 << 2

	FloatChannels = 4
)

var ErrInvalidBuffer = errors.New("invalid image buffer")

var _ hdr.Image = (*FloatImage)(nil)

// BufferDescriptor describes the layout of a FloatImage buffer.
type BufferDescriptor struct {
	Channels   int
	DataType   int
	ColorSpace int
}

// FloatImage is the 4 channel float32 image produced by the loader.
// Pixels are stored interleaved RGBA, row major.
type FloatImage struct {
	Width  int
	Height int
	Desc   BufferDescriptor
	Flags  uint32

	// Profile is populated by callers that also read the colour profile.
	Profile *color.Profile

	Buffer []float32
}

// NewFloatImage prepares the descriptor for a width x height RGB float
// image. The buffer itself is attached later by the allocator.
func NewFloatImage(width int, height int) *FloatImage {
	return &FloatImage{
		Width:  width,
		Height: height,
		Desc: BufferDescriptor{
			Channels:   FloatChannels,
			DataType:   TYPE_FLOAT,
			ColorSpace: IOP_CS_RGB,
		},
	}
}

func (fi *FloatImage) BufferSize() int {
	return fi.Width * fi.Height * fi.Desc.Channels
}

// AttachBuffer sets the pixel storage. The buffer must be large enough to
// hold every channel of every pixel.
func (fi *FloatImage) AttachBuffer(buf []float32) error {
	if len(buf) < fi.BufferSize() {
		return fmt.Errorf("buffer of %d floats for %dx%dx%d image: %w", len(buf), fi.Width, fi.Height, fi.Desc.Channels, ErrInvalidBuffer)
	}
	fi.Buffer = buf[:fi.BufferSize()]
	return nil
}

func (fi *FloatImage) IsFloat() bool {
	return fi.Desc.DataType == TYPE_FLOAT
}

func (fi *FloatImage) IsHDR() bool {
	return fi.Flags&FLAG_HDR != 0
}

func (fi *FloatImage) IsRaw() bool {
	return fi.Flags&FLAG_RAW != 0
}

// Pixel returns the 4 channels of pixel (x,y).
func (fi *FloatImage) Pixel(x int, y int) []float32 {
	i := (y*fi.Width + x) * fi.Desc.Channels
	return fi.Buffer[i : i+fi.Desc.Channels]
}

// Equals compares two FloatImages and returns true if they are equal.
func (fi *FloatImage) Equals(other *FloatImage) bool {
	if fi.Width != other.Width || fi.Height != other.Height || fi.Desc != other.Desc || fi.Flags != other.Flags {
		return false
	}
	if len(fi.Buffer) != len(other.Buffer) {
		return false
	}
	for i := range fi.Buffer {
		if fi.Buffer[i] != other.Buffer[i] {
			return false
		}
	}
	return true
}

// ColorModel, Bounds and At implement image.Image. Values are clamped to
// [0,1] and the alpha channel of the buffer is ignored.
func (fi *FloatImage) ColorModel() gocolor.Model {
	return gocolor.RGBA64Model
}

func (fi *FloatImage) Bounds() goimage.Rectangle {
	return goimage.Rect(0, 0, fi.Width, fi.Height)
}

func (fi *FloatImage) At(x int, y int) gocolor.Color {
	if !(goimage.Point{X: x, Y: y}.In(fi.Bounds())) {
		return gocolor.RGBA64{}
	}
	p := fi.Pixel(x, y)
	return gocolor.RGBA64{
		R: toUint16(p[0]),
		G: toUint16(p[1]),
		B: toUint16(p[2]),
		A: 0xFFFF,
	}
}

// HDRAt implements hdr.Image, values are passed through unclamped.
func (fi *FloatImage) HDRAt(x int, y int) hdrcolor.Color {
	if !(goimage.Point{X: x, Y: y}.In(fi.Bounds())) {
		return hdrcolor.RGB{}
	}
	p := fi.Pixel(x, y)
	return hdrcolor.RGB{R: float64(p[0]), G: float64(p[1]), B: float64(p[2])}
}

func (fi *FloatImage) Size() int {
	return fi.Width * fi.Height
}

func toUint16(v float32) uint16 {
	return uint16(util.Clamp(v, 0, 1)*65535 + 0.5)
}

// ToRGBA64 converts into a 16 bit per channel image.RGBA64.
func (fi *FloatImage) ToRGBA64() *goimage.RGBA64 {
	img := goimage.NewRGBA64(fi.Bounds())
	for y := 0; y < fi.Height; y++ {
		for x := 0; x < fi.Width; x++ {
			img.SetRGBA64(x, y, fi.At(x, y).(gocolor.RGBA64))
		}
	}
	return img
}
