package avif_go

import (
	"bytes"
	"image"
	color2 "image/color"
	"io"

	"github.com/kpfaulkner/avif-go/codec"
	"github.com/kpfaulkner/avif-go/color"
	"github.com/kpfaulkner/avif-go/container"
	"github.com/kpfaulkner/avif-go/core"
	avifimage "github.com/kpfaulkner/avif-go/image"
	"github.com/kpfaulkner/avif-go/options"
)

// Decode reads a whole AVIF stream and returns its first frame as a
// *image.FloatImage. The "avif" image format itself is registered by
// github.com/gen2brain/avif, which this package imports through codec.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := core.NewAVIFDecoder(codec.NewDecoder(), nil, nil)
	return decoder.DecodeBytes("stream", data)
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	if !container.PeekCompatibleFileType(data) {
		return image.Config{}, core.ErrFileCorrupted
	}

	header, err := container.Parse(data)
	if err != nil {
		return image.Config{}, err
	}

	var colourModel color2.Model
	if header.Depth > 8 {
		colourModel = color2.RGBA64Model
	} else {
		colourModel = color2.RGBAModel
	}

	return image.Config{
		ColorModel: colourModel,
		Width:      int(header.Width),
		Height:     int(header.Height),
	}, nil
}

// LoadImage decodes the first frame of filename using libavif.
func LoadImage(filename string, opts *options.AVIFOptions) (*avifimage.FloatImage, error) {
	return core.NewAVIFDecoder(codec.NewDecoder(), nil, opts).LoadImage(filename)
}

// ReadColorProfile reads the colour profile of filename without decoding
// any pixels.
func ReadColorProfile(filename string) (*color.Profile, error) {
	return core.NewAVIFDecoder(codec.NewDecoder(), nil, nil).ReadColorProfile(filename)
}

// ReadConfig is DecodeConfig for an in memory file.
func ReadConfig(data []byte) (image.Config, error) {
	return DecodeConfig(bytes.NewReader(data))
}
