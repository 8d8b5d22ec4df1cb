package codec

import (
	"encoding/binary"
	goimage "image"
	"image/color"

	"github.com/kpfaulkner/avif-go/image"
	"github.com/kpfaulkner/avif-go/util"
)

// ToRGBImage drops alpha from src and stores its colour samples at depth.
// Premultiplied sources are divided back out first.
func ToRGBImage(src goimage.Image, depth int) (*image.RGBImage, error) {

	bounds := src.Bounds()
	rgb, err := image.NewRGBImage(bounds.Dx(), bounds.Dy(), depth)
	if err != nil {
		return nil, err
	}

	switch s := src.(type) {
	case *goimage.RGBA:
		for y := 0; y < rgb.Height; y++ {
			row := s.Pix[y*s.Stride:]
			for x := 0; x < rgb.Width; x++ {
				p := row[x*4 : x*4+4]
				a := uint32(p[3])
				for c := 0; c < image.RGBChannels; c++ {
					v := unpremultiply(uint32(p[c]), a, 0xFF)
					rgb.SetSample(x, y, c, util.ScaleToDepth(uint16(v), 8, depth))
				}
			}
		}
	case *goimage.RGBA64:
		for y := 0; y < rgb.Height; y++ {
			row := s.Pix[y*s.Stride:]
			for x := 0; x < rgb.Width; x++ {
				p := row[x*8 : x*8+8]
				a := uint32(binary.BigEndian.Uint16(p[6:]))
				for c := 0; c < image.RGBChannels; c++ {
					v := unpremultiply(uint32(binary.BigEndian.Uint16(p[c*2:])), a, 0xFFFF)
					rgb.SetSample(x, y, c, util.ScaleToDepth(uint16(v), 16, depth))
				}
			}
		}
	default:
		for y := 0; y < rgb.Height; y++ {
			for x := 0; x < rgb.Width; x++ {
				n := color.NRGBA64Model.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
				rgb.SetSample(x, y, 0, util.ScaleToDepth(n.R, 16, depth))
				rgb.SetSample(x, y, 1, util.ScaleToDepth(n.G, 16, depth))
				rgb.SetSample(x, y, 2, util.ScaleToDepth(n.B, 16, depth))
			}
		}
	}
	return rgb, nil
}

func unpremultiply(v uint32, a uint32, maxValue uint32) uint32 {
	if a == maxValue {
		return v
	}
	if a == 0 {
		return 0
	}
	return util.Clamp((v*maxValue+a/2)/a, 0, maxValue)
}
