package testcommon

import (
	"github.com/kpfaulkner/avif-go/container"
	"github.com/kpfaulkner/avif-go/image"
)

// FakeFrameDecoder is a mock frame decoder for testing purposes. Parse uses
// the real container parser unless ParseErr is set, DecodeFrame returns
// RGB (or DecodeErr).
type FakeFrameDecoder struct {
	ParseErr  error
	DecodeErr error
	RGB       *image.RGBImage

	ParseCalls  int
	DecodeCalls []int
}

func (fd *FakeFrameDecoder) Parse(data []byte) (*container.Container, error) {
	fd.ParseCalls++
	if fd.ParseErr != nil {
		return nil, fd.ParseErr
	}
	return container.Parse(data)
}

func (fd *FakeFrameDecoder) DecodeFrame(data []byte, header *container.Container, index int) (*image.RGBImage, error) {
	fd.DecodeCalls = append(fd.DecodeCalls, index)
	if fd.DecodeErr != nil {
		return nil, fd.DecodeErr
	}
	return fd.RGB, nil
}

// GradientRGB builds an RGB image where every sample is derived from its
// coordinates, within the range of depth.
func GradientRGB(width int, height int, depth int) *image.RGBImage {
	rgb, err := image.NewRGBImage(width, height, depth)
	if err != nil {
		panic(err)
	}
	maxValue := int(rgb.MaxValue())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < image.RGBChannels; c++ {
				rgb.SetSample(x, y, c, uint16((x*97+y*13+c*5)%(maxValue+1)))
			}
		}
	}
	return rgb
}
