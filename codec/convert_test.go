package codec

import (
	goimage "image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRGBImage(t *testing.T) {

	opaque8 := goimage.NewRGBA(goimage.Rect(0, 0, 2, 1))
	opaque8.SetRGBA(0, 0, color.RGBA{R: 10, G: 128, B: 255, A: 255})
	opaque8.SetRGBA(1, 0, color.RGBA{R: 0, G: 1, B: 2, A: 255})

	half8 := goimage.NewRGBA(goimage.Rect(0, 0, 1, 1))
	half8.SetRGBA(0, 0, color.RGBA{R: 64, G: 32, B: 0, A: 128})

	deep := goimage.NewRGBA64(goimage.Rect(0, 0, 1, 1))
	deep.SetRGBA64(0, 0, color.RGBA64{R: 0xFFFF, G: 0x8020, B: 0, A: 0xFFFF})

	transparent := goimage.NewRGBA64(goimage.Rect(0, 0, 1, 1))
	transparent.SetRGBA64(0, 0, color.RGBA64{R: 0, G: 0, B: 0, A: 0})

	gray := goimage.NewGray(goimage.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 255})

	for _, tc := range []struct {
		name     string
		src      goimage.Image
		depth    int
		expected [][3]uint16
	}{
		{name: "opaque 8 bit", src: opaque8, depth: 8, expected: [][3]uint16{{10, 128, 255}, {0, 1, 2}}},
		{name: "premultiplied 8 bit", src: half8, depth: 8, expected: [][3]uint16{{128, 64, 0}}},
		{name: "16 bit to 10 bit", src: deep, depth: 10, expected: [][3]uint16{{1023, 512, 0}}},
		{name: "16 bit to 12 bit", src: deep, depth: 12, expected: [][3]uint16{{4095, 2050, 0}}},
		{name: "fully transparent", src: transparent, depth: 10, expected: [][3]uint16{{0, 0, 0}}},
		{name: "generic image", src: gray, depth: 12, expected: [][3]uint16{{4095, 4095, 4095}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rgb, err := ToRGBImage(tc.src, tc.depth)
			require.Nil(t, err)
			assert.Equal(t, tc.depth, rgb.Depth)
			assert.Equal(t, len(tc.expected), rgb.Width)

			for x, want := range tc.expected {
				got := [3]uint16{rgb.Sample(x, 0, 0), rgb.Sample(x, 0, 1), rgb.Sample(x, 0, 2)}
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestToRGBImageRejectsDepth(t *testing.T) {
	_, err := ToRGBImage(goimage.NewRGBA(goimage.Rect(0, 0, 1, 1)), 0)
	assert.NotNil(t, err)
}

func TestUnpremultiply(t *testing.T) {
	assert.Equal(t, uint32(200), unpremultiply(200, 255, 255))
	assert.Equal(t, uint32(0), unpremultiply(200, 0, 255))
	assert.Equal(t, uint32(255), unpremultiply(200, 100, 255))
}
