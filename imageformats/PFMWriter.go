package imageformats

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/kpfaulkner/avif-go/image"
)

// WritePFM writes the colour channels of img as a big endian PF file.
// Rows are stored bottom to top.
func WritePFM(img *image.FloatImage, output io.Writer) error {

	width := img.Width
	height := img.Height

	header := fmt.Sprintf("PF\n%d %d\n1.0\n", width, height)
	if _, err := output.Write([]byte(header)); err != nil {
		return err
	}

	row := make([]byte, width*3*4)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			p := img.Pixel(x, y)
			for c := 0; c < 3; c++ {
				binary.BigEndian.PutUint32(row[(x*3+c)*4:], math.Float32bits(p[c]))
			}
		}
		if _, err := output.Write(row); err != nil {
			return err
		}
	}
	return nil
}
