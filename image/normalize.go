package image

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// Normalize scales the samples of rgb into [0,1] and writes them into the
// float buffer of dst. The fourth channel is always 0. Rows are shared out
// between workers goroutines.
func Normalize(rgb *RGBImage, dst *FloatImage, workers int) error {

	if err := rgb.Validate(); err != nil {
		return err
	}
	if dst.Width != rgb.Width || dst.Height != rgb.Height || dst.Desc.Channels != FloatChannels {
		return fmt.Errorf("destination %dx%dx%d does not match source %dx%d: %w",
			dst.Width, dst.Height, dst.Desc.Channels, rgb.Width, rgb.Height, ErrInvalidBuffer)
	}
	if len(dst.Buffer) < dst.BufferSize() {
		return fmt.Errorf("destination buffer too small: %w", ErrInvalidBuffer)
	}

	scale := 1.0 / float32(rgb.MaxValue())

	var processRows func(sy int, ey int)
	switch rgb.Depth {
	case 12, 10:
		processRows = func(sy int, ey int) {
			for y := sy; y < ey; y++ {
				in := rgb.Pixels[y*rgb.RowBytes:]
				out := dst.Buffer[y*rgb.Width*FloatChannels:]
				for x := 0; x < rgb.Width; x++ {
					p := in[x*RGBChannels*2:]
					o := out[x*FloatChannels : x*FloatChannels+FloatChannels]
					o[0] = float32(binary.LittleEndian.Uint16(p[0:])) * scale
					o[1] = float32(binary.LittleEndian.Uint16(p[2:])) * scale
					o[2] = float32(binary.LittleEndian.Uint16(p[4:])) * scale
					o[3] = 0
				}
			}
		}
	case 8:
		processRows = func(sy int, ey int) {
			for y := sy; y < ey; y++ {
				in := rgb.Row8(y)
				out := dst.Buffer[y*rgb.Width*FloatChannels:]
				for x := 0; x < rgb.Width; x++ {
					p := in[x*RGBChannels : x*RGBChannels+RGBChannels]
					o := out[x*FloatChannels : x*FloatChannels+FloatChannels]
					o[0] = float32(p[0]) * scale
					o[1] = float32(p[1]) * scale
					o[2] = float32(p[2]) * scale
					o[3] = 0
				}
			}
		}
	default:
		return fmt.Errorf("depth %d: %w", rgb.Depth, ErrUnsupportedBitDepth)
	}

	height := rgb.Height
	numWorkers := workers
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > height {
		numWorkers = height
	}
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}
		wg.Add(1)
		go func(sy, ey int) {
			defer wg.Done()
			processRows(sy, ey)
		}(startY, endY)
	}
	wg.Wait()

	return nil
}
