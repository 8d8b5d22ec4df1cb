package imageformats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/mdouchement/hdr/codec/rgbe"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/tiff"

	"github.com/kpfaulkner/avif-go/image"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Format int

const (
	FormatPNG Format = iota
	FormatTIFF
	FormatRGBE
	FormatPFM
	FormatPFMZstd
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatTIFF:
		return "tiff"
	case FormatRGBE:
		return "rgbe"
	case FormatPFM:
		return "pfm"
	case FormatPFMZstd:
		return "pfm+zstd"
	}
	return "unknown"
}

// FormatFromFilename picks the output format from the extension of
// filename.
func FormatFromFilename(filename string) (Format, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pfm.zst"):
		return FormatPFMZstd, nil
	case strings.HasSuffix(name, ".pfm"):
		return FormatPFM, nil
	case strings.HasSuffix(name, ".png"):
		return FormatPNG, nil
	case strings.HasSuffix(name, ".tif"), strings.HasSuffix(name, ".tiff"):
		return FormatTIFF, nil
	case strings.HasSuffix(name, ".hdr"):
		return FormatRGBE, nil
	}
	return 0, fmt.Errorf("%s: %w", filename, ErrUnknownFormat)
}

// WriteRGBE writes img as a Radiance HDR file, values above 1 survive.
func WriteRGBE(img *image.FloatImage, output io.Writer) error {
	return rgbe.Encode(output, img)
}

// WriteTIFF writes img as a deflate compressed 16 bit TIFF.
func WriteTIFF(img *image.FloatImage, output io.Writer) error {
	return tiff.Encode(output, img.ToRGBA64(), &tiff.Options{Compression: tiff.Deflate})
}

// NewCompressedWriter wraps output in a zstd stream. Close must be called to
// flush it.
func NewCompressedWriter(output io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(output, zstd.WithEncoderConcurrency(runtime.NumCPU()))
}

// Write encodes img in format to output.
func Write(img *image.FloatImage, format Format, output io.Writer) error {
	switch format {
	case FormatPNG:
		return WritePNG(img, output)
	case FormatTIFF:
		return WriteTIFF(img, output)
	case FormatRGBE:
		return WriteRGBE(img, output)
	case FormatPFM:
		return WritePFM(img, output)
	case FormatPFMZstd:
		enc, err := NewCompressedWriter(output)
		if err != nil {
			return err
		}
		if err := WritePFM(img, enc); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %d: %w", format, ErrUnknownFormat)
}

// WriteFile creates filename and writes img in the format its extension
// names.
func WriteFile(img *image.FloatImage, filename string) error {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Debugf("writing %s as %s", filename, format)
	if err := Write(img, format, f); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}
