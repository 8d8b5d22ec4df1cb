package imageformats

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/kpfaulkner/avif-go/color"
	"github.com/kpfaulkner/avif-go/image"
	"github.com/kpfaulkner/avif-go/util"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// WritePNG writes img as a 16 bit RGB PNG. image/png can't carry colour
// information, so the chunks are written by hand. An ICC profile becomes
// iCCP and a CICP triple becomes cICP, even when it was not classified.
// Images with no colour information at all are tagged sRGB.
func WritePNG(img *image.FloatImage, output io.Writer) error {

	if _, err := output.Write(pngSignature); err != nil {
		return err
	}

	if err := writeIHDR(img, output); err != nil {
		return err
	}

	profile := img.Profile
	switch {
	case profile != nil && profile.HasICCProfile():
		if err := writeICCP(profile.ICC, output); err != nil {
			return err
		}
	case profile != nil && profile.Type == color.CS_NONE && profile.HasNCLX && !hasCICP(profile):
		// an nclx box that leaves primaries or transfer unspecified says
		// nothing PNG can express, and sRGB would be a guess.
	case profile != nil && (profile.Type != color.CS_NONE || profile.HasNCLX):
		if err := writeCICP(profile, output); err != nil {
			return err
		}
	default:
		if err := writeChunk(output, "sRGB", []byte{0x00}); err != nil {
			return err
		}
	}

	if err := writeIDAT(img, output); err != nil {
		return err
	}
	return writeChunk(output, "IEND", nil)
}

func writeChunk(output io.Writer, name string, data []byte) error {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(len(data)))
	if _, err := output.Write(b); err != nil {
		return err
	}

	typeAndData := append([]byte(name), data...)
	if _, err := output.Write(typeAndData); err != nil {
		return err
	}

	binary.BigEndian.PutUint32(b, crc32.ChecksumIEEE(typeAndData))
	_, err := output.Write(b)
	return err
}

func writeIHDR(img *image.FloatImage, output io.Writer) error {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(img.Width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(img.Height))
	ihdr[8] = 16 // bit depth
	ihdr[9] = 2  // truecolour
	ihdr[10] = 0
	ihdr[11] = 0
	ihdr[12] = 0
	return writeChunk(output, "IHDR", ihdr)
}

func writeICCP(icc []byte, output io.Writer) error {

	var buf bytes.Buffer
	buf.Write([]byte("avif-go"))
	buf.WriteByte(0x00)
	// compression method
	buf.WriteByte(0x00)

	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return err
	}
	if _, err = w.Write(icc); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return writeChunk(output, "iCCP", buf.Bytes())
}

func hasCICP(profile *color.Profile) bool {
	return profile.Primaries != color.PRI_UNSPECIFIED && profile.Transfer != color.TF_UNSPECIFIED
}

// writeCICP tags the samples with the primaries and transfer of profile.
// They are RGB once decoded, which PNG requires to be full range whatever
// range the AV1 stream was coded in.
func writeCICP(profile *color.Profile, output io.Writer) error {
	data := []byte{byte(profile.Primaries), byte(profile.Transfer), 0, 1}
	return writeChunk(output, "cICP", data)
}

func writeIDAT(img *image.FloatImage, output io.Writer) error {

	var compressed bytes.Buffer
	w, err := zlib.NewWriterLevel(&compressed, zlib.DefaultCompression)
	if err != nil {
		return err
	}

	row := make([]byte, 1+img.Width*3*2)
	for y := 0; y < img.Height; y++ {
		// filter type none
		row[0] = 0
		for x := 0; x < img.Width; x++ {
			p := img.Pixel(x, y)
			for c := 0; c < 3; c++ {
				v := uint16(util.Clamp(p[c], 0, 1)*65535 + 0.5)
				binary.BigEndian.PutUint16(row[1+(x*3+c)*2:], v)
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return writeChunk(output, "IDAT", compressed.Bytes())
}
