package core

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/avif-go/avifio"
	"github.com/kpfaulkner/avif-go/color"
	"github.com/kpfaulkner/avif-go/container"
	"github.com/kpfaulkner/avif-go/image"
	"github.com/kpfaulkner/avif-go/options"
)

// AVIFDecoder loads AVIF files into float images and reads their colour
// profiles. The AV1 work is delegated to a FrameDecoder.
type AVIFDecoder struct {
	decoder   FrameDecoder
	allocator BufferAllocator
	options   *options.AVIFOptions
}

// NewAVIFDecoder creates a decoder. A nil allocator uses a PoolAllocator
// limited by the MaxPixels option. The Debug option raises the global log
// level, it is never lowered here.
func NewAVIFDecoder(decoder FrameDecoder, allocator BufferAllocator, opts *options.AVIFOptions) *AVIFDecoder {
	opt := options.NewAVIFOptions(opts)
	if opt.Debug && !log.IsLevelEnabled(log.DebugLevel) {
		log.SetLevel(log.DebugLevel)
	}
	if allocator == nil {
		allocator = NewPoolAllocator(opt.MaxPixels)
	}
	return &AVIFDecoder{
		decoder:   decoder,
		allocator: allocator,
		options:   opt,
	}
}

// LoadImage decodes the first frame of filename into a 4 channel float
// image with values in [0,1] and alpha set to 0.
func (ad *AVIFDecoder) LoadImage(filename string) (*image.FloatImage, error) {
	data, err := avifio.ReadImage(filename)
	if err != nil {
		log.Debugf("Failed to read image [%s]", filename)
		return nil, err
	}
	return ad.DecodeBytes(filename, data)
}

// DecodeBytes is LoadImage for data that is already in memory. name is only
// used for log messages.
func (ad *AVIFDecoder) DecodeBytes(name string, data []byte) (*image.FloatImage, error) {

	header, err := ad.parse(name, data)
	if err != nil {
		return nil, err
	}

	img := image.NewFloatImage(int(header.Width), int(header.Height))
	// This can be LDR or HDR, it depends on the colour profile.
	img.Flags &^= image.FLAG_RAW
	img.Flags |= image.FLAG_HDR
	img.Profile = profileFromContainer(name, header)

	if ad.options.ParseOnly {
		return img, nil
	}

	rgb, err := ad.decoder.DecodeFrame(data, header, 0)
	if err != nil {
		log.Debugf("Failed to decode first frame of AVIF image [%s]: %v", name, err)
		return nil, fmt.Errorf("decoding first frame: %v: %w", err, ErrFileCorrupted)
	}

	// the decoder output is authoritative for geometry.
	img.Width, img.Height = rgb.Width, rgb.Height

	buf, err := ad.allocator.Alloc(img)
	if err != nil {
		log.Debugf("Failed to allocate buffer for AVIF image [%s]", name)
		if errors.Is(err, ErrCacheFull) {
			return nil, err
		}
		return nil, fmt.Errorf("%v: %w", err, ErrCacheFull)
	}
	if err := img.AttachBuffer(buf); err != nil {
		ad.allocator.Release(buf)
		return nil, fmt.Errorf("%v: %w", err, ErrCacheFull)
	}

	if err := image.Normalize(rgb, img, ad.options.MaxGoroutines); err != nil {
		ad.allocator.Release(buf)
		if errors.Is(err, image.ErrUnsupportedBitDepth) {
			log.Debugf("Invalid bit depth for AVIF image [%s]", name)
		}
		return nil, fmt.Errorf("%w: %w", err, ErrFileCorrupted)
	}

	return img, nil
}

// Release hands the buffer of img back to the allocator. img must not be
// used afterwards.
func (ad *AVIFDecoder) Release(img *image.FloatImage) {
	if img == nil || img.Buffer == nil {
		return
	}
	ad.allocator.Release(img.Buffer)
	img.Buffer = nil
}

// ReadColorProfile returns either a copy of the embedded ICC profile or the
// colour space the CICP triple maps to.
func (ad *AVIFDecoder) ReadColorProfile(filename string) (*color.Profile, error) {
	data, err := avifio.ReadImage(filename)
	if err != nil {
		log.Debugf("Failed to read image [%s]", filename)
		return nil, err
	}
	return ad.ColorProfileFromBytes(filename, data)
}

func (ad *AVIFDecoder) ColorProfileFromBytes(name string, data []byte) (*color.Profile, error) {
	header, err := ad.parse(name, data)
	if err != nil {
		return nil, err
	}
	return profileFromContainer(name, header), nil
}

// ReadHeader parses the container of filename without decoding pixels.
func (ad *AVIFDecoder) ReadHeader(filename string) (*container.Container, error) {
	data, err := avifio.ReadImage(filename)
	if err != nil {
		log.Debugf("Failed to read image [%s]", filename)
		return nil, err
	}
	return ad.parse(filename, data)
}

func (ad *AVIFDecoder) parse(name string, data []byte) (*container.Container, error) {
	if !container.PeekCompatibleFileType(data) {
		log.Debugf("Invalid avif image [%s]", name)
		return nil, fmt.Errorf("not an avif file: %w", ErrFileCorrupted)
	}

	header, err := ad.decoder.Parse(data)
	if err != nil {
		log.Debugf("Failed to parse AVIF image [%s]: %v", name, err)
		return nil, fmt.Errorf("parsing container: %v: %w", err, ErrFileCorrupted)
	}

	if header.ImageCount > 1 {
		log.Warnf("image '%s' has more than one frame!", name)
	}
	return header, nil
}

func profileFromContainer(name string, header *container.Container) *color.Profile {
	p := &color.Profile{
		Type:      color.CS_NONE,
		Primaries: header.Primaries,
		Transfer:  header.Transfer,
		Matrix:    header.Matrix,
		FullRange: header.FullRange,
		HasNCLX:   header.HasNCLX,
	}

	if len(header.ICC) > 0 {
		p.ICC = append([]byte(nil), header.ICC...)
		return p
	}

	cs, known := color.Classify(header.Primaries, header.Transfer, header.Matrix)
	if !known {
		log.Debugf("Unsupported color profile for %s", name)
	}
	p.Type = cs
	return p
}
