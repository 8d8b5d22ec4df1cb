// Package codec turns AV1 payloads into RGB samples using libavif through
// github.com/gen2brain/avif.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	goimage "image"

	"github.com/gen2brain/avif"
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/avif-go/container"
	"github.com/kpfaulkner/avif-go/image"
)

var ErrFrameOutOfRange = errors.New("frame index out of range")

// Decoder is the libavif backed frame decoder.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Parse(data []byte) (*container.Container, error) {
	return container.Parse(data)
}

// DecodeFrame decodes frame index and returns it at the depth recorded in
// header. libavif hands 10 and 12 bit content back as 16 bit samples, these
// are rounded back down to the coded depth. The result can be one step away
// from the value libavif produced before widening, so callers comparing
// against another decoder need a tolerance of 1 at 10 and 12 bits. 8 bit
// output is exact.
func (d *Decoder) DecodeFrame(data []byte, header *container.Container, index int) (*image.RGBImage, error) {

	var frame goimage.Image
	if index == 0 {
		img, err := avif.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		frame = img
	} else {
		all, err := avif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(all.Image) {
			return nil, fmt.Errorf("frame %d of %d: %w", index, len(all.Image), ErrFrameOutOfRange)
		}
		frame = all.Image[index]
	}

	depth := 8
	if header != nil && header.Depth > 0 {
		depth = int(header.Depth)
	}
	log.Debugf("decoded frame %d as %T, target depth %d", index, frame, depth)
	return ToRGBImage(frame, depth)
}
