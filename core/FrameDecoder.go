package core

import (
	"github.com/kpfaulkner/avif-go/container"
	"github.com/kpfaulkner/avif-go/image"
)

// FrameDecoder is the AV1 side of the loader: it understands the container
// and turns a frame into RGB samples at the image's native depth.
type FrameDecoder interface {
	Parse(data []byte) (*container.Container, error)
	DecodeFrame(data []byte, header *container.Container, index int) (*image.RGBImage, error)
}
