package core

import (
	"errors"

	"github.com/kpfaulkner/avif-go/avifio"
	"github.com/kpfaulkner/avif-go/image"
)

var (
	ErrFileNotFound  = avifio.ErrFileNotFound
	ErrFileCorrupted = avifio.ErrFileCorrupted
	ErrCacheFull     = errors.New("cache full")

	// ErrUnsupportedBitDepth is also reported as ErrFileCorrupted.
	ErrUnsupportedBitDepth = image.ErrUnsupportedBitDepth
)
