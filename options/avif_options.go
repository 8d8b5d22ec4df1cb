package options

import "runtime"

type AVIFOptions struct {
	Debug bool

	// ParseOnly stops after the container has been read, no pixels are
	// decoded.
	ParseOnly bool

	// MaxGoroutines is the number of workers used to normalise pixels.
	MaxGoroutines int

	// MaxPixels caps the size of the float buffer the default allocator
	// hands out. 0 means no limit.
	MaxPixels int
}

func NewAVIFOptions(options *AVIFOptions) *AVIFOptions {

	opt := &AVIFOptions{
		MaxGoroutines: runtime.NumCPU(),
	}
	if options != nil {
		opt.Debug = options.Debug
		opt.ParseOnly = options.ParseOnly
		opt.MaxPixels = options.MaxPixels
		if options.MaxGoroutines > 0 {
			opt.MaxGoroutines = options.MaxGoroutines
		}
	}
	return opt
}
