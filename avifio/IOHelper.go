package avifio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	avifExtension = ".avif"

	// anything smaller can't hold an ftyp box plus a brand.
	minFileSize = 10
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrFileCorrupted = errors.New("file corrupted")
)

// ReadImage reads the complete contents of an AVIF file into memory.
// The filename has to carry an extension starting with ".avif".
func ReadImage(filename string) ([]byte, error) {

	ext := filepath.Ext(filename)
	if !strings.HasPrefix(ext, avifExtension) {
		return nil, fmt.Errorf("unexpected extension %q: %w", ext, ErrFileCorrupted)
	}

	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("%v: %w", err, ErrFileNotFound)
	}
	defer f.Close()

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("unable to seek: %v: %w", err, ErrFileCorrupted)
	}
	if size < minFileSize {
		return nil, fmt.Errorf("file too small (%d bytes): %w", size, ErrFileCorrupted)
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("unable to seek: %v: %w", err, ErrFileCorrupted)
	}

	data := make([]byte, size)
	n, err := ReadFully(f, data)
	if err != nil || int64(n) != size {
		return nil, fmt.Errorf("short read %d of %d bytes: %w", n, size, ErrFileCorrupted)
	}

	return data, nil
}

// ReadFully fills buffer from in. Returns the number of bytes read.
func ReadFully(in io.Reader, buffer []byte) (int, error) {
	n, err := io.ReadFull(in, buffer)
	if err == io.ErrUnexpectedEOF {
		return n, io.EOF
	}
	return n, err
}
