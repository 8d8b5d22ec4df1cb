package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/avif-go/testcommon"
)

// tiffBlob is a big endian TIFF with Make "Test" and Orientation 6.
func tiffBlob() []byte {
	return testcommon.Concat(
		[]byte("MM\x00\x2A"), testcommon.U32(8),
		testcommon.U16(2),
		testcommon.U16(0x010F), testcommon.U16(2), testcommon.U32(5), testcommon.U32(38),
		testcommon.U16(0x0112), testcommon.U16(3), testcommon.U32(1), testcommon.U16(6), testcommon.U16(0),
		testcommon.U32(0),
		[]byte("Test\x00"),
	)
}

func TestDecodeExif(t *testing.T) {

	for _, tc := range []struct {
		name    string
		payload []byte
	}{
		{name: "tiff directly after offset", payload: testcommon.Concat(testcommon.U32(0), tiffBlob())},
		{name: "exif header", payload: testcommon.Concat(testcommon.U32(6), []byte("Exif\x00\x00"), tiffBlob())},
	} {
		t.Run(tc.name, func(t *testing.T) {
			x, err := DecodeExif(tc.payload)
			require.Nil(t, err)

			s := Summarise(x)
			assert.Equal(t, "Test", s.Make)
			assert.Equal(t, 6, s.Orientation)
			assert.Equal(t, "", s.Model)
			assert.True(t, s.DateTime.IsZero())
		})
	}
}

func TestDecodeExifErrors(t *testing.T) {

	for _, tc := range []struct {
		name    string
		payload []byte
	}{
		{name: "too short", payload: []byte{0, 0}},
		{name: "offset out of range", payload: testcommon.Concat(testcommon.U32(100), tiffBlob())},
		{name: "not tiff", payload: testcommon.Concat(testcommon.U32(0), []byte("garbage garbage garbage"))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeExif(tc.payload)
			assert.True(t, errors.Is(err, ErrInvalidExif))
		})
	}
}
