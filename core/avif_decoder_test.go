package core

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/avif-go/color"
	"github.com/kpfaulkner/avif-go/image"
	"github.com/kpfaulkner/avif-go/options"
	"github.com/kpfaulkner/avif-go/testcommon"
)

func srgbSpec(width uint32, height uint32, depth uint8) testcommon.AVIFSpec {
	return testcommon.AVIFSpec{
		Width:  width,
		Height: height,
		Depth:  depth,
		NCLX:   &testcommon.NCLX{Primaries: 1, Transfer: 13, Matrix: 1, FullRange: true},
	}
}

func TestLoadImage(t *testing.T) {

	for _, tc := range []struct {
		name  string
		depth int
	}{
		{name: "8 bit", depth: 8},
		{name: "10 bit", depth: 10},
		{name: "12 bit", depth: 12},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := testcommon.WriteTempAVIF(t, "img.avif", testcommon.BuildAVIF(srgbSpec(4, 3, uint8(tc.depth))))
			rgb := testcommon.GradientRGB(4, 3, tc.depth)
			fake := &testcommon.FakeFrameDecoder{RGB: rgb}

			decoder := NewAVIFDecoder(fake, nil, &options.AVIFOptions{MaxGoroutines: 2})
			img, err := decoder.LoadImage(path)
			require.Nil(t, err)

			assert.Equal(t, []int{0}, fake.DecodeCalls)
			assert.Equal(t, 4, img.Width)
			assert.Equal(t, 3, img.Height)
			assert.Equal(t, image.BufferDescriptor{Channels: 4, DataType: image.TYPE_FLOAT, ColorSpace: image.IOP_CS_RGB}, img.Desc)
			assert.True(t, img.IsHDR())
			assert.False(t, img.IsRaw())
			require.NotNil(t, img.Profile)
			assert.Equal(t, color.CS_SRGB, img.Profile.Type)

			maxValue := float32(rgb.MaxValue())
			for y := 0; y < 3; y++ {
				for x := 0; x < 4; x++ {
					p := img.Pixel(x, y)
					for c := 0; c < 3; c++ {
						assert.InDelta(t, float32(rgb.Sample(x, y, c))*(1/maxValue), p[c], 1e-6)
					}
					assert.Equal(t, float32(0), p[3])
				}
			}
		})
	}
}

func TestLoadImageErrors(t *testing.T) {

	good := testcommon.BuildAVIF(srgbSpec(2, 2, 8))

	for _, tc := range []struct {
		name        string
		filename    string
		data        []byte
		fake        *testcommon.FakeFrameDecoder
		allocator   BufferAllocator
		expectedErr []error
	}{
		{
			name:        "missing file",
			filename:    "does-not-exist.avif",
			fake:        &testcommon.FakeFrameDecoder{},
			expectedErr: []error{ErrFileNotFound},
		},
		{
			name:        "wrong extension",
			filename:    "img.jpg",
			data:        good,
			fake:        &testcommon.FakeFrameDecoder{},
			expectedErr: []error{ErrFileCorrupted},
		},
		{
			name:        "not avif",
			filename:    "img.avif",
			data:        testcommon.BuildAVIF(testcommon.AVIFSpec{MajorBrand: "heic", CompatibleBrands: []string{"mif1"}, Width: 2, Height: 2}),
			fake:        &testcommon.FakeFrameDecoder{},
			expectedErr: []error{ErrFileCorrupted},
		},
		{
			name:        "parse failure",
			filename:    "img.avif",
			data:        good,
			fake:        &testcommon.FakeFrameDecoder{ParseErr: errors.New("bad meta")},
			expectedErr: []error{ErrFileCorrupted},
		},
		{
			name:        "decode failure",
			filename:    "img.avif",
			data:        good,
			fake:        &testcommon.FakeFrameDecoder{DecodeErr: errors.New("bad obu")},
			expectedErr: []error{ErrFileCorrupted},
		},
		{
			name:        "allocation refused",
			filename:    "img.avif",
			data:        good,
			fake:        &testcommon.FakeFrameDecoder{RGB: testcommon.GradientRGB(2, 2, 8)},
			allocator:   NewPoolAllocator(3),
			expectedErr: []error{ErrCacheFull},
		},
		{
			name:        "invalid bit depth",
			filename:    "img.avif",
			data:        good,
			fake:        &testcommon.FakeFrameDecoder{RGB: testcommon.GradientRGB(2, 2, 16)},
			expectedErr: []error{ErrUnsupportedBitDepth, ErrFileCorrupted},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := tc.filename
			if tc.data != nil {
				path = testcommon.WriteTempAVIF(t, tc.filename, tc.data)
			}

			decoder := NewAVIFDecoder(tc.fake, tc.allocator, nil)
			img, err := decoder.LoadImage(path)
			assert.Nil(t, img)
			for _, expected := range tc.expectedErr {
				assert.True(t, errors.Is(err, expected), "expected %v but got %v", expected, err)
			}
		})
	}
}

func TestLoadImageParseOnly(t *testing.T) {
	path := testcommon.WriteTempAVIF(t, "img.avif", testcommon.BuildAVIF(srgbSpec(6, 5, 10)))
	fake := &testcommon.FakeFrameDecoder{}

	decoder := NewAVIFDecoder(fake, nil, &options.AVIFOptions{ParseOnly: true})
	img, err := decoder.LoadImage(path)
	require.Nil(t, err)

	assert.Empty(t, fake.DecodeCalls)
	assert.Equal(t, 6, img.Width)
	assert.Equal(t, 5, img.Height)
	assert.Nil(t, img.Buffer)
}

func TestLoadImageWarnsOnMultipleFrames(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	spec := srgbSpec(2, 2, 8)
	spec.MajorBrand = "avis"
	spec.SampleCount = 4
	path := testcommon.WriteTempAVIF(t, "anim.avif", testcommon.BuildAVIF(spec))

	fake := &testcommon.FakeFrameDecoder{RGB: testcommon.GradientRGB(2, 2, 8)}
	decoder := NewAVIFDecoder(fake, nil, nil)
	_, err := decoder.LoadImage(path)
	require.Nil(t, err)

	assert.Equal(t, []int{0}, fake.DecodeCalls)
	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel && e.Message == "image '"+path+"' has more than one frame!" {
			found = true
		}
	}
	assert.True(t, found, "expected multiple frame warning")
}

func TestReleaseReturnsBufferToPool(t *testing.T) {
	path := testcommon.WriteTempAVIF(t, "img.avif", testcommon.BuildAVIF(srgbSpec(2, 2, 8)))
	allocator := NewPoolAllocator(0)
	fake := &testcommon.FakeFrameDecoder{RGB: testcommon.GradientRGB(2, 2, 8)}
	decoder := NewAVIFDecoder(fake, allocator, nil)

	img, err := decoder.LoadImage(path)
	require.Nil(t, err)
	decoder.Release(img)
	assert.Nil(t, img.Buffer)

	_, err = decoder.LoadImage(path)
	require.Nil(t, err)
	hits, misses := allocator.Metrics()
	assert.Equal(t, int64(2), hits+misses)
}

func TestReadColorProfile(t *testing.T) {

	icc := testcommon.MakeICC(180)

	for _, tc := range []struct {
		name         string
		spec         testcommon.AVIFSpec
		expectedType color.ColorSpace
		expectedICC  []byte
	}{
		{
			name:         "srgb",
			spec:         srgbSpec(2, 2, 8),
			expectedType: color.CS_SRGB,
		},
		{
			name:         "pq rec2020",
			spec:         testcommon.AVIFSpec{Width: 2, Height: 2, Depth: 10, NCLX: &testcommon.NCLX{Primaries: 9, Transfer: 16, Matrix: 9}},
			expectedType: color.CS_PQ_REC2020,
		},
		{
			name:         "hlg p3",
			spec:         testcommon.AVIFSpec{Width: 2, Height: 2, Depth: 10, NCLX: &testcommon.NCLX{Primaries: 12, Transfer: 18, Matrix: 12}},
			expectedType: color.CS_HLG_P3,
		},
		{
			name:         "icc wins over nclx",
			spec:         testcommon.AVIFSpec{Width: 2, Height: 2, ICC: icc, NCLX: &testcommon.NCLX{Primaries: 1, Transfer: 13, Matrix: 1}},
			expectedType: color.CS_NONE,
			expectedICC:  icc,
		},
		{
			name:         "no colour information",
			spec:         testcommon.AVIFSpec{Width: 2, Height: 2},
			expectedType: color.CS_NONE,
		},
		{
			name: "empty icc falls back to nclx",
			spec: testcommon.AVIFSpec{Width: 2, Height: 2, EmptyICC: true,
				NCLX: &testcommon.NCLX{Primaries: 1, Transfer: 13, Matrix: 1, FullRange: true}},
			expectedType: color.CS_SRGB,
		},
		{
			name:         "unknown transfer",
			spec:         testcommon.AVIFSpec{Width: 2, Height: 2, NCLX: &testcommon.NCLX{Primaries: 1, Transfer: 1, Matrix: 1}},
			expectedType: color.CS_NONE,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := testcommon.WriteTempAVIF(t, "img.avif", testcommon.BuildAVIF(tc.spec))
			fake := &testcommon.FakeFrameDecoder{}
			decoder := NewAVIFDecoder(fake, nil, nil)

			profile, err := decoder.ReadColorProfile(path)
			require.Nil(t, err)
			assert.Empty(t, fake.DecodeCalls)
			assert.Equal(t, tc.expectedType, profile.Type)
			assert.Equal(t, tc.expectedICC, profile.ICC)
		})
	}
}

func TestReadColorProfileLogsUnsupportedProfile(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	defer log.SetLevel(log.GetLevel())
	log.SetLevel(log.DebugLevel)

	for _, tc := range []struct {
		name      string
		nclx      *testcommon.NCLX
		expectLog bool
	}{
		{name: "unknown primaries", nclx: &testcommon.NCLX{Primaries: 22, Transfer: 13, Matrix: 1}, expectLog: true},
		{name: "unspecified primaries", nclx: &testcommon.NCLX{Primaries: 2, Transfer: 2, Matrix: 6}, expectLog: true},
		{name: "known primaries unknown transfer", nclx: &testcommon.NCLX{Primaries: 1, Transfer: 1, Matrix: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hook.Reset()
			path := testcommon.WriteTempAVIF(t, "odd.avif", testcommon.BuildAVIF(testcommon.AVIFSpec{Width: 2, Height: 2, NCLX: tc.nclx}))
			decoder := NewAVIFDecoder(&testcommon.FakeFrameDecoder{}, nil, nil)

			profile, err := decoder.ReadColorProfile(path)
			require.Nil(t, err)
			assert.Equal(t, color.CS_NONE, profile.Type)

			found := false
			for _, e := range hook.AllEntries() {
				if e.Level == log.DebugLevel && e.Message == "Unsupported color profile for "+path {
					found = true
				}
			}
			assert.Equal(t, tc.expectLog, found)
		})
	}
}

func TestNewAVIFDecoderDebugOption(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	log.SetLevel(log.InfoLevel)
	NewAVIFDecoder(&testcommon.FakeFrameDecoder{}, nil, &options.AVIFOptions{})
	assert.Equal(t, log.InfoLevel, log.GetLevel())

	NewAVIFDecoder(&testcommon.FakeFrameDecoder{}, nil, &options.AVIFOptions{Debug: true})
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.SetLevel(log.TraceLevel)
	NewAVIFDecoder(&testcommon.FakeFrameDecoder{}, nil, &options.AVIFOptions{Debug: true})
	assert.Equal(t, log.TraceLevel, log.GetLevel())
}

func TestReadColorProfileErrors(t *testing.T) {
	decoder := NewAVIFDecoder(&testcommon.FakeFrameDecoder{}, nil, nil)

	_, err := decoder.ReadColorProfile("missing.avif")
	assert.True(t, errors.Is(err, ErrFileNotFound))

	path := testcommon.WriteTempAVIF(t, "junk.avif", []byte("this is not an avif file"))
	_, err = decoder.ReadColorProfile(path)
	assert.True(t, errors.Is(err, ErrFileCorrupted))
}

func TestReadColorProfileCopiesICC(t *testing.T) {
	icc := testcommon.MakeICC(150)
	data := testcommon.BuildAVIF(testcommon.AVIFSpec{Width: 2, Height: 2, ICC: icc})

	decoder := NewAVIFDecoder(&testcommon.FakeFrameDecoder{}, nil, nil)
	profile, err := decoder.ColorProfileFromBytes("mem", data)
	require.Nil(t, err)

	profile.ICC[0] = 0xFF
	again, err := decoder.ColorProfileFromBytes("mem", data)
	require.Nil(t, err)
	assert.Equal(t, icc, again.ICC)
}

func TestReadHeader(t *testing.T) {
	path := testcommon.WriteTempAVIF(t, "img.avif", testcommon.BuildAVIF(srgbSpec(7, 9, 12)))
	decoder := NewAVIFDecoder(&testcommon.FakeFrameDecoder{}, nil, nil)

	header, err := decoder.ReadHeader(path)
	require.Nil(t, err)
	assert.Equal(t, uint32(7), header.Width)
	assert.Equal(t, uint32(9), header.Height)
	assert.Equal(t, uint8(12), header.Depth)
}
