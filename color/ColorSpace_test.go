package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {

	for _, tc := range []struct {
		name          string
		primaries     ColorPrimaries
		transfer      TransferCharacteristics
		matrix        MatrixCoefficients
		expected      ColorSpace
		expectedKnown bool
	}{
		{name: "srgb", primaries: PRI_BT709, transfer: TF_SRGB, matrix: MC_BT709, expected: CS_SRGB, expectedKnown: true},
		{name: "srgb chroma derived", primaries: PRI_BT709, transfer: TF_SRGB, matrix: MC_CHROMA_DERIVED_NCL, expected: CS_SRGB, expectedKnown: true},
		{name: "srgb with bt601 matrix", primaries: PRI_BT709, transfer: TF_SRGB, matrix: MC_BT601, expected: CS_NONE, expectedKnown: true},
		{name: "gamma 2.2 rec709", primaries: PRI_BT709, transfer: TF_BT470M, matrix: MC_BT709, expected: CS_REC709, expectedKnown: true},
		{name: "linear rec709", primaries: PRI_BT709, transfer: TF_LINEAR, matrix: MC_CHROMA_DERIVED_NCL, expected: CS_LIN_REC709, expectedKnown: true},
		{name: "bt709 pq is unknown", primaries: PRI_BT709, transfer: TF_SMPTE2084, matrix: MC_BT709, expected: CS_NONE, expectedKnown: true},
		{name: "linear rec2020", primaries: PRI_BT2020, transfer: TF_LINEAR, matrix: MC_BT2020_NCL, expected: CS_LIN_REC2020, expectedKnown: true},
		{name: "pq rec2020", primaries: PRI_BT2020, transfer: TF_SMPTE2084, matrix: MC_BT2020_NCL, expected: CS_PQ_REC2020, expectedKnown: true},
		{name: "hlg rec2020", primaries: PRI_BT2020, transfer: TF_HLG, matrix: MC_CHROMA_DERIVED_NCL, expected: CS_HLG_REC2020, expectedKnown: true},
		{name: "rec2020 with bt709 matrix", primaries: PRI_BT2020, transfer: TF_HLG, matrix: MC_BT709, expected: CS_NONE, expectedKnown: true},
		{name: "rec2020 srgb transfer", primaries: PRI_BT2020, transfer: TF_SRGB, matrix: MC_BT2020_NCL, expected: CS_NONE, expectedKnown: true},
		{name: "pq p3", primaries: PRI_SMPTE432, transfer: TF_SMPTE2084, matrix: MC_CHROMA_DERIVED_NCL, expected: CS_PQ_P3, expectedKnown: true},
		{name: "hlg p3", primaries: PRI_SMPTE432, transfer: TF_HLG, matrix: MC_CHROMA_DERIVED_NCL, expected: CS_HLG_P3, expectedKnown: true},
		{name: "p3 requires chroma derived matrix", primaries: PRI_SMPTE432, transfer: TF_SMPTE2084, matrix: MC_BT2020_NCL, expected: CS_NONE, expectedKnown: true},
		{name: "display p3 srgb transfer", primaries: PRI_SMPTE432, transfer: TF_SRGB, matrix: MC_CHROMA_DERIVED_NCL, expected: CS_NONE, expectedKnown: true},
		{name: "unspecified", primaries: PRI_UNSPECIFIED, transfer: TF_UNSPECIFIED, matrix: MC_UNSPECIFIED, expected: CS_NONE, expectedKnown: false},
		{name: "dci p3 primaries", primaries: PRI_SMPTE431, transfer: TF_SMPTE2084, matrix: MC_CHROMA_DERIVED_NCL, expected: CS_NONE, expectedKnown: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cs, known := Classify(tc.primaries, tc.transfer, tc.matrix)
			assert.Equal(t, tc.expected, cs)
			assert.Equal(t, tc.expectedKnown, known)
		})
	}
}

func TestColorSpaceIsHDR(t *testing.T) {
	assert.False(t, CS_SRGB.IsHDR())
	assert.False(t, CS_LIN_REC2020.IsHDR())
	assert.True(t, CS_PQ_REC2020.IsHDR())
	assert.True(t, CS_HLG_P3.IsHDR())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "PQ Rec2020", CS_PQ_REC2020.String())
	assert.Equal(t, "unknown", ColorSpace(99).String())
	assert.Equal(t, "BT.2020", PRI_BT2020.String())
	assert.Equal(t, "primaries(3)", ColorPrimaries(3).String())
	assert.Equal(t, "HLG", TF_HLG.String())
	assert.Equal(t, "matrix(3)", MatrixCoefficients(3).String())
}

func TestChromaticities(t *testing.T) {

	for _, tc := range []struct {
		name      string
		primaries ColorPrimaries
		red       CIEXY
		white     CIEXY
		known     bool
	}{
		{name: "bt709", primaries: PRI_BT709, red: CIEXY{0.640, 0.330}, white: whiteD65, known: true},
		{name: "bt2020", primaries: PRI_BT2020, red: CIEXY{0.708, 0.292}, white: whiteD65, known: true},
		{name: "display p3", primaries: PRI_SMPTE432, red: CIEXY{0.680, 0.320}, white: whiteD65, known: true},
		{name: "dci p3", primaries: PRI_SMPTE431, red: CIEXY{0.680, 0.320}, white: whiteDCI, known: true},
		{name: "unspecified", primaries: PRI_UNSPECIFIED},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cp, ok := tc.primaries.Chromaticities()
			assert.Equal(t, tc.known, ok)
			assert.Equal(t, tc.red, cp.Red)
			assert.Equal(t, tc.white, cp.White)
		})
	}
}
