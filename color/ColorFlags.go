package color

import "fmt"

// Coding-independent code points as defined by ITU-T H.273 and carried in
// the colr/nclx box of an AVIF file.

type ColorPrimaries uint16

const (
	PRI_BT709        ColorPrimaries = 1
	PRI_UNSPECIFIED  ColorPrimaries = 2
	PRI_BT470M       ColorPrimaries = 4
	PRI_BT470BG      ColorPrimaries = 5
	PRI_BT601        ColorPrimaries = 6
	PRI_SMPTE240     ColorPrimaries = 7
	PRI_GENERIC_FILM ColorPrimaries = 8
	PRI_BT2020       ColorPrimaries = 9
	PRI_XYZ          ColorPrimaries = 10
	PRI_SMPTE431     ColorPrimaries = 11
	PRI_SMPTE432     ColorPrimaries = 12
	PRI_EBU3213      ColorPrimaries = 22
)

type TransferCharacteristics uint16

const (
	TF_BT709         TransferCharacteristics = 1
	TF_UNSPECIFIED   TransferCharacteristics = 2
	TF_BT470M        TransferCharacteristics = 4
	TF_BT470BG       TransferCharacteristics = 5
	TF_BT601         TransferCharacteristics = 6
	TF_SMPTE240      TransferCharacteristics = 7
	TF_LINEAR        TransferCharacteristics = 8
	TF_LOG100        TransferCharacteristics = 9
	TF_LOG100_SQRT10 TransferCharacteristics = 10
	TF_IEC61966      TransferCharacteristics = 11
	TF_BT1361        TransferCharacteristics = 12
	TF_SRGB          TransferCharacteristics = 13
	TF_BT2020_10BIT  TransferCharacteristics = 14
	TF_BT2020_12BIT  TransferCharacteristics = 15
	TF_SMPTE2084     TransferCharacteristics = 16
	TF_SMPTE428      TransferCharacteristics = 17
	TF_HLG           TransferCharacteristics = 18
)

type MatrixCoefficients uint16

const (
	MC_IDENTITY           MatrixCoefficients = 0
	MC_BT709              MatrixCoefficients = 1
	MC_UNSPECIFIED        MatrixCoefficients = 2
	MC_FCC                MatrixCoefficients = 4
	MC_BT470BG            MatrixCoefficients = 5
	MC_BT601              MatrixCoefficients = 6
	MC_SMPTE240           MatrixCoefficients = 7
	MC_YCGCO              MatrixCoefficients = 8
	MC_BT2020_NCL         MatrixCoefficients = 9
	MC_BT2020_CL          MatrixCoefficients = 10
	MC_SMPTE2085          MatrixCoefficients = 11
	MC_CHROMA_DERIVED_NCL MatrixCoefficients = 12
	MC_CHROMA_DERIVED_CL  MatrixCoefficients = 13
	MC_ICTCP              MatrixCoefficients = 14
)

func (p ColorPrimaries) String() string {
	switch p {
	case PRI_BT709:
		return "BT.709"
	case PRI_UNSPECIFIED:
		return "unspecified"
	case PRI_BT470M:
		return "BT.470 System M"
	case PRI_BT470BG:
		return "BT.470 System B/G"
	case PRI_BT601:
		return "BT.601"
	case PRI_SMPTE240:
		return "SMPTE 240"
	case PRI_GENERIC_FILM:
		return "generic film"
	case PRI_BT2020:
		return "BT.2020"
	case PRI_XYZ:
		return "XYZ"
	case PRI_SMPTE431:
		return "SMPTE RP 431-2 (DCI P3)"
	case PRI_SMPTE432:
		return "SMPTE EG 432-1 (Display P3)"
	case PRI_EBU3213:
		return "EBU Tech 3213-E"
	}
	return fmt.Sprintf("primaries(%d)", uint16(p))
}

func (tc TransferCharacteristics) String() string {
	switch tc {
	case TF_BT709:
		return "BT.709"
	case TF_UNSPECIFIED:
		return "unspecified"
	case TF_BT470M:
		return "gamma 2.2"
	case TF_BT470BG:
		return "gamma 2.8"
	case TF_BT601:
		return "BT.601"
	case TF_SMPTE240:
		return "SMPTE 240"
	case TF_LINEAR:
		return "linear"
	case TF_LOG100:
		return "log 100:1"
	case TF_LOG100_SQRT10:
		return "log 100*sqrt(10):1"
	case TF_IEC61966:
		return "IEC 61966-2-4"
	case TF_BT1361:
		return "BT.1361"
	case TF_SRGB:
		return "sRGB"
	case TF_BT2020_10BIT:
		return "BT.2020 10 bit"
	case TF_BT2020_12BIT:
		return "BT.2020 12 bit"
	case TF_SMPTE2084:
		return "PQ"
	case TF_SMPTE428:
		return "SMPTE 428"
	case TF_HLG:
		return "HLG"
	}
	return fmt.Sprintf("transfer(%d)", uint16(tc))
}

func (mc MatrixCoefficients) String() string {
	switch mc {
	case MC_IDENTITY:
		return "identity"
	case MC_BT709:
		return "BT.709"
	case MC_UNSPECIFIED:
		return "unspecified"
	case MC_FCC:
		return "FCC"
	case MC_BT470BG:
		return "BT.470 System B/G"
	case MC_BT601:
		return "BT.601"
	case MC_SMPTE240:
		return "SMPTE 240"
	case MC_YCGCO:
		return "YCgCo"
	case MC_BT2020_NCL:
		return "BT.2020 non-constant luminance"
	case MC_BT2020_CL:
		return "BT.2020 constant luminance"
	case MC_SMPTE2085:
		return "SMPTE ST 2085"
	case MC_CHROMA_DERIVED_NCL:
		return "chroma derived non-constant luminance"
	case MC_CHROMA_DERIVED_CL:
		return "chroma derived constant luminance"
	case MC_ICTCP:
		return "ICtCp"
	}
	return fmt.Sprintf("matrix(%d)", uint16(mc))
}
