package color

// ColorSpace is the internal colour space an image is tagged with once its
// CICP triple has been recognised.
type ColorSpace int32

const (
	CS_NONE ColorSpace = iota
	CS_SRGB
	CS_REC709
	CS_LIN_REC709
	CS_LIN_REC2020
	CS_PQ_REC2020
	CS_HLG_REC2020
	CS_PQ_P3
	CS_HLG_P3
)

func (cs ColorSpace) String() string {
	switch cs {
	case CS_NONE:
		return "none"
	case CS_SRGB:
		return "sRGB"
	case CS_REC709:
		return "Rec709 (gamma 2.2)"
	case CS_LIN_REC709:
		return "linear Rec709"
	case CS_LIN_REC2020:
		return "linear Rec2020"
	case CS_PQ_REC2020:
		return "PQ Rec2020"
	case CS_HLG_REC2020:
		return "HLG Rec2020"
	case CS_PQ_P3:
		return "PQ P3"
	case CS_HLG_P3:
		return "HLG P3"
	}
	return "unknown"
}

// IsHDR reports whether the colour space uses an HDR transfer function.
func (cs ColorSpace) IsHDR() bool {
	switch cs {
	case CS_PQ_REC2020, CS_HLG_REC2020, CS_PQ_P3, CS_HLG_P3:
		return true
	}
	return false
}

// Classify maps a CICP triple onto one of the known colour spaces.
// The second return value is false when the primaries are not recognised
// at all; unrecognised transfer/matrix combinations of known primaries
// give CS_NONE with true.
func Classify(primaries ColorPrimaries, transfer TransferCharacteristics, matrix MatrixCoefficients) (ColorSpace, bool) {

	switch primaries {
	case PRI_BT709:
		if matrix != MC_BT709 && matrix != MC_CHROMA_DERIVED_NCL {
			return CS_NONE, true
		}
		switch transfer {
		case TF_SRGB:
			return CS_SRGB, true
		case TF_BT470M:
			return CS_REC709, true
		case TF_LINEAR:
			return CS_LIN_REC709, true
		}
		return CS_NONE, true

	case PRI_BT2020:
		if matrix != MC_BT2020_NCL && matrix != MC_CHROMA_DERIVED_NCL {
			return CS_NONE, true
		}
		switch transfer {
		case TF_LINEAR:
			return CS_LIN_REC2020, true
		case TF_SMPTE2084:
			return CS_PQ_REC2020, true
		case TF_HLG:
			return CS_HLG_REC2020, true
		}
		return CS_NONE, true

	case PRI_SMPTE432:
		if matrix != MC_CHROMA_DERIVED_NCL {
			return CS_NONE, true
		}
		switch transfer {
		case TF_SMPTE2084:
			return CS_PQ_P3, true
		case TF_HLG:
			return CS_HLG_P3, true
		}
		return CS_NONE, true
	}

	return CS_NONE, false
}
