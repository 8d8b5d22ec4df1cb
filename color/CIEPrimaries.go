package color

import "fmt"

type CIEXY struct {
	X float32
	Y float32
}

func (c CIEXY) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.X, c.Y)
}

// CIEPrimaries holds the chromaticities of the three primaries and the
// white point of a colour space.
type CIEPrimaries struct {
	Red   CIEXY
	Green CIEXY
	Blue  CIEXY
	White CIEXY
}

var (
	whiteD65 = CIEXY{X: 0.3127, Y: 0.3290}
	whiteC   = CIEXY{X: 0.3100, Y: 0.3160}
	whiteDCI = CIEXY{X: 0.3140, Y: 0.3510}
	whiteE   = CIEXY{X: 1.0 / 3, Y: 1.0 / 3}
)

var primariesTable = map[ColorPrimaries]CIEPrimaries{
	PRI_BT709:        {Red: CIEXY{0.640, 0.330}, Green: CIEXY{0.300, 0.600}, Blue: CIEXY{0.150, 0.060}, White: whiteD65},
	PRI_BT470M:       {Red: CIEXY{0.670, 0.330}, Green: CIEXY{0.210, 0.710}, Blue: CIEXY{0.140, 0.080}, White: whiteC},
	PRI_BT470BG:      {Red: CIEXY{0.640, 0.330}, Green: CIEXY{0.290, 0.600}, Blue: CIEXY{0.150, 0.060}, White: whiteD65},
	PRI_BT601:        {Red: CIEXY{0.630, 0.340}, Green: CIEXY{0.310, 0.595}, Blue: CIEXY{0.155, 0.070}, White: whiteD65},
	PRI_SMPTE240:     {Red: CIEXY{0.630, 0.340}, Green: CIEXY{0.310, 0.595}, Blue: CIEXY{0.155, 0.070}, White: whiteD65},
	PRI_GENERIC_FILM: {Red: CIEXY{0.681, 0.319}, Green: CIEXY{0.243, 0.692}, Blue: CIEXY{0.145, 0.049}, White: whiteC},
	PRI_BT2020:       {Red: CIEXY{0.708, 0.292}, Green: CIEXY{0.170, 0.797}, Blue: CIEXY{0.131, 0.046}, White: whiteD65},
	PRI_XYZ:          {Red: CIEXY{1.0, 0.0}, Green: CIEXY{0.0, 1.0}, Blue: CIEXY{0.0, 0.0}, White: whiteE},
	PRI_SMPTE431:     {Red: CIEXY{0.680, 0.320}, Green: CIEXY{0.265, 0.690}, Blue: CIEXY{0.150, 0.060}, White: whiteDCI},
	PRI_SMPTE432:     {Red: CIEXY{0.680, 0.320}, Green: CIEXY{0.265, 0.690}, Blue: CIEXY{0.150, 0.060}, White: whiteD65},
	PRI_EBU3213:      {Red: CIEXY{0.630, 0.340}, Green: CIEXY{0.295, 0.605}, Blue: CIEXY{0.155, 0.077}, White: whiteD65},
}

// Chromaticities returns the CIE xy coordinates for p. False for
// unspecified or reserved code points.
func (p ColorPrimaries) Chromaticities() (CIEPrimaries, bool) {
	cp, ok := primariesTable[p]
	return cp, ok
}
