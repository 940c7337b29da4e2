package palgen

import (
	"fmt"
	"math"
	"strings"
)

// Curve selects the interpolation law used to blend between the two
// endpoints of a color range.
type Curve int

const (
	// CurveLinear blends channels proportionally to the ratio.
	CurveLinear Curve = iota
	// CurvePower blends channels by ratio^param. A param above 1 lingers
	// near the start color and finishes fast; below 1 does the opposite.
	CurvePower
)

// String implements fmt.Stringer.
func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurvePower:
		return "power"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// ParseCurve maps a curve name to a Curve. "linear"/"lerp" and
// "power"/"pow" are accepted, case-insensitively. The empty string is
// linear.
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "lerp":
		return CurveLinear, nil
	case "power", "pow":
		return CurvePower, nil
	default:
		return 0, fmt.Errorf("%w: unknown curve %q", ErrInvalidCurve, s)
	}
}

// Validate reports whether param is usable with the curve. Linear ignores
// param; Power needs a positive finite exponent.
func (c Curve) Validate(param float64) error {
	switch c {
	case CurveLinear:
		return nil
	case CurvePower:
		if !(param > 0) || math.IsInf(param, 0) {
			return fmt.Errorf("%w: power curve needs a positive exponent, got %v",
				ErrInvalidCurve, param)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrInvalidCurve, c)
	}
}

// Interpolate returns the color at ratio (in [0,1]) between start and end
// under the given curve. Each channel is truncated toward zero. Ratio 0
// yields start and ratio 1 yields end exactly.
func Interpolate(start, end RGB, ratio float64, curve Curve, param float64) RGB {
	if curve == CurvePower {
		ratio = math.Pow(ratio, param)
	}
	return RGB{
		R: lerp(start.R, end.R, ratio),
		G: lerp(start.G, end.G, ratio),
		B: lerp(start.B, end.B, ratio),
	}
}

func lerp(a, b uint8, ratio float64) uint8 {
	fa := float64(a)
	// float64() forces rounding of the product; no FMA.
	return uint8(fa + float64((float64(b)-fa)*ratio))
}
