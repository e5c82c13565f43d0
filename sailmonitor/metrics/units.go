package metrics

import (
	"math"
	"strconv"
)

// Widest values that fit in the digit field of a slot.
const (
	MaxSpeed = 99.9
	MaxAngle = 999
)

const floatNoExp = 'f'

// Convert maps a raw telemetry value to the magnitude shown on screen and
// reports whether a negative sign icon is needed. Only KindAngleSigned can
// report negative, and never for a value that rounds to zero.
func Convert(raw, multiplier float64, kind Kind) (magnitude float64, negative bool) {
	v := raw * multiplier
	switch kind {
	case KindSpeed:
		if v < 0 {
			return 0, false
		}
		return math.Round(v*10) / 10, false
	case KindAngleUnsigned:
		return math.Round(math.Abs(v)), false
	case KindAngleSigned:
		magnitude = math.Round(math.Abs(v))
		return magnitude, v < 0 && magnitude != 0
	default:
		return 0, false
	}
}

// Format appends the display digits for magnitude to dst. A magnitude wider
// than the digit field is clamped to the widest representable value and ok
// is false.
func Format(dst []byte, magnitude float64, kind Kind) (out []byte, ok bool) {
	ok = true
	if math.IsNaN(magnitude) {
		magnitude, ok = 0, false
	}
	if kind == KindSpeed {
		if magnitude > MaxSpeed {
			magnitude, ok = MaxSpeed, false
		}
		return strconv.AppendFloat(dst, magnitude, floatNoExp, 1, 64), ok
	}
	if magnitude > MaxAngle {
		magnitude, ok = MaxAngle, false
	}
	return strconv.AppendFloat(dst, magnitude, floatNoExp, 0, 64), ok
}
