// Package metrics turns telemetry messages into display-ready readings.
//
// A fixed table of Definitions maps (topic, dotted field path) pairs to
// screen slots. The Registry resolves each incoming message against that
// table, converts the raw value into display units and keeps the latest
// value for every metric until the renderer consumes it.
package metrics

// Kind selects how a metric is converted and formatted.
type Kind uint8

const (
	// KindSpeed is shown with one decimal place and never carries a sign.
	KindSpeed Kind = iota
	// KindAngleUnsigned is shown as a whole number without a sign glyph.
	KindAngleUnsigned
	// KindAngleSigned is shown as a whole number magnitude plus a separate sign icon.
	KindAngleSigned
)

func (k Kind) String() string {
	switch k {
	case KindSpeed:
		return "speed"
	case KindAngleUnsigned:
		return "angle-unsigned"
	case KindAngleSigned:
		return "angle-signed"
	default:
		return "INVALID"
	}
}

func (k Kind) valid() bool {
	return k <= KindAngleSigned
}

// Slot is the fixed screen position of one metric. X, Y is the right edge
// and baseline of the value digits; the label and sign anchors are offsets
// from that point.
type Slot struct {
	X, Y int16

	LabelDX, LabelDY int16 // label column center and first-line baseline
	SignDY           int16 // sign icon vertical center, relative to the baseline
}

// Definition is one row of the compiled-in metric table.
type Definition struct {
	Name       string  // identifier used in logs
	Topic      string  // telemetry topic the metric is read from
	Path       string  // dotted field path, e.g. "euler.x"
	Label      string  // short on-screen label, at most 3 characters
	Multiplier float64 // raw value is multiplied by this before formatting
	Kind       Kind
	Slot       Slot
}
