// Package display draws metric readings into a 1-bit framebuffer and
// commits the frame to an e-paper panel.
//
// Example usage:
//
//	r, err := display.NewRenderer(panel, display.Config{...})
//	if err != nil {
//	    // bad layout or missing fonts
//	}
//	err = r.Render(registry.Consume(), scheduler.Tick())
//	if errors.Is(err, display.ErrCommit) {
//	    // the panel rejected the frame; the next tick draws again
//	}
//
// Every Render redraws the whole logical frame. The refresh mode only
// changes how the panel moves its pixels, never what is drawn.
package display

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"tinygo.org/x/tinyfont"

	"github.com/harveysanders/sailtrack/sailmonitor/metrics"
	"github.com/harveysanders/sailtrack/sailmonitor/refresh"
)

// ErrCommit is wrapped by every error caused by the panel rejecting a frame.
var ErrCommit = errors.New("display commit failed")

//go:generate mockgen -destination=mock_panel_test.go -package=display github.com/harveysanders/sailtrack/sailmonitor/display Panel

// Panel is the e-paper hardware. Power must be off between updates; the
// renderer brackets every commit with PowerOn and PowerOff.
type Panel interface {
	PowerOn()
	PowerOff()
	// Clear drives the whole panel to white.
	Clear()
	// Commit moves the panel to the contents of fb using transition. The
	// ambient temperature selects the waveform timing on panels that need it.
	Commit(fb *Framebuffer, transition refresh.Transition, ambientC int) error
}

// CommitError reports a failed Panel.Commit. It matches both ErrCommit and
// the panel's own error.
type CommitError struct {
	Mode refresh.Mode
	Err  error
}

func (e *CommitError) Error() string {
	return "display: " + e.Mode.String() + " commit: " + e.Err.Error()
}

func (e *CommitError) Unwrap() []error { return []error{ErrCommit, e.Err} }

// Fonts used for each kind of text on the screen.
type Fonts struct {
	Value  tinyfont.Fonter // large digits
	Label  tinyfont.Fonter // metric labels and centered messages
	Footer tinyfont.Fonter // status line
}

// Config holds the screen geometry and collaborators of a Renderer.
type Config struct {
	Width, Height int16

	Fonts Fonts

	LabelLineHeight   int16 // vertical step between label characters
	MessageLineHeight int16 // vertical step between lines of a centered message
	SignGap           int16 // space between the sign icon and the digits

	FooterX, FooterY int16 // left edge and baseline of the status line

	// Ambient returns the panel temperature in degrees Celsius. Nil uses
	// DefaultAmbientC.
	Ambient func() int

	Logger *slog.Logger
}

// DefaultAmbientC is used when no temperature source is configured.
const DefaultAmbientC = 20

// Renderer owns the framebuffer and draws readings into fixed slots.
type Renderer struct {
	panel  Panel
	fb     *Framebuffer
	cfg    Config
	logger *slog.Logger

	status string
	digits []byte // reused across draws

	clamped rate.Sometimes
}

// NewRenderer validates cfg and allocates the framebuffer.
func NewRenderer(panel Panel, cfg Config) (*Renderer, error) {
	if panel == nil {
		return nil, errors.New("must provide panel")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("display size must be positive")
	}
	if cfg.Fonts.Value == nil || cfg.Fonts.Label == nil || cfg.Fonts.Footer == nil {
		return nil, errors.New("must provide value, label and footer fonts")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{
		panel:   panel,
		fb:      NewFramebuffer(cfg.Width, cfg.Height),
		cfg:     cfg,
		logger:  logger,
		digits:  make([]byte, 0, 8),
		clamped: rate.Sometimes{Interval: 30 * time.Second},
	}, nil
}

// Framebuffer returns the frame drawn by the last Render or Message.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// SetStatus sets the text of the footer status line. An empty string hides it.
func (r *Renderer) SetStatus(text string) { r.status = text }

// Status returns the current footer text.
func (r *Renderer) Status() string { return r.status }

// Render clears the frame, draws every reading into its slot and commits
// the frame using mode.
func (r *Renderer) Render(readings []metrics.Reading, mode refresh.Mode) error {
	r.fb.Clear()
	for i := range readings {
		r.drawReading(&readings[i])
	}
	if r.status != "" {
		tinyfont.WriteLine(r.fb, r.cfg.Fonts.Footer, r.cfg.FooterX, r.cfg.FooterY, r.status, black)
	}
	return r.commit(mode)
}

// Message replaces the frame with text centered on the screen, one line per
// "\n", and commits it with a full clear. It is used for boot and sleep
// banners outside the normal render cadence.
func (r *Renderer) Message(text string) error {
	r.fb.Clear()
	lines := strings.Split(text, "\n")
	step := r.cfg.MessageLineHeight
	y := r.cfg.Height/2 - step*int16(len(lines)-1)/2
	for _, line := range lines {
		if line == "" {
			y += step
			continue
		}
		_, w := tinyfont.LineWidth(r.cfg.Fonts.Label, line)
		tinyfont.WriteLine(r.fb, r.cfg.Fonts.Label, (r.cfg.Width-int16(w))/2, y, line, black)
		y += step
	}
	return r.commit(refresh.ModeFullClear)
}

func (r *Renderer) drawReading(rd *metrics.Reading) {
	digits, ok := metrics.Format(r.digits[:0], rd.Magnitude, rd.Kind)
	r.digits = digits
	if !ok {
		r.clamped.Do(func() {
			r.logger.Warn("display:value-clamped",
				slog.String("metric", rd.Name),
				slog.Float64("value", rd.Magnitude),
			)
		})
	}

	text := string(digits)
	_, w := tinyfont.LineWidth(r.cfg.Fonts.Value, text)
	left := rd.Slot.X - int16(w)
	tinyfont.WriteLine(r.fb, r.cfg.Fonts.Value, left, rd.Slot.Y, text, black)

	if rd.Kind == metrics.KindAngleSigned && rd.Magnitude > 0 {
		ic := plusIcon
		if rd.Negative {
			ic = minusIcon
		}
		x := left - r.cfg.SignGap - ic.width()
		y := rd.Slot.Y + rd.Slot.SignDY - ic.height()/2
		r.fb.drawIcon(ic, x, y)
	}

	// One label character per line, each centered on the label column.
	cx := rd.Slot.X + rd.Slot.LabelDX
	y := rd.Slot.Y + rd.Slot.LabelDY
	for _, ch := range rd.Label {
		s := string(ch)
		_, cw := tinyfont.LineWidth(r.cfg.Fonts.Label, s)
		tinyfont.WriteLine(r.fb, r.cfg.Fonts.Label, cx-int16(cw)/2, y, s, black)
		y += r.cfg.LabelLineHeight
	}
}

func (r *Renderer) commit(mode refresh.Mode) error {
	r.panel.PowerOn()
	defer r.panel.PowerOff()

	if mode.ClearsPanel() {
		r.panel.Clear()
	}
	err := r.panel.Commit(r.fb, mode.Transition(), r.ambient())
	if err != nil {
		return &CommitError{Mode: mode, Err: err}
	}
	return nil
}

func (r *Renderer) ambient() int {
	if r.cfg.Ambient == nil {
		return DefaultAmbientC
	}
	return r.cfg.Ambient()
}

// SendStatus offers a footer status update without blocking. The update is
// dropped if the channel is full.
func SendStatus(ch chan<- string, text string) {
	if ch == nil {
		return
	}
	select {
	case ch <- text:
	default:
	}
}
