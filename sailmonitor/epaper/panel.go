// Package epaper drives a UC8151 style e-paper controller as a
// display.Panel. The controller's charge pump is switched on in PowerOn and
// off in PowerOff, and each refresh is waited on before the next command.
package epaper

import (
	"errors"
	"image/color"
	"io"
	"log/slog"

	"github.com/harveysanders/sailtrack/sailmonitor/display"
	"github.com/harveysanders/sailtrack/sailmonitor/refresh"
)

// ErrNotPowered is returned by Commit outside a PowerOn/PowerOff pair.
var ErrNotPowered = errors.New("epaper: panel not powered")

// Speed selects the refresh waveform (LUT).
type Speed uint8

const (
	// SpeedDefault is the slow waveform that fully settles every pixel.
	SpeedDefault Speed = iota
	// SpeedTurbo is the fastest waveform; it leaves ghosting behind.
	SpeedTurbo
)

func (s Speed) String() string {
	switch s {
	case SpeedDefault:
		return "default"
	case SpeedTurbo:
		return "turbo"
	default:
		return "unknown"
	}
}

// SpeedFor returns the waveform used for transition.
func SpeedFor(transition refresh.Transition) Speed {
	if transition == refresh.TransitionWhiteToGray {
		return SpeedDefault
	}
	return SpeedTurbo
}

//go:generate mockgen -destination=mock_device_test.go -package=epaper github.com/harveysanders/sailtrack/sailmonitor/epaper Device

// Device is the subset of the controller driver the panel needs.
type Device interface {
	PowerOn()
	PowerOff()
	// WaitUntilIdle blocks while the controller reports busy.
	WaitUntilIdle()
	// SetLUT loads the waveform without resetting the controller.
	SetLUT(speed Speed) error
	SetPixel(x, y int16, c color.RGBA)
	// Display starts a refresh from the driver buffer.
	Display() error
	// ClearDisplay starts a refresh to all white.
	ClearDisplay()
}

var (
	ink   = color.RGBA{0, 0, 0, 255}
	paper = color.RGBA{255, 255, 255, 255}
)

// Panel implements display.Panel on top of a Device.
type Panel struct {
	dev     Device
	lut     Speed
	loaded  bool
	powered bool
	logger  *slog.Logger
}

var _ display.Panel = (*Panel)(nil)

// New wraps dev. No waveform is assumed loaded until the first refresh.
func New(dev Device, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Panel{dev: dev, logger: logger}
}

// PowerOn switches the controller's charge pump on.
func (p *Panel) PowerOn() {
	p.dev.PowerOn()
	p.powered = true
}

// PowerOff waits for any refresh in progress and switches the pump off.
func (p *Panel) PowerOff() {
	p.dev.WaitUntilIdle()
	p.dev.PowerOff()
	p.powered = false
}

// Clear drives the panel to white on the slow waveform and returns once the
// refresh has finished.
func (p *Panel) Clear() {
	err := p.useLUT(SpeedDefault)
	if err != nil {
		// Commit loads the waveform again and reports the failure.
		p.logger.Error("epaper:clear-lut-failed", slog.String("err", err.Error()))
		return
	}
	p.dev.ClearDisplay()
	p.dev.WaitUntilIdle()
}

// Commit copies fb into the driver buffer and refreshes the panel with the
// waveform for transition, returning once the refresh has finished.
func (p *Panel) Commit(fb *display.Framebuffer, transition refresh.Transition, ambientC int) error {
	if !p.powered {
		return ErrNotPowered
	}
	err := p.useLUT(SpeedFor(transition))
	if err != nil {
		return err
	}

	w, h := fb.Size()
	for x := int16(0); x < w; x++ {
		for y := int16(0); y < h; y++ {
			c := paper
			if fb.Ink(x, y) {
				c = ink
			}
			p.dev.SetPixel(x, y, c)
		}
	}
	p.logger.Debug("epaper:commit",
		slog.String("transition", transition.String()),
		slog.Int("ambientC", ambientC),
	)
	err = p.dev.Display()
	p.dev.WaitUntilIdle()
	return err
}

// LUT returns the loaded waveform and whether one has been loaded.
func (p *Panel) LUT() (Speed, bool) { return p.lut, p.loaded }

func (p *Panel) useLUT(s Speed) error {
	if p.loaded && p.lut == s {
		return nil
	}
	err := p.dev.SetLUT(s)
	if err != nil {
		p.loaded = false
		return errors.New("epaper: load " + s.String() + " lut: " + err.Error())
	}
	p.lut, p.loaded = s, true
	return nil
}
