// Package config holds the compiled-in configuration of the monitor: the
// metric table, the screen layout and the loop settings. Broker address and
// credentials are set at build time through linker flags, e.g.:
//
//	tinygo flash -target badger2040-w -ldflags="-X 'github.com/harveysanders/sailtrack/sailmonitor/config.brokerAddr=10.0.0.9:1883'" ./sailmonitor
package config

import (
	"time"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"github.com/harveysanders/sailtrack/sailmonitor/display"
	"github.com/harveysanders/sailtrack/sailmonitor/metrics"
	"github.com/harveysanders/sailtrack/sailmonitor/power"
)

var (
	brokerAddr = "10.0.0.9:1883"
	clientID   = "sailtrack-monitor"
	mqttUser   string
	mqttPass   string
)

// BrokerAddr returns the MQTT broker host:port.
func BrokerAddr() string { return brokerAddr }

// ClientID returns the MQTT client identifier.
func ClientID() string { return clientID }

// Username returns the MQTT username. Empty disables authentication.
func Username() string { return mqttUser }

// Password returns the MQTT password.
func Password() string { return mqttPass }

// Screen geometry of the Badger 2040 W panel in landscape.
const (
	Width  int16 = 296
	Height int16 = 128
)

// Slot anchors. The screen is split in a 2x2 grid; digits are right aligned
// on X with their baseline on Y, the label reads top to bottom on the left
// of each cell.
var (
	slotTopLeft     = metrics.Slot{X: 140, Y: 52, LabelDX: -130, LabelDY: -34, SignDY: -17}
	slotTopRight    = metrics.Slot{X: 290, Y: 52, LabelDX: -135, LabelDY: -34, SignDY: -17}
	slotBottomLeft  = metrics.Slot{X: 140, Y: 112, LabelDX: -130, LabelDY: -34, SignDY: -17}
	slotBottomRight = metrics.Slot{X: 290, Y: 112, LabelDX: -135, LabelDY: -34, SignDY: -17}
)

// Metrics returns the metric table. Every call returns a fresh slice.
func Metrics() []metrics.Definition {
	return []metrics.Definition{
		{
			Name:       "speed-over-ground",
			Topic:      "sensor/gps0",
			Path:       "speed",
			Label:      "SOG",
			Multiplier: 1.943844, // m/s to knots
			Kind:       metrics.KindSpeed,
			Slot:       slotTopLeft,
		},
		{
			Name:       "course-over-ground",
			Topic:      "sensor/gps0",
			Path:       "heading",
			Label:      "COG",
			Multiplier: 1,
			Kind:       metrics.KindAngleUnsigned,
			Slot:       slotTopRight,
		},
		{
			Name:       "heel",
			Topic:      "sensor/imu0",
			Path:       "euler.x",
			Label:      "HEL",
			Multiplier: 1,
			Kind:       metrics.KindAngleSigned,
			Slot:       slotBottomLeft,
		},
		{
			Name:       "pitch",
			Topic:      "sensor/imu0",
			Path:       "euler.y",
			Label:      "PIT",
			Multiplier: 1,
			Kind:       metrics.KindAngleSigned,
			Slot:       slotBottomRight,
		},
	}
}

// Display returns the renderer layout. Ambient and Logger are left for the
// caller to fill in.
func Display() display.Config {
	return display.Config{
		Width:  Width,
		Height: Height,
		Fonts: display.Fonts{
			Value:  &freesans.Bold24pt7b,
			Label:  &freesans.Bold9pt7b,
			Footer: &tinyfont.TomThumb,
		},
		LabelLineHeight:   14,
		MessageLineHeight: 20,
		SignGap:           4,
		FooterX:           2,
		FooterY:           Height - 2,
	}
}

// Settings are the tunables of the render loop, the transport and the
// battery monitor.
type Settings struct {
	RenderInterval    time.Duration // Period between frames.
	FullClearInterval uint32        // Frames between full-clear refreshes.
	ConsumeOnDraw     bool          // Zero every value once it has been drawn.
	AmbientC          int           // Panel temperature used when the sensor is unavailable.
	TelemetryQueueLen int           // Decoded messages buffered between transport and render loop.
	StatusQueueLen    int           // Footer updates buffered from the transport.
	StatusInterval    time.Duration // Period between battery status publishes.
	StatusTopic       string
	MaxRuntime        time.Duration // Time before entering deep sleep. Zero never sleeps.
	Battery           power.Config
	TCPBufSize        int
	Timeout           time.Duration // MQTT socket deadline.
}

// Default returns the settings used on the device.
func Default() Settings {
	battery := power.DefaultConfig()
	battery.MinReadInterval = 10 * time.Second
	return Settings{
		RenderInterval:    500 * time.Millisecond,
		FullClearInterval: 600,
		ConsumeOnDraw:     true,
		AmbientC:          display.DefaultAmbientC,
		TelemetryQueueLen: 16,
		StatusQueueLen:    4,
		StatusInterval:    30 * time.Second,
		StatusTopic:       "module/sailtrack-monitor",
		MaxRuntime:        0,
		Battery:           battery,
		TCPBufSize:        2030, // MTU - ethhdr - iphdr - tcphdr
		Timeout:           5 * time.Second,
	}
}
