// Package power estimates battery voltage from an ADC pin behind a resistor
// divider. Sampling blocks for Samples*Interval, so it belongs on the
// transport goroutine, never on the render loop.
package power

import (
	"errors"
	"time"
)

// ADC is a 16-bit full scale analog input, as machine.ADC on TinyGo.
type ADC interface {
	Get() uint16
}

// Config describes the battery sense circuit and how to sample it.
type Config struct {
	Samples  int           // Reads averaged per measurement.
	Interval time.Duration // Pause between reads.
	RefVolts float32       // ADC reference voltage.
	Divider  float32       // Ratio of the resistor divider in front of the pin.
	// MinReadInterval returns the cached voltage for calls closer together
	// than this. Zero samples on every call.
	MinReadInterval time.Duration
}

// DefaultConfig matches the Badger 2040 W battery sense: VSYS through a 1:3
// divider on a 3.3V reference.
func DefaultConfig() Config {
	return Config{
		Samples:  32,
		Interval: time.Millisecond,
		RefVolts: 3.3,
		Divider:  3,
	}
}

// Monitor samples battery voltage with throttling and caching.
type Monitor struct {
	adc ADC
	cfg Config

	cachedVolts   float32   // Last measured voltage.
	lastReadTime  time.Time // When cachedVolts was measured.
	hasValidCache bool

	// Replaced in tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a Monitor reading from adc.
func New(adc ADC, cfg Config) (*Monitor, error) {
	if adc == nil {
		return nil, errors.New("must provide adc")
	}
	if cfg.Samples <= 0 {
		return nil, errors.New("battery samples must be positive")
	}
	if cfg.RefVolts <= 0 || cfg.Divider <= 0 {
		return nil, errors.New("battery reference and divider must be positive")
	}
	return &Monitor{
		adc:   adc,
		cfg:   cfg,
		sleep: time.Sleep,
		now:   time.Now,
	}, nil
}

// SampleBatteryVoltage averages Samples reads of the ADC, pausing Interval
// after each, and scales the result to volts at the battery.
func (m *Monitor) SampleBatteryVoltage() float32 {
	now := m.now()
	if m.hasValidCache && m.cfg.MinReadInterval > 0 && now.Sub(m.lastReadTime) < m.cfg.MinReadInterval {
		return m.cachedVolts
	}

	var sum uint32
	for i := 0; i < m.cfg.Samples; i++ {
		sum += uint32(m.adc.Get())
		m.sleep(m.cfg.Interval)
	}
	avg := float32(sum) / float32(m.cfg.Samples)
	volts := avg / 65535 * m.cfg.RefVolts * m.cfg.Divider

	m.cachedVolts = volts
	m.lastReadTime = now
	m.hasValidCache = true
	return volts
}

const (
	emptyVolts = 3.7
	fullVolts  = 4.2
)

// Percent is a linear charge estimate for a single LiPo cell, rounded and
// clamped to [0, 100].
func Percent(volts float32) int {
	p := (volts - emptyVolts) / (fullVolts - emptyVolts) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return int(p + 0.5)
}
