//go:build badger2040_w

package main

import (
	"machine"

	"tinygo.org/x/drivers/uc8151"

	"github.com/harveysanders/sailtrack/sailmonitor/epaper"
)

// badgerEPD is the Badger's UC8151 panel as an epaper.Device. The driver is
// left non-blocking; epaper.Panel waits on and powers off every refresh.
type badgerEPD struct {
	*uc8151.Device
}

func newBadgerEPD() (*badgerEPD, error) {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 12000000,
		SCK:       machine.EPD_SCK_PIN,
		SDO:       machine.EPD_SDO_PIN,
	})
	if err != nil {
		return nil, err
	}
	dev := uc8151.New(machine.SPI0, machine.EPD_CS_PIN, machine.EPD_DC_PIN, machine.EPD_RESET_PIN, machine.EPD_BUSY_PIN)
	dev.Configure(uc8151.Config{
		Speed:    uc8151.DEFAULT,
		Rotation: uc8151.ROTATION_270,
	})
	return &badgerEPD{Device: &dev}, nil
}

// SetLUT loads the waveform for speed without resetting the controller.
func (d *badgerEPD) SetLUT(speed epaper.Speed) error {
	s := uc8151.TURBO
	if speed == epaper.SpeedDefault {
		s = uc8151.DEFAULT
	}
	return d.Device.SetLUT(s, false)
}
