//go:build badger2040_w

package main

import (
	"context"
	"errors"
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/sailtrack/sailmonitor/config"
	"github.com/harveysanders/sailtrack/sailmonitor/cyw43439"
	"github.com/harveysanders/sailtrack/sailmonitor/display"
	"github.com/harveysanders/sailtrack/sailmonitor/epaper"
	"github.com/harveysanders/sailtrack/sailmonitor/metrics"
	"github.com/harveysanders/sailtrack/sailmonitor/monitor"
	"github.com/harveysanders/sailtrack/sailmonitor/mqtt"
	"github.com/harveysanders/sailtrack/sailmonitor/power"
	"github.com/harveysanders/sailtrack/sailmonitor/refresh"
)

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	settings := config.Default()

	// Holds the board on when running from battery. Dropping it powers
	// everything off until a button is pressed.
	enable3v3 := machine.ENABLE_3V3
	enable3v3.Configure(machine.PinConfig{Mode: machine.PinOutput})
	enable3v3.High()

	epd, err := newBadgerEPD()
	if err != nil {
		printErrForever(logger, "configure e-paper", slog.Any("reason", err))
	}
	panel := epaper.New(epd, logger)

	dcfg := config.Display()
	dcfg.Ambient = ambientTemperature(settings.AmbientC)
	dcfg.Logger = logger
	renderer, err := display.NewRenderer(panel, dcfg)
	if err != nil {
		printErrForever(logger, "create renderer", slog.Any("reason", err))
	}
	err = renderer.Message("SAILTRACK\nconnecting")
	if err != nil {
		logger.Error("display:banner-failed", slog.Any("reason", err))
	}

	registry, err := metrics.NewRegistry(config.Metrics())
	if err != nil {
		printErrForever(logger, "build metric registry", slog.Any("reason", err))
	}

	machine.InitADC()
	vsys := machine.ADC{Pin: machine.ADC3} // VSYS/3 on GPIO29
	vsys.Configure(machine.ADCConfig{})
	battery, err := power.New(vsys, settings.Battery)
	if err != nil {
		printErrForever(logger, "configure battery monitor", slog.Any("reason", err))
	}

	telemetry := make(chan monitor.Telemetry, settings.TelemetryQueueLen)
	footer := make(chan string, settings.StatusQueueLen)
	topics := registry.Topics()

	go func() {
		display.SendStatus(footer, "WiFi joining")
		stack, err := cyw43439.Setup(cyw43439.Config{
			Hostname:    config.ClientID(),
			MaxTCPPorts: 1,
			Logger:      logger,
		})
		if err != nil {
			display.SendStatus(footer, "WiFi failed")
			printErrForever(logger, "wifi setup", slog.Any("reason", err))
		}
		display.SendStatus(footer, "IP "+stack.Addr().String())

		c := mqtt.Client{
			ID:             config.ClientID(),
			Logger:         logger,
			Timeout:        settings.Timeout,
			TCPBufSize:     settings.TCPBufSize,
			StatusInterval: settings.StatusInterval,
			StatusTopic:    settings.StatusTopic,
			Username:       config.Username(),
			Password:       config.Password(),
		}
		err = c.ConnectAndSubscribe(stack, config.BrokerAddr(), topics, telemetry, footer, mqtt.BatteryStatus(battery))
		if err != nil {
			// Print error in a loop in case the serial monitor is not
			// ready before the inital messages
			printErrForever(logger, "connect to MQTT broker", slog.Any("reason", err))
		}
	}()

	mon, err := monitor.New(
		registry,
		refresh.NewScheduler(settings.FullClearInterval),
		renderer,
		telemetry,
		footer,
		monitor.Config{
			Interval:      settings.RenderInterval,
			MaxRuntime:    settings.MaxRuntime,
			ConsumeOnDraw: settings.ConsumeOnDraw,
			Logger:        logger,
		},
	)
	if err != nil {
		printErrForever(logger, "create monitor", slog.Any("reason", err))
	}

	err = mon.Run(context.Background())
	if errors.Is(err, monitor.ErrRuntimeExceeded) {
		deepSleep(logger, renderer, enable3v3)
	}
	printErrForever(logger, "monitor stopped", slog.Any("reason", err))
}

// deepSleep shows the sleep banner and cuts board power. The Badger's
// buttons re-enable power in hardware. On USB power the board stays up, so
// it waits for button A and resets instead.
func deepSleep(logger *slog.Logger, renderer *display.Renderer, enable3v3 machine.Pin) {
	logger.Info("power:deep-sleep")
	err := renderer.Message("Sleeping\npress a button\nto wake")
	if err != nil {
		logger.Error("display:banner-failed", slog.Any("reason", err))
	}
	time.Sleep(400 * time.Millisecond)
	enable3v3.Low()

	wake := machine.BUTTON_A
	wake.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	for !wake.Get() {
		time.Sleep(50 * time.Millisecond)
	}
	machine.CPUReset()
}

// ambientTemperature reads the RP2040's internal sensor, falling back to
// fallback for readings outside the panel's rated range.
func ambientTemperature(fallback int) func() int {
	return func() int {
		c := int(machine.ReadTemperature() / 1000)
		if c < 0 || c > 50 {
			return fallback
		}
		return c
	}
}

// printErrForever prints a string to serial @ 1hz. It
// blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
