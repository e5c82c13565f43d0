// Package monitor runs the render loop. Telemetry arrives on a bounded
// channel from the transport goroutine and is folded into the metric
// registry at the start of each tick, so the registry is only ever touched
// by the goroutine calling Run.
package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/harveysanders/sailtrack/sailmonitor/display"
	"github.com/harveysanders/sailtrack/sailmonitor/metrics"
	"github.com/harveysanders/sailtrack/sailmonitor/refresh"
)

// ErrRuntimeExceeded is returned by Run once Config.MaxRuntime has elapsed.
var ErrRuntimeExceeded = errors.New("monitor: max runtime exceeded")

// Telemetry is one decoded message received on Topic.
type Telemetry struct {
	Topic   string
	Payload any
}

// Config tunes the render loop.
type Config struct {
	// Interval is the render period. Ticks are scheduled at a fixed rate,
	// not a fixed delay after each draw.
	Interval time.Duration
	// MaxRuntime stops Run after this long. Zero runs until the context is done.
	MaxRuntime time.Duration
	// ConsumeOnDraw resets every value after it is drawn, so a metric that
	// stops reporting falls back to zero on the next frame.
	ConsumeOnDraw bool
	Logger        *slog.Logger
}

// Monitor owns the metric state, the refresh schedule and the renderer.
type Monitor struct {
	registry  *metrics.Registry
	scheduler *refresh.Scheduler
	renderer  *display.Renderer
	telemetry <-chan Telemetry
	status    <-chan string
	cfg       Config
	logger    *slog.Logger

	ticks    uint64
	failures uint64
}

// New creates a Monitor. status may be nil if nothing feeds the footer.
func New(
	registry *metrics.Registry,
	scheduler *refresh.Scheduler,
	renderer *display.Renderer,
	telemetry <-chan Telemetry,
	status <-chan string,
	cfg Config,
) (*Monitor, error) {
	if registry == nil || scheduler == nil || renderer == nil {
		return nil, errors.New("must provide registry, scheduler and renderer")
	}
	if telemetry == nil {
		return nil, errors.New("must provide telemetry channel")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("render interval must be positive")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Monitor{
		registry:  registry,
		scheduler: scheduler,
		renderer:  renderer,
		telemetry: telemetry,
		status:    status,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// RunTick drains queued telemetry and status updates, then draws one frame.
// A failed commit is returned; state is still consumed so the next tick
// starts from fresh values. The scheduler has already advanced, so a failed
// full clear is not attempted again until the next full-clear interval.
func (m *Monitor) RunTick() error {
	m.drain()

	mode := m.scheduler.Tick()
	var readings []metrics.Reading
	if m.cfg.ConsumeOnDraw {
		readings = m.registry.Consume()
	} else {
		readings = m.registry.Snapshot()
	}
	m.ticks++

	err := m.renderer.Render(readings, mode)
	if err != nil {
		m.failures++
		return err
	}
	if mode == refresh.ModeFullClear {
		m.logger.Debug("monitor:full-clear", slog.Uint64("tick", m.ticks))
	}
	return nil
}

func (m *Monitor) drain() {
	for {
		select {
		case t := <-m.telemetry:
			n := m.registry.Ingest(t.Topic, t.Payload)
			if n == 0 {
				m.logger.Debug("monitor:no-metrics-updated", slog.String("topic", t.Topic))
			}
		default:
			m.drainStatus()
			return
		}
	}
}

// drainStatus keeps only the newest footer text.
func (m *Monitor) drainStatus() {
	if m.status == nil {
		return
	}
	for {
		select {
		case s := <-m.status:
			m.renderer.SetStatus(s)
		default:
			return
		}
	}
}

// Run draws a frame immediately and then once per Interval until ctx is
// done or MaxRuntime elapses. Commit failures are logged and the loop
// continues.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if m.cfg.MaxRuntime > 0 {
		timer := time.NewTimer(m.cfg.MaxRuntime)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		err := m.RunTick()
		if err != nil {
			m.logger.Error("monitor:render-failed",
				slog.String("err", err.Error()),
				slog.Uint64("failures", m.failures),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return ErrRuntimeExceeded
		case <-ticker.C:
		}
	}
}

// Ticks returns the number of frames attempted.
func (m *Monitor) Ticks() uint64 { return m.ticks }

// Failures returns the number of frames the panel rejected.
func (m *Monitor) Failures() uint64 { return m.failures }
