package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"github.com/harveysanders/sailtrack/sailmonitor/display"
	"github.com/harveysanders/sailtrack/sailmonitor/metrics"
	"github.com/harveysanders/sailtrack/sailmonitor/refresh"
)

type commit struct {
	transition refresh.Transition
	cleared    bool
}

// recordingPanel records every commit and fails the ones listed in failOn.
type recordingPanel struct {
	commits []commit
	failOn  map[int]bool
	cleared bool
	on      bool
}

func (p *recordingPanel) PowerOn()  { p.on = true }
func (p *recordingPanel) PowerOff() { p.on = false }
func (p *recordingPanel) Clear()    { p.cleared = true }

func (p *recordingPanel) Commit(_ *display.Framebuffer, tr refresh.Transition, _ int) error {
	n := len(p.commits)
	p.commits = append(p.commits, commit{transition: tr, cleared: p.cleared})
	p.cleared = false
	if p.failOn[n] {
		return errors.New("busy")
	}
	return nil
}

type fixture struct {
	monitor   *Monitor
	registry  *metrics.Registry
	panel     *recordingPanel
	renderer  *display.Renderer
	telemetry chan Telemetry
	status    chan string
}

func newFixture(t *testing.T, interval uint32, cfg Config) *fixture {
	t.Helper()

	reg, err := metrics.NewRegistry([]metrics.Definition{
		{Name: "sog", Topic: "boat", Path: "sog", Label: "SOG", Multiplier: 1, Kind: metrics.KindSpeed, Slot: metrics.Slot{X: 140, Y: 48}},
		{Name: "roll", Topic: "imu", Path: "euler.x", Label: "HEL", Multiplier: 1, Kind: metrics.KindAngleSigned, Slot: metrics.Slot{X: 290, Y: 108}},
	})
	require.NoError(t, err)

	panel := &recordingPanel{failOn: map[int]bool{}}
	r, err := display.NewRenderer(panel, display.Config{
		Width:  296,
		Height: 128,
		Fonts: display.Fonts{
			Value:  &freesans.Bold24pt7b,
			Label:  &freesans.Bold9pt7b,
			Footer: &tinyfont.TomThumb,
		},
		LabelLineHeight:   14,
		MessageLineHeight: 20,
		FooterY:           126,
	})
	require.NoError(t, err)

	if cfg.Interval == 0 {
		cfg.Interval = time.Millisecond
	}
	telemetry := make(chan Telemetry, 8)
	status := make(chan string, 4)
	m, err := New(reg, refresh.NewScheduler(interval), r, telemetry, status, cfg)
	require.NoError(t, err)

	return &fixture{
		monitor:   m,
		registry:  reg,
		panel:     panel,
		renderer:  r,
		telemetry: telemetry,
		status:    status,
	}
}

func TestNew_Validation(t *testing.T) {
	f := newFixture(t, 10, Config{})
	sched := refresh.NewScheduler(10)
	telemetry := make(chan Telemetry)

	_, err := New(nil, sched, f.renderer, telemetry, nil, Config{Interval: time.Second})
	assert.Error(t, err)

	_, err = New(f.registry, sched, f.renderer, nil, nil, Config{Interval: time.Second})
	assert.Error(t, err)

	_, err = New(f.registry, sched, f.renderer, telemetry, nil, Config{})
	assert.Error(t, err)
}

func TestRunTick_DrainsTelemetryBeforeRender(t *testing.T) {
	f := newFixture(t, 10, Config{ConsumeOnDraw: false})

	f.telemetry <- Telemetry{Topic: "boat", Payload: map[string]any{"sog": 4.26}}
	f.telemetry <- Telemetry{Topic: "imu", Payload: map[string]any{"euler": map[string]any{"x": -12.7}}}
	f.telemetry <- Telemetry{Topic: "boat", Payload: map[string]any{"sog": 5.04}}

	require.NoError(t, f.monitor.RunTick())
	assert.Empty(t, f.telemetry)

	snap := f.registry.Snapshot()
	assert.InDelta(t, 5.0, snap[0].Magnitude, 1e-9, "latest value wins")
	assert.InDelta(t, 13.0, snap[1].Magnitude, 1e-9)
	assert.True(t, snap[1].Negative)
}

func TestRunTick_ConsumeOnDraw(t *testing.T) {
	f := newFixture(t, 10, Config{ConsumeOnDraw: true})

	f.telemetry <- Telemetry{Topic: "boat", Payload: map[string]any{"sog": 4.3}}
	require.NoError(t, f.monitor.RunTick())

	for _, rd := range f.registry.Snapshot() {
		assert.Zero(t, rd.Magnitude, rd.Name)
		assert.False(t, rd.Fresh, rd.Name)
	}
}

func TestRunTick_RefreshCadence(t *testing.T) {
	f := newFixture(t, 3, Config{})

	for i := 0; i < 7; i++ {
		require.NoError(t, f.monitor.RunTick())
	}

	var full []int
	for i, c := range f.panel.commits {
		if c.transition == refresh.TransitionWhiteToGray {
			assert.True(t, c.cleared, "full refresh clears the panel first")
			full = append(full, i)
		} else {
			assert.False(t, c.cleared)
		}
	}
	assert.Equal(t, []int{0, 3, 6}, full)
	assert.False(t, f.panel.on, "panel powered off between frames")
}

func TestRunTick_ContinuesAfterCommitFailure(t *testing.T) {
	f := newFixture(t, 10, Config{ConsumeOnDraw: true})
	f.panel.failOn[0] = true

	err := f.monitor.RunTick()
	require.Error(t, err)
	assert.ErrorIs(t, err, display.ErrCommit)

	f.telemetry <- Telemetry{Topic: "boat", Payload: map[string]any{"sog": 2}}
	assert.NoError(t, f.monitor.RunTick())

	assert.Len(t, f.panel.commits, 2)
	assert.Equal(t, uint64(2), f.monitor.Ticks())
	assert.Equal(t, uint64(1), f.monitor.Failures())
}

func TestRunTick_FailedFullClearWaitsForNextInterval(t *testing.T) {
	f := newFixture(t, 3, Config{})
	f.panel.failOn[0] = true

	require.Error(t, f.monitor.RunTick())
	require.NoError(t, f.monitor.RunTick())
	require.NoError(t, f.monitor.RunTick())
	require.NoError(t, f.monitor.RunTick())

	var transitions []refresh.Transition
	for _, c := range f.panel.commits {
		transitions = append(transitions, c.transition)
	}
	assert.Equal(t, []refresh.Transition{
		refresh.TransitionWhiteToGray,
		refresh.TransitionGrayToGray,
		refresh.TransitionGrayToGray,
		refresh.TransitionWhiteToGray,
	}, transitions)
}

func TestRunTick_UnknownTopicIgnored(t *testing.T) {
	f := newFixture(t, 10, Config{})

	f.telemetry <- Telemetry{Topic: "weather", Payload: map[string]any{"sog": 9}}
	f.telemetry <- Telemetry{Topic: "boat", Payload: "not an object"}
	require.NoError(t, f.monitor.RunTick())

	for _, rd := range f.registry.Snapshot() {
		assert.Zero(t, rd.Magnitude, rd.Name)
	}
}

func TestRunTick_StatusKeepsNewest(t *testing.T) {
	f := newFixture(t, 10, Config{})

	f.status <- "WiFi up"
	f.status <- "MQTT OK"
	require.NoError(t, f.monitor.RunTick())
	assert.Equal(t, "MQTT OK", f.renderer.Status())

	require.NoError(t, f.monitor.RunTick())
	assert.Equal(t, "MQTT OK", f.renderer.Status(), "status sticks until replaced")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	f := newFixture(t, 10, Config{Interval: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := f.monitor.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, f.monitor.Ticks(), uint64(2))
}

func TestRun_MaxRuntime(t *testing.T) {
	f := newFixture(t, 10, Config{Interval: time.Millisecond, MaxRuntime: 20 * time.Millisecond})

	err := f.monitor.Run(context.Background())
	assert.ErrorIs(t, err, ErrRuntimeExceeded)
	assert.NotZero(t, f.monitor.Ticks())
}

func TestRun_LogsAndContinuesOnFailure(t *testing.T) {
	f := newFixture(t, 10, Config{Interval: time.Millisecond, MaxRuntime: 20 * time.Millisecond})
	f.panel.failOn[0] = true
	f.panel.failOn[1] = true

	err := f.monitor.Run(context.Background())
	assert.ErrorIs(t, err, ErrRuntimeExceeded)
	assert.Greater(t, f.monitor.Ticks(), uint64(2))
	assert.Equal(t, uint64(2), f.monitor.Failures())
}
