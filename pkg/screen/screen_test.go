package screen

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/platform"
	clocktest "github.com/go-drift/clockface/pkg/testing"
	"github.com/go-drift/clockface/pkg/theme"
)

type scriptedSource struct {
	mu    sync.Mutex
	tod   clock.TimeOfDay
	err   error
	reads int
}

func (s *scriptedSource) Now() (clock.TimeOfDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.tod, s.err
}

func (s *scriptedSource) set(tod clock.TimeOfDay, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tod, s.err = tod, err
}

func (s *scriptedSource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

type recordingSurface struct {
	mu     sync.Mutex
	frames []Frame
	err    error
	panics bool
}

func (r *recordingSurface) Present(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panics {
		panic("surface exploded")
	}
	r.frames = append(r.frames, f)
	return r.err
}

func (r *recordingSurface) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recordingSurface) Last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

type captureHandler struct {
	mu     sync.Mutex
	errs   []*errors.ClockError
	panics []*errors.PanicError
}

func (h *captureHandler) HandleError(err *errors.ClockError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *captureHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

func (h *captureHandler) Errors() []*errors.ClockError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.ClockError(nil), h.errs...)
}

func (h *captureHandler) Panics() []*errors.PanicError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.PanicError(nil), h.panics...)
}

func installHandler(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	prev := errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return h
}

type fixture struct {
	screen  *Screen
	source  *scriptedSource
	surface *recordingSurface
}

func newFixture(t *testing.T, tod clock.TimeOfDay, configure func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		source:  &scriptedSource{tod: tod},
		surface: &recordingSurface{},
	}
	opts := Options{
		Source:  f.source,
		Surface: f.surface,
		Palette: theme.DefaultLightTheme().ClockPalette(),
		Size:    graphics.Size{Width: 100, Height: 130},
		Logger:  log.New(io.Discard),
	}
	if configure != nil {
		configure(&opts)
	}
	f.screen = New(opts)
	t.Cleanup(func() { _ = f.screen.Close() })
	return f
}

// startSweep starts the sweep animation without launching the tasks, so
// tests can drive refresh and frame by hand.
func (f *fixture) startSweep() {
	animMu.Lock()
	defer animMu.Unlock()
	f.screen.sweep.Repeat()
}

func TestRefreshRendersCurrentTime(t *testing.T) {
	f := newFixture(t, clock.TimeOfDay{Hour: 10, Minute: 8, Second: 30}, nil)

	f.screen.refresh(context.Background())

	require.Equal(t, 1, f.surface.Len())
	frame := f.surface.Last()
	assert.Equal(t, uint64(1), frame.Seq)
	assert.Equal(t, "10:08:30", frame.State.Digital)
	assert.Equal(t, 304.0, frame.State.HourAngle)
	assert.Equal(t, 48.0, frame.State.MinuteAngle)
	assert.Positive(t, frame.List.Len())
	assert.Equal(t, graphics.Size{Width: 100, Height: 130}, frame.List.Size())

	state, ok := f.screen.State()
	require.True(t, ok)
	assert.Equal(t, frame.State, state)
}

func TestFailedReadKeepsLastGoodState(t *testing.T) {
	h := installHandler(t)
	f := newFixture(t, clock.TimeOfDay{Hour: 10, Minute: 8, Second: 30}, nil)
	f.screen.refresh(context.Background())
	require.Equal(t, 1, f.surface.Len())

	sentinel := stderrors.New("clock unavailable")
	f.source.set(clock.TimeOfDay{Hour: 11}, sentinel)
	f.screen.refresh(context.Background())

	assert.Equal(t, 1, f.surface.Len(), "failed read must not redraw")
	state, ok := f.screen.State()
	require.True(t, ok)
	assert.Equal(t, "10:08:30", state.Digital)
	assert.Equal(t, 1, f.screen.Failures())

	errs := h.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindTime, errs[0].Kind)
	assert.Equal(t, "screen.refresh", errs[0].Op)
	assert.ErrorIs(t, errs[0], sentinel)

	// The next frame still shows the last good time.
	f.screen.frame(context.Background())
	assert.Equal(t, "10:08:30", f.surface.Last().State.Digital)

	f.source.set(clock.TimeOfDay{Hour: 11}, nil)
	f.screen.refresh(context.Background())
	assert.Equal(t, "11:00:00", f.surface.Last().State.Digital)
}

func TestOutOfRangeReadIsRejected(t *testing.T) {
	h := installHandler(t)
	f := newFixture(t, clock.TimeOfDay{Hour: 25}, nil)

	f.screen.refresh(context.Background())
	f.screen.frame(context.Background())

	assert.Zero(t, f.surface.Len())
	_, ok := f.screen.State()
	assert.False(t, ok)
	errs := h.Errors()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], clock.ErrInvalidTime)
}

func TestFrameBeforeFirstReadDrawsNothing(t *testing.T) {
	f := newFixture(t, clock.TimeOfDay{}, nil)
	f.screen.frame(context.Background())
	assert.Zero(t, f.surface.Len())
}

func TestSweepFollowsAnimationClock(t *testing.T) {
	clk := clocktest.InstallClock(t, clocktest.NewFakeClock())
	f := newFixture(t, clock.TimeOfDay{Hour: 3}, nil)
	f.startSweep()
	f.screen.refresh(context.Background())
	assert.Equal(t, 0.0, f.surface.Last().State.SecondAngle)

	steps := []struct {
		advance time.Duration
		want    float64
	}{
		{250 * time.Millisecond, 90},
		{500 * time.Millisecond, 270},
		{250 * time.Millisecond, 0},
		{100 * time.Millisecond, 36},
	}
	for _, step := range steps {
		clk.Advance(step.advance)
		f.screen.frame(context.Background())
		assert.InDelta(t, step.want, f.surface.Last().State.SecondAngle, 1e-9)
	}
	// The sweep never changes the hour and minute hands.
	assert.Equal(t, 90.0, f.surface.Last().State.HourAngle)
	assert.Equal(t, 0.0, f.surface.Last().State.MinuteAngle)
}

func TestPhaseLock(t *testing.T) {
	tests := []struct {
		name      string
		phaseLock bool
		want      float64
	}{
		{"free running", false, 216},
		{"locked to seconds", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clocktest.InstallClock(t, clocktest.NewFakeClock())
			f := newFixture(t, clock.TimeOfDay{Hour: 1, Second: 30}, func(o *Options) {
				o.PhaseLock = tt.phaseLock
			})
			f.startSweep()
			f.screen.refresh(context.Background())

			clk.Advance(600 * time.Millisecond)
			f.screen.frame(context.Background())
			require.InDelta(t, 216, f.surface.Last().State.SecondAngle, 1e-9)

			f.source.set(clock.TimeOfDay{Hour: 1, Second: 31}, nil)
			f.screen.refresh(context.Background())
			assert.InDelta(t, tt.want, f.surface.Last().State.SecondAngle, 1e-9)
		})
	}
}

func TestTickingSecondHand(t *testing.T) {
	clk := clocktest.InstallClock(t, clocktest.NewFakeClock())
	f := newFixture(t, clock.TimeOfDay{Hour: 1, Second: 15}, func(o *Options) {
		o.SecondHand = SecondHandTick
	})
	f.startSweep()
	f.screen.refresh(context.Background())
	assert.InDelta(t, 90, f.surface.Last().State.SecondAngle, 1e-9)

	clk.Advance(400 * time.Millisecond)
	f.screen.frame(context.Background())
	assert.InDelta(t, 90, f.surface.Last().State.SecondAngle, 1e-9)
}

func TestPresentErrorIsReported(t *testing.T) {
	h := installHandler(t)
	f := newFixture(t, clock.TimeOfDay{Hour: 2}, nil)
	f.surface.err = stderrors.New("surface gone")

	f.screen.refresh(context.Background())

	errs := h.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, errors.KindRender, errs[0].Kind)
	_, ok := f.screen.State()
	assert.True(t, ok)
}

func TestPanicInTaskIsRecovered(t *testing.T) {
	h := installHandler(t)
	f := newFixture(t, clock.TimeOfDay{Hour: 2}, nil)
	f.surface.panics = true

	assert.NotPanics(t, func() { f.screen.refresh(context.Background()) })
	assert.NotPanics(t, func() { f.screen.frame(context.Background()) })

	panics := h.Panics()
	require.Len(t, panics, 2)
	assert.Equal(t, "screen.refresh", panics[0].Op)
	assert.Equal(t, "screen.frame", panics[1].Op)
}

func TestStartStop(t *testing.T) {
	f := newFixture(t, clock.TimeOfDay{Hour: 4, Minute: 5, Second: 6}, func(o *Options) {
		o.RefreshInterval = 5 * time.Millisecond
		o.FrameInterval = 2 * time.Millisecond
	})

	f.screen.Start(context.Background())
	f.screen.Start(context.Background())
	require.True(t, f.screen.Running())
	require.True(t, f.screen.RefreshTask().Running())
	require.True(t, f.screen.FrameTask().Running())

	require.Eventually(t, func() bool {
		return f.surface.Len() >= 5 && f.source.Reads() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	f.screen.Stop()
	assert.False(t, f.screen.Running())
	assert.False(t, f.screen.RefreshTask().Running())
	assert.False(t, f.screen.FrameTask().Running())

	frames, reads := f.surface.Len(), f.source.Reads()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frames, f.surface.Len(), "no frames after Stop")
	assert.Equal(t, reads, f.source.Reads(), "no reads after Stop")

	f.screen.Stop()
	f.screen.Start(context.Background())
	require.Eventually(t, func() bool { return f.surface.Len() > frames }, 2*time.Second, 5*time.Millisecond)
}

func TestTasksStopIndependently(t *testing.T) {
	f := newFixture(t, clock.TimeOfDay{Hour: 4}, func(o *Options) {
		o.RefreshInterval = 2 * time.Millisecond
		o.FrameInterval = 2 * time.Millisecond
	})
	f.screen.Start(context.Background())
	defer f.screen.Stop()

	f.screen.FrameTask().Stop()
	assert.False(t, f.screen.FrameTask().Running())
	assert.True(t, f.screen.RefreshTask().Running())

	reads := f.source.Reads()
	require.Eventually(t, func() bool { return f.source.Reads() > reads+2 }, 2*time.Second, 2*time.Millisecond)
}

func TestParentContextCancelEndsTasks(t *testing.T) {
	f := newFixture(t, clock.TimeOfDay{Hour: 4}, func(o *Options) {
		o.RefreshInterval = 2 * time.Millisecond
		o.FrameInterval = 2 * time.Millisecond
	})
	ctx, cancel := context.WithCancel(context.Background())
	f.screen.Start(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return !f.screen.RefreshTask().Running() && !f.screen.FrameTask().Running()
	}, 2*time.Second, 2*time.Millisecond)
	f.screen.Stop()
	assert.False(t, f.screen.Running())
}

func TestRestartAfterParentContextCancel(t *testing.T) {
	f := newFixture(t, clock.TimeOfDay{Hour: 4}, func(o *Options) {
		o.RefreshInterval = 2 * time.Millisecond
		o.FrameInterval = 2 * time.Millisecond
	})
	ctx, cancel := context.WithCancel(context.Background())
	f.screen.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return !f.screen.Running() }, 2*time.Second, 2*time.Millisecond)

	f.screen.Start(context.Background())
	defer f.screen.Stop()
	assert.True(t, f.screen.Running())
	assert.True(t, f.screen.RefreshTask().Running())
	assert.True(t, f.screen.FrameTask().Running())

	frames := f.surface.Len()
	require.Eventually(t, func() bool { return f.surface.Len() > frames+2 }, 2*time.Second, 2*time.Millisecond)
}

func TestLifecycleDrivesTasks(t *testing.T) {
	f := newFixture(t, clock.TimeOfDay{Hour: 4}, func(o *Options) {
		o.RefreshInterval = 5 * time.Millisecond
		o.FrameInterval = 5 * time.Millisecond
	})
	l := platform.NewLifecycleService()

	detach := f.screen.Attach(l)
	assert.True(t, f.screen.Running(), "resumed screen should start")

	transitions := []struct {
		state   platform.LifecycleState
		running bool
	}{
		{platform.LifecycleStateInactive, false},
		{platform.LifecycleStateResumed, true},
		{platform.LifecycleStatePaused, false},
		{platform.LifecycleStateResumed, true},
		{platform.LifecycleStateDetached, false},
	}
	for _, tr := range transitions {
		l.SetState(tr.state)
		assert.Equalf(t, tr.running, f.screen.Running(), "after %s", tr.state)
		assert.Equalf(t, tr.running, f.screen.RefreshTask().Running(), "refresh task after %s", tr.state)
		assert.Equalf(t, tr.running, f.screen.FrameTask().Running(), "frame task after %s", tr.state)
	}

	detach()
	l.SetState(platform.LifecycleStateResumed)
	assert.False(t, f.screen.Running(), "detached screen must ignore lifecycle")
}
