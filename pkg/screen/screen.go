// Package screen runs the clock: a refresh task that reads the time once per
// interval and a frame task that advances the second-hand sweep and redraws.
//
// Both tasks exist only while the screen is visible. Hosts drive visibility
// through [Screen.HandleLifecycle] or by calling [Screen.Start] and
// [Screen.Stop] directly.
package screen

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/platform"
	"github.com/go-drift/clockface/pkg/theme"
)

// Default cadences.
const (
	DefaultRefreshInterval = time.Second
	DefaultSweepPeriod     = time.Second
	DefaultFrameInterval   = 16 * time.Millisecond
)

// animMu serializes access to the animation package. Tickers are stepped
// from a process-wide registry, so every screen shares one lock.
var animMu sync.Mutex

// Frame is one painted frame.
type Frame struct {
	// Seq increases by one for every frame a screen paints.
	Seq   uint64
	State clock.DisplayState
	List  *graphics.DisplayList
}

// Surface presents painted frames. Present is never called concurrently for
// the same screen.
type Surface interface {
	Present(frame Frame) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(frame Frame) error

// Present calls f(frame).
func (f SurfaceFunc) Present(frame Frame) error {
	return f(frame)
}

// SecondHandMode selects how the second hand moves.
type SecondHandMode int

const (
	// SecondHandSweep turns the second hand continuously, one revolution per
	// sweep period.
	SecondHandSweep SecondHandMode = iota
	// SecondHandTick jumps the second hand to the current second.
	SecondHandTick
)

// Options configures a Screen. Zero durations use the defaults.
type Options struct {
	Source  clock.TimeSource
	Palette theme.ClockPalette
	Painter *clockface.Painter
	Surface Surface
	Size    graphics.Size

	RefreshInterval time.Duration
	SweepPeriod     time.Duration
	FrameInterval   time.Duration

	// PhaseLock restarts the sweep when the refresh task observes a new
	// second. The restart lags the real second boundary by up to one
	// refresh interval.
	PhaseLock  bool
	SecondHand SecondHandMode

	Logger *log.Logger
}

// Screen owns the refresh and frame tasks and the last good display state.
type Screen struct {
	opts Options
	log  *log.Logger

	refreshTask *Task
	frameTask   *Task

	// sweep is guarded by animMu.
	sweep      *animation.AnimationController
	lastSecond int

	// mu guards the fields below.
	mu        sync.Mutex
	tod       clock.TimeOfDay
	haveTime  bool
	state     clock.DisplayState
	haveState bool
	failures  int

	// renderMu serializes painting and presenting.
	renderMu sync.Mutex
	seq      uint64

	runMu  sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

// New returns a stopped screen.
func New(opts Options) *Screen {
	if opts.Source == nil {
		opts.Source = clock.SystemSource{}
	}
	if opts.Painter == nil {
		opts.Painter = clockface.New(clockface.DefaultStyle())
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.SweepPeriod <= 0 {
		opts.SweepPeriod = DefaultSweepPeriod
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Screen{
		opts:       opts,
		log:        logger.WithPrefix("screen"),
		sweep:      animation.NewAnimationController(opts.SweepPeriod),
		lastSecond: -1,
	}
	s.refreshTask = NewTask("screen.refresh", opts.RefreshInterval, s.refresh)
	s.frameTask = NewTask("screen.frame", opts.FrameInterval, s.frame)
	return s
}

// RefreshTask returns the task that reads the time source.
func (s *Screen) RefreshTask() *Task {
	return s.refreshTask
}

// FrameTask returns the task that advances the sweep and redraws.
func (s *Screen) FrameTask() *Task {
	return s.frameTask
}

// Start restarts the sweep from 12 o'clock and launches both tasks. It is a
// no-op if the screen is already running.
func (s *Screen) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil {
		if s.tasksRunning() {
			return
		}
		// Both loops ended with the parent context.
		s.release()
	}

	animMu.Lock()
	s.sweep.Repeat()
	s.lastSecond = -1
	animMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	s.refreshTask.Start(gctx, g)
	s.frameTask.Start(gctx, g)
	s.cancel, s.group = cancel, g

	s.log.Info("started",
		"refresh", s.opts.RefreshInterval,
		"sweep", s.opts.SweepPeriod,
		"frame", s.opts.FrameInterval,
		"phase_lock", s.opts.PhaseLock,
	)
}

// Stop cancels both tasks, waits for them to exit and freezes the sweep.
// The last good state is kept for when the screen starts again.
func (s *Screen) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel == nil {
		return
	}

	s.release()

	animMu.Lock()
	s.sweep.Stop()
	status, cycles := s.sweep.Status(), s.sweep.Cycle()
	animMu.Unlock()

	s.log.Info("stopped", "sweep", status, "cycles", cycles)
}

// Running reports whether the screen was started and at least one of its
// tasks is still running. A screen whose start context was cancelled is not
// running and can be started again.
func (s *Screen) Running() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.cancel != nil && s.tasksRunning()
}

func (s *Screen) tasksRunning() bool {
	return s.refreshTask.Running() || s.frameTask.Running()
}

// release cancels and waits for the task group. runMu must be held.
func (s *Screen) release() {
	s.cancel()
	s.refreshTask.Stop()
	s.frameTask.Stop()
	if err := s.group.Wait(); err != nil {
		s.log.Warn("task exited with error", "err", err)
	}
	s.cancel, s.group = nil, nil
}

// Close stops the screen and releases the sweep animation. The screen must
// not be started again.
func (s *Screen) Close() error {
	s.Stop()
	animMu.Lock()
	s.sweep.Dispose()
	animMu.Unlock()
	return nil
}

// HandleLifecycle starts the screen when it becomes visible and stops it
// otherwise.
func (s *Screen) HandleLifecycle(state platform.LifecycleState) {
	s.log.Debug("lifecycle", "state", state)
	if state.Visible() {
		s.Start(context.Background())
		return
	}
	s.Stop()
}

// Attach applies the current state of l and follows its changes until the
// returned function is called.
func (s *Screen) Attach(l *platform.LifecycleService) (detach func()) {
	remove := l.AddHandler(s.HandleLifecycle)
	s.HandleLifecycle(l.State())
	return remove
}

// State returns the last successfully derived display state.
func (s *Screen) State() (clock.DisplayState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.haveState
}

// Failures returns how many time reads have failed since the screen was
// created.
func (s *Screen) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// refresh reads the time source. A failed or out-of-range read keeps the
// previous time and skips the redraw.
func (s *Screen) refresh(context.Context) {
	defer errors.Recover(s.refreshTask.Name())

	tod, err := s.opts.Source.Now()
	if err == nil {
		err = tod.Validate()
	}
	if err != nil {
		s.mu.Lock()
		s.failures++
		s.mu.Unlock()
		errors.Report(&errors.ClockError{
			Op:   s.refreshTask.Name(),
			Kind: errors.KindTime,
			Err:  err,
		})
		return
	}

	s.mu.Lock()
	s.tod, s.haveTime = tod, true
	s.mu.Unlock()
	s.render()
}

// frame advances the animation clock and redraws.
func (s *Screen) frame(context.Context) {
	defer errors.Recover(s.frameTask.Name())

	stepAnimations()
	s.render()
}

func stepAnimations() {
	animMu.Lock()
	defer animMu.Unlock()
	animation.StepTickers()
}

func (s *Screen) render() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	tod, ok := s.tod, s.haveTime
	s.mu.Unlock()
	if !ok {
		return
	}

	state := clock.DeriveDisplayState(tod, s.phase(tod), s.opts.Palette)

	var rec graphics.PictureRecorder
	s.opts.Painter.Paint(rec.BeginRecording(s.opts.Size), state)
	list := rec.EndRecording()

	s.mu.Lock()
	s.state, s.haveState = state, true
	s.mu.Unlock()

	s.seq++
	if s.opts.Surface == nil {
		return
	}
	if err := s.opts.Surface.Present(Frame{Seq: s.seq, State: state, List: list}); err != nil {
		errors.Report(&errors.ClockError{
			Op:   "screen.present",
			Kind: errors.KindRender,
			Err:  err,
		})
	}
}

// phase returns the second-hand position in turns for tod.
func (s *Screen) phase(tod clock.TimeOfDay) float64 {
	if s.opts.SecondHand == SecondHandTick {
		return clock.SteppedPhase(tod.Second)
	}

	animMu.Lock()
	defer animMu.Unlock()
	if s.opts.PhaseLock && tod.Second != s.lastSecond {
		if s.lastSecond >= 0 && s.sweep.IsAnimating() {
			s.sweep.Repeat()
		}
		s.lastSecond = tod.Second
	}
	return s.sweep.Value
}
