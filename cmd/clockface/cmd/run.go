package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/platform"
	"github.com/go-drift/clockface/pkg/screen"
	"github.com/go-drift/clockface/pkg/terminal"
)

func init() {
	RegisterCommand(newRunCommand)
}

// faceSize is the logical canvas the live face is painted on. The terminal
// scales it to the window.
var faceSize = graphics.Size{Width: 100, Height: 100}

type runOptions struct {
	plain    bool
	duration time.Duration
}

func newRunCommand(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show the live clock",
		Long: `Show the live clock in the terminal.

On an interactive terminal the analog face and the digital readout are drawn
full screen. Press p or space to pause, q to quit. The clock also pauses
while the terminal window loses focus.

When output is not a terminal, or with --plain, the digital readout is
printed once per second instead.`,
		Example: `  clockface run
  clockface run --theme dark
  clockface run --plain --for 10s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClock(a, cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the digital readout instead of drawing the face")
	cmd.Flags().DurationVar(&opts.duration, "for", 0, "stop after this long (default: until interrupted)")
	return cmd
}

func runClock(a *app, cmd *cobra.Command, opts *runOptions) error {
	r, err := a.settings()
	if err != nil {
		return err
	}
	if opts.duration < 0 {
		return fmt.Errorf("--for must not be negative (got %s)", opts.duration)
	}

	out := cmd.OutOrStdout()
	if !opts.plain && isTerminal(out) {
		return runInteractive(a, cmd, r, opts)
	}
	return runPlain(a, cmd, r, opts, out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func screenOptions(r *config.Resolved, logger *log.Logger) screen.Options {
	return screen.Options{
		Source:          clock.SystemSource{},
		Palette:         r.Palette,
		Size:            faceSize,
		RefreshInterval: r.Refresh,
		SweepPeriod:     r.Sweep,
		FrameInterval:   r.Frame,
		PhaseLock:       r.PhaseLock,
		SecondHand:      r.SecondHand,
		Logger:          logger,
	}
}

// runInteractive draws the clock full screen with bubbletea. Focus changes
// and the pause key drive the lifecycle, which starts and stops the screen.
func runInteractive(a *app, cmd *cobra.Command, r *config.Resolved, opts *runOptions) error {
	// Log lines would corrupt the alternate screen.
	logger := a.logger(io.Discard, r.LogLevel)

	lifecycle := processLifecycle()
	model := terminal.NewModel(lifecycle, r.Palette)

	ctx := cmd.Context()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	so := screenOptions(r, logger)
	style := clockface.DefaultStyle()
	style.ShowDigital = false
	so.Painter = clockface.New(style)
	so.Surface = terminal.NewSurface(p.Send)

	scr := screen.New(so)
	detach := scr.Attach(lifecycle)
	defer func() {
		detach()
		scr.Close()
	}()

	if _, err := p.Run(); err != nil && !(opts.duration > 0 && ctx.Err() != nil) {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

// processLifecycle returns the process-wide lifecycle reset to resumed. An
// earlier run in the same process may have left it paused.
func processLifecycle() *platform.LifecycleService {
	platform.Lifecycle.SetState(platform.LifecycleStateResumed)
	return platform.Lifecycle
}

// runPlain prints the digital readout whenever it changes until interrupted
// or the --for duration elapses.
func runPlain(a *app, cmd *cobra.Command, r *config.Resolved, opts *runOptions, out io.Writer) error {
	logger := a.logger(cmd.ErrOrStderr(), r.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	so := screenOptions(r, logger)
	so.Surface = &lineSurface{w: out}

	scr := screen.New(so)
	scr.Start(ctx)
	<-ctx.Done()
	return scr.Close()
}

// lineSurface writes the digital readout of each frame that shows a new
// time. The screen never calls Present concurrently.
type lineSurface struct {
	w    io.Writer
	last string
}

func (s *lineSurface) Present(frame screen.Frame) error {
	if frame.State.Digital == s.last {
		return nil
	}
	s.last = frame.State.Digital
	_, err := fmt.Fprintln(s.w, frame.State.Digital)
	return err
}
