package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	json "github.com/faroedev/go-json"
	"github.com/spf13/cobra"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/theme"
)

func init() {
	RegisterCommand(newStateCommand)
}

type stateOptions struct {
	at     string
	phase  float64
	asJSON bool
}

func newStateCommand(a *app) *cobra.Command {
	opts := &stateOptions{phase: -1}
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the display state for a time of day",
		Long: `Print the digital readout, hand angles and palette that the clock
would draw for a time of day.

The time defaults to now. The second hand angle comes from --phase, the
fraction of the current sweep cycle; without it the second hand sits on the
tick of the current second.`,
		Example: `  clockface state
  clockface state --at 15:30:45 --json
  clockface state --at 09:00 --phase 0.25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(a, cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.at, "at", "", "time of day as HH:MM[:SS] (default now)")
	cmd.Flags().Float64Var(&opts.phase, "phase", -1, "sweep phase in [0, 1)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

func runState(a *app, cmd *cobra.Command, opts *stateOptions) error {
	r, err := a.settings()
	if err != nil {
		return err
	}
	tod, err := timeOfDay(opts.at, time.Now())
	if err != nil {
		return err
	}
	phase, err := sweepPhase(cmd, opts.phase, tod)
	if err != nil {
		return err
	}

	state := clock.DeriveDisplayState(tod, phase, r.Palette)
	if opts.asJSON {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), encodeState(state))
		return err
	}
	return writeState(cmd.OutOrStdout(), state)
}

// timeOfDay parses at, or reads now when at is empty.
func timeOfDay(at string, now time.Time) (clock.TimeOfDay, error) {
	if at == "" {
		return clock.FromTime(now), nil
	}
	return clock.ParseTimeOfDay(at)
}

// sweepPhase returns the --phase flag, or the stepped phase of tod's second
// when the flag was not given.
func sweepPhase(cmd *cobra.Command, phase float64, tod clock.TimeOfDay) (float64, error) {
	if !cmd.Flags().Changed("phase") {
		return clock.SteppedPhase(tod.Second), nil
	}
	if phase < 0 || phase >= 1 {
		return 0, fmt.Errorf("--phase must be in [0, 1) (got %v)", phase)
	}
	return phase, nil
}

func writeState(w io.Writer, state clock.DisplayState) error {
	_, err := fmt.Fprintf(w, `time:     %s
hour:     %s°
minute:   %s°
second:   %s°
`,
		state.Digital,
		formatAngle(state.HourAngle),
		formatAngle(state.MinuteAngle),
		formatAngle(state.SecondAngle),
	)
	return err
}

func encodeState(state clock.DisplayState) string {
	timeBuilder := json.NewObjectBuilder()
	timeBuilder.AddInt32("hour", int32(state.Time.Hour))
	timeBuilder.AddInt32("minute", int32(state.Time.Minute))
	timeBuilder.AddInt32("second", int32(state.Time.Second))

	angleBuilder := json.NewObjectBuilder()
	angleBuilder.AddJSON("hour", formatAngle(state.HourAngle))
	angleBuilder.AddJSON("minute", formatAngle(state.MinuteAngle))
	angleBuilder.AddJSON("second", formatAngle(state.SecondAngle))

	builder := json.NewObjectBuilder()
	builder.AddString("digital", state.Digital)
	builder.AddJSON("time", timeBuilder.Done())
	builder.AddJSON("angles", angleBuilder.Done())
	builder.AddJSON("palette", encodePalette(state.Palette))
	return builder.Done()
}

func encodePalette(p theme.ClockPalette) string {
	builder := json.NewObjectBuilder()
	builder.AddString("background", p.Background.Hex())
	builder.AddString("dial", p.Dial.Hex())
	builder.AddString("ticks", p.Ticks.Hex())
	builder.AddString("hour_hand", p.HourHand.Hex())
	builder.AddString("minute_hand", p.MinuteHand.Hex())
	builder.AddString("second_hand", p.SecondHand.Hex())
	builder.AddString("pivot", p.Pivot.Hex())
	builder.AddString("text", p.Text.Hex())
	return builder.Done()
}

func formatAngle(degrees float64) string {
	return strconv.FormatFloat(degrees, 'f', -1, 64)
}
