// Package cmd implements the clockface CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, snapshot, state, version). Each
// subcommand registers itself from an init function.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// app holds the global flags shared by every command.
type app struct {
	configPath string
	logLevel   string
	theme      string
}

// commands holds the registered subcommand constructors.
var commands []func(*app) *cobra.Command

// RegisterCommand adds a subcommand constructor to the CLI.
func RegisterCommand(newCommand func(*app) *cobra.Command) {
	commands = append(commands, newCommand)
}

// NewRootCommand builds the command tree with fresh flag state.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "clockface",
		Short: "clockface - an analog and digital clock",
		Long: `clockface shows the current time as a digital HH:mm:ss readout and an
analog face whose second hand sweeps continuously.

Settings are read from clockface.yaml in the working directory when present.
Use "clockface <command> --help" for more information about a command.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.FileName, "path to the config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	flags.StringVar(&a.theme, "theme", "", "color theme: light or dark (overrides config)")

	for _, newCommand := range commands {
		root.AddCommand(newCommand(a))
	}
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// settings loads the config file and applies flag overrides.
func (a *app) settings() (*config.Resolved, error) {
	return config.Resolve(a.configPath, a.overrides)
}

// overrides applies the global flags that shadow config values.
func (a *app) overrides(cfg *config.Config) {
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
}

// logger returns a logger writing to w at the configured level and routes
// reported clock errors through it.
func (a *app) logger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "clockface",
		ReportTimestamp: true,
	})
	errors.SetHandler(errors.NewLogHandler(logger))
	return logger
}
