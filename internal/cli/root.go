// Package cli implements the larder command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/larder/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

var validFormats = []string{formatText, formatJSON}

// rootOptions holds global flag values and the settings resolved from them
// before any subcommand runs.
type rootOptions struct {
	configDir string
	logLevel  string
	format    string

	resolvedDir string
	config      *viper.Viper
	logger      *slog.Logger
}

// NewRootCmd creates the top-level "larder" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "larder",
		Short: "An in-memory entity/component store",
		Long: "Larder stores named components on implicit entities, answers\n" +
			"intersection queries and removes entities by mark and sweep.\n" +
			"The CLI drives a world from a YAML scenario script.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaultLogLevel, "log level (debug|info|warn|error)")
	root.PersistentFlags().StringVar(&opts.format, "format", defaultFormat, "output format (text|json)")

	root.AddCommand(newVersionCmd(opts))
	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newRunCmd(opts))

	return root
}

// resolve loads the config file, applies flag overrides and installs the
// logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(o.configDir)
	if err != nil {
		return withCode(exitSysError, fmt.Errorf("resolve config directory: %w", err))
	}
	o.resolvedDir = dir

	v, err := loadConfig(dir, cmd.Flags())
	if err != nil {
		return withCode(exitUserError, err)
	}
	o.config = v

	format := v.GetString(cfgKeyFormat)
	if !slices.Contains(validFormats, format) {
		return withCode(exitUserError, fmt.Errorf("invalid format %q: must be one of %v", format, validFormats))
	}

	logger, err := newLogger(cmd.ErrOrStderr(), v.GetString(cfgKeyLogLevel))
	if err != nil {
		return withCode(exitUserError, err)
	}
	o.logger = logger
	slog.SetDefault(logger)
	return nil
}

// outputFormat returns the format resolved from flag and config.
func (o *rootOptions) outputFormat() string {
	if o.config == nil {
		return o.format
	}
	return o.config.GetString(cfgKeyFormat)
}

// newLogger builds a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// codedError carries the process exit code for an error.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &codedError{code: code, err: err}
}

// exitCode extracts the exit code from err. Errors without one are user
// errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return exitUserError
}
