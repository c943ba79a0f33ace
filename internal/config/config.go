// Package config parses the command line, INTCALC_* environment variables
// and an optional YAML defaults file into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/logging"
)

const (
	// EnvPrefix prefixes every environment variable read by the application.
	EnvPrefix = "INTCALC_"
	// SelectAll selects every operation whose arity matches the arguments.
	SelectAll = "all"
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = time.Minute
	// MaxSweepSpan is the largest number of values a sweep may evaluate.
	MaxSweepSpan = 1_000_000
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op is an operation name, a family name, or SelectAll.
	Op string
	// Args are the integer arguments passed to the operation(s).
	Args []int32
	// Timeout is the maximum duration of the run.
	Timeout time.Duration
	// Verbose prints every evaluation, not only the comparison summary.
	Verbose bool
	// Details adds argument validity and formatting details to results.
	Details bool
	// Quiet prints bare values for scripting.
	Quiet bool
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is the zerolog level name for diagnostics on stderr.
	LogLevel string
	// List prints the operation catalogue and exits.
	List bool
	// REPL starts the interactive session.
	REPL bool
	// Metrics prints the Prometheus text exposition after the run.
	Metrics bool
	// ConfigFile is the path of the YAML defaults file.
	ConfigFile string
	// Completion names a shell to generate a completion script for.
	Completion string
	// Sweep evaluates the first argument over [SweepFrom, SweepTo].
	Sweep     bool
	SweepFrom int32
	SweepTo   int32
	// TUI shows a sweep as a live dashboard instead of printing every value.
	TUI bool
}

// int32Value is a flag.Value for int32 flags.
type int32Value struct {
	p   *int32
	set *bool
}

func (v int32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatInt(int64(*v.p), 10)
}

func (v int32Value) Set(s string) error {
	n, err := ParseInt32(s)
	if err != nil {
		return err
	}
	*v.p = n
	*v.set = true
	return nil
}

// ParseInt32 parses a base-10 32-bit signed integer.
func ParseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q is outside the int32 range [%d, %d]", s, math.MinInt32, math.MaxInt32)
		}
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int32(n), nil
}

// ParseConfig parses arguments into an AppConfig and validates it.
//
// Priority is: command-line flags > INTCALC_* environment variables > YAML
// defaults file > built-in defaults.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Where usage and parse errors are written.
//   - choices: Accepted values for --op besides SelectAll.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h/--help, otherwise a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, choices []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	config := AppConfig{}

	fs.StringVar(&config.Op, "op", SelectAll, "Operation or family to evaluate ("+strings.Join(append([]string{SelectAll}, choices...), ", ")+").")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verbose, "v", false, "Print every evaluation.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print every evaluation (alias for -v).")
	fs.BoolVar(&config.Details, "d", false, "Show result details.")
	fs.BoolVar(&config.Details, "details", false, "Show result details (alias for -d).")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: print bare values only.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode (alias for -q).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", "warn", "Diagnostic log level (debug, info, warn, error).")
	fs.BoolVar(&config.List, "list", false, "List the available operations and exit.")
	fs.BoolVar(&config.REPL, "repl", false, "Start an interactive session.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print Prometheus metrics after the run.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML file with default settings.")
	fs.StringVar(&config.Completion, "completion", "", "Generate a completion script (bash, zsh, fish, powershell).")
	var fromSet, toSet bool
	fs.Var(int32Value{p: &config.SweepFrom, set: &fromSet}, "sweep-from", "First value of the first argument in sweep mode.")
	fs.Var(int32Value{p: &config.SweepTo, set: &toSet}, "sweep-to", "Last value of the first argument in sweep mode.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the sweep as an interactive dashboard.")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [--] <args...>\n\n", programName)
		fmt.Fprintf(errorWriter, "Evaluates integer toolkit operations on 32-bit arguments.\n")
		fmt.Fprintf(errorWriter, "Put -- before negative arguments, e.g. %s -op power -- -2 3\n\n", programName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	for i, raw := range fs.Args() {
		v, err := ParseInt32(raw)
		if err != nil {
			return AppConfig{}, apperrors.NewConfigError("argument %d: %v", i+1, err)
		}
		config.Args = append(config.Args, v)
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", "")
	}
	if config.ConfigFile != "" {
		fileCfg, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
		fileCfg.apply(&config, fs)
	}
	applyEnvOverrides(&config, fs)

	config.Sweep = fromSet || toSet
	if config.Sweep && !(fromSet && toSet) {
		return AppConfig{}, apperrors.NewConfigError("--sweep-from and --sweep-to must be given together")
	}

	if err := config.Validate(choices); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(choices []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Op != SelectAll && !slices.Contains(choices, c.Op) {
		return apperrors.NewConfigError("unrecognized operation %q, valid choices are: %s, %s",
			c.Op, SelectAll, strings.Join(choices, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Sweep {
		if c.Op == SelectAll {
			return apperrors.NewConfigError("sweep mode needs an explicit --op")
		}
		if c.SweepFrom > c.SweepTo {
			return apperrors.NewConfigError("--sweep-from (%d) is greater than --sweep-to (%d)", c.SweepFrom, c.SweepTo)
		}
		if span := int64(c.SweepTo) - int64(c.SweepFrom) + 1; span > MaxSweepSpan {
			return apperrors.NewConfigError("sweep covers %d values, the limit is %d", span, MaxSweepSpan)
		}
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.TUI {
		if !c.Sweep {
			return apperrors.NewConfigError("--tui needs --sweep-from and --sweep-to")
		}
		if c.Quiet {
			return apperrors.NewConfigError("--tui and --quiet are mutually exclusive")
		}
	}
	return nil
}
