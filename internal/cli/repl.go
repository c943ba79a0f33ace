package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/agbru/intcalc/internal/config"
	"github.com/agbru/intcalc/internal/orchestration"
	"github.com/agbru/intcalc/internal/toolkit"
	"github.com/agbru/intcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultOp is the initial selector used for bare numbers.
	DefaultOp string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// Details shows extended result information.
	Details bool
	// NoColor disables the catalogue styling.
	NoColor bool
}

// REPL is an interactive evaluation session.
type REPL struct {
	config  REPLConfig
	factory toolkit.OperationFactory
	current string
	opts    []orchestration.ExecuteOption
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - factory: The operations available in the session.
//   - cfg: REPL configuration.
//   - opts: Options forwarded to every evaluation (metrics, tracing, logging).
//
// Returns:
//   - *REPL: A new REPL instance reading stdin and writing stdout.
func NewREPL(factory toolkit.OperationFactory, cfg REPLConfig, opts ...orchestration.ExecuteOption) *REPL {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	current := cfg.DefaultOp
	if current == "" {
		current = config.SelectAll
	}
	return &REPL{
		config:  cfg,
		factory: factory,
		current: current,
		opts:    opts,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until "exit" or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"int> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sInteger Toolkit - Interactive Mode%s         %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <args...>%s   - Evaluate an operation or a family, e.g. power -2 3\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<args...>%s        - Evaluate the current selection\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %suse <op>%s         - Change the current selection\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scompare <args...>%s - Evaluate every operation taking that many arguments\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s             - List available operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdetails%s          - Toggle result details\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// isSelector reports whether name is an operation or a family.
func (r *REPL) isSelector(name string) bool {
	if name == config.SelectAll {
		return true
	}
	if _, err := r.factory.Get(name); err == nil {
		return true
	}
	return slices.Contains(r.factory.Families(), name)
}

// processCommand executes one input line. It returns false to end the
// session.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "use", "u":
		r.cmdUse(args)
	case "compare", "cmp":
		r.evaluate(config.SelectAll, args)
	case "list", "ls":
		DisplayCatalogue(r.out, r.factory.GetAll(), r.config.NoColor)
	case "details":
		r.config.Details = !r.config.Details
		fmt.Fprintf(r.out, "Details: %s%v%s\n", ui.ColorGreen(), r.config.Details, ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		switch {
		case r.isSelector(cmd):
			r.evaluate(cmd, args)
		case isInteger(cmd):
			r.evaluate(r.current, parts)
		default:
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func isInteger(s string) bool {
	_, err := config.ParseInt32(s)
	return err == nil
}

func (r *REPL) cmdUse(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: use <operation|family|all>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	name := strings.ToLower(args[0])
	if !r.isSelector(name) {
		fmt.Fprintf(r.out, "%sUnknown operation: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		return
	}
	r.current = name
	fmt.Fprintf(r.out, "Selection changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Selection: %s%s%s\n", ui.ColorCyan(), r.current, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:   %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Details:   %s%v%s\n", ui.ColorCyan(), r.config.Details, ui.ColorReset())
	fmt.Fprintln(r.out)
}

// evaluate runs selector on the raw arguments and prints the outcome.
func (r *REPL) evaluate(selector string, raw []string) {
	args := make([]int32, 0, len(raw))
	for _, s := range raw {
		v, err := config.ParseInt32(s)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid argument: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		args = append(args, v)
	}

	ops := orchestration.GetOperationsToRun(selector, len(args), r.factory)
	if len(ops) == 0 {
		fmt.Fprintf(r.out, "%sNo operation %q takes %d argument(s).%s\n", ui.ColorRed(), selector, len(args), ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteEvaluations(ctx, ops, args, orchestration.NullProgressReporter{}, io.Discard, r.opts...)

	if len(results) == 1 {
		res := results[0]
		if res.Err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
			return
		}
		DisplayResult(res, r.config.Details, r.out)
		fmt.Fprintln(r.out)
		return
	}

	opts := orchestration.PresentationOptions{Details: r.config.Details}
	orchestration.AnalyzeComparisonResults(results, opts, CLIResultPresenter{}, CLIResultPresenter{}, r.out)
	fmt.Fprintln(r.out)
}
