package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/intcalc/internal/config"
	"github.com/agbru/intcalc/internal/sysmon"
	"github.com/agbru/intcalc/internal/toolkit"
	"github.com/agbru/intcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.Sweep {
		fmt.Fprintf(out, "Sweeping %s%s%s over [%d, %d] with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), cfg.Op, ui.ColorReset(), cfg.SweepFrom, cfg.SweepTo,
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Evaluating %s%s%s on %s%v%s with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), cfg.Op, ui.ColorReset(),
			ui.ColorCyan(), cfg.Args, ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	}
	host := sysmon.Describe()
	memory := "unknown memory"
	if host.MemTotal > 0 {
		memory = fmt.Sprintf("%s%.1f GiB%s memory (%.0f%% used)", ui.ColorCyan(), float64(host.MemTotal)/(1<<30), ui.ColorReset(), host.MemPercent)
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s, Go %s%s%s.\n",
		ui.ColorCyan(), host.LogicalCPUs, ui.ColorReset(), memory, ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays whether a single operation runs or several
// are compared.
//
// Parameters:
//   - ops: The operations that will be evaluated. Must not be empty.
//   - out: The writer for standard output.
func PrintExecutionMode(ops []toolkit.Operation, out io.Writer) {
	var modeDesc string
	if len(ops) > 1 {
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = op.Name()
		}
		modeDesc = fmt.Sprintf("Parallel comparison of %d operations (%s)", len(ops), strings.Join(names, ", "))
	} else {
		modeDesc = fmt.Sprintf("Single evaluation of %s%s%s", ui.ColorGreen(), ops[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
