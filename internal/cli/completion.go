package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values, nil for booleans
	ValueName string   // label for the value in zsh
	IsFile    bool     // the flag takes a file path
	IsOp      bool     // values come from the operation selectors
	Section   string   // comment heading in the fish script
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "op", Help: "Operation or family to evaluate", IsOp: true, ValueName: "operation", Section: "Evaluation"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1s", "10s", "1m", "5m"}, ValueName: "duration", Section: "Evaluation"},
	{Long: "sweep-from", Help: "First value of a sweep", ValueName: "int32", Section: "Evaluation"},
	{Long: "sweep-to", Help: "Last value of a sweep", ValueName: "int32", Section: "Evaluation"},
	{Long: "tui", Help: "Show a sweep as a live dashboard", Section: "Evaluation"},
	{Long: "verbose", Short: "v", Help: "Print every evaluation", Section: "Output"},
	{Long: "details", Short: "d", Help: "Show result details", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "metrics", Help: "Print Prometheus metrics after the run", Section: "Output"},
	{Long: "log-level", Help: "Diagnostic log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Output"},
	{Long: "list", Help: "List the available operations", Section: "Modes"},
	{Long: "repl", Help: "Start an interactive session", Section: "Modes"},
	{Long: "config", Help: "YAML defaults file", IsFile: true, ValueName: "file", Section: "Modes"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Modes"},
}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: "bash", "zsh", "fish" or "powershell" ("ps").
//   - selectors: The accepted --op values, without "all".
//
// Returns:
//   - error: An error if the shell is not supported or the write failed.
func GenerateCompletion(out io.Writer, shell string, selectors []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(selectors)
	case "zsh":
		script = zshCompletion(selectors)
	case "fish":
		script = fishCompletion(selectors)
	case "powershell", "ps":
		script = powerShellCompletion(selectors)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func opChoices(selectors []string) []string {
	return append(append([]string(nil), selectors...), "all")
}

func bashCompletion(selectors []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}

		var body string
		switch {
		case f.IsOp:
			body = `COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        --%s|-%s)\n            %s\n            return 0\n            ;;\n", f.Long, f.Long, body)
	}

	return fmt.Sprintf(`# Bash completion script for intcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_intcalc_completions() {
    local cur prev opts operations
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    operations="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _intcalc_completions intcalc
`, strings.Join(opts, " "), strings.Join(opChoices(selectors), " "), cases.String())
}

func zshCompletion(selectors []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef intcalc

# Zsh completion script for intcalc
# Place this file in a directory of your $fpath

_intcalc() {
    local -a operations
    operations=(%s)

    _arguments -s \
%s \
        '*:argument: '
}

_intcalc "$@"
`, strings.Join(opChoices(selectors), " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats a flag as a zsh _arguments spec.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsOp:
		valueSuffix = fmt.Sprintf(":%s:($operations)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func fishCompletion(selectors []string) string {
	lines := []string{
		"# Fish completion script for intcalc",
		"# Add this to ~/.config/fish/completions/intcalc.fish",
		"",
		"complete -c intcalc -f",
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, strings.Join(opChoices(selectors), " ")))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats a flag as a fish complete command.
func fishCompleteLine(f FlagCompletion, ops string) string {
	parts := []string{"complete -c intcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsOp:
		parts = append(parts, fmt.Sprintf("-xa '%s'", ops))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func powerShellCompletion(selectors []string) string {
	var options []string
	var switches []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		options = append(options, fmt.Sprintf("        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))

		values := f.Values
		if f.IsOp {
			values = opChoices(selectors)
		}
		if len(values) == 0 {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = "'" + v + "'"
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for intcalc
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'intcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
