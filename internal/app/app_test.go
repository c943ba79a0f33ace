package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/logging"
	"github.com/agbru/intcalc/internal/toolkit"
)

// run builds an Application from args and runs it, returning stdout,
// stderr and the exit code.
func run(t *testing.T, args []string, opts ...AppOption) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]AppOption{WithLogger(logging.NewLogger(io.Discard, "test"))}, opts...)
	application, err := New(append([]string{"intcalc", "--no-color"}, args...), &stderr, opts...)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", args, err)
	}
	code := application.Run(context.Background(), &stdout)
	return stdout.String(), stderr.String(), code
}

// twiceFactory extends the catalogue with a family whose variants disagree.
func twiceFactory(t *testing.T) toolkit.OperationFactory {
	t.Helper()
	f := toolkit.NewDefaultFactory()
	for _, op := range []toolkit.Operation{
		toolkit.NewUnary("twice-a", "twice", "doubles n", "n", func(n int32) int32 { return 2 * n }, nil),
		toolkit.NewUnary("twice-b", "twice", "doubles n, off by one", "n", func(n int32) int32 { return 2*n + 1 }, nil),
	} {
		if err := f.Register(op); err != nil {
			t.Fatalf("Register(%s): %v", op.Name(), err)
		}
	}
	return f
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		application, err := New([]string{"intcalc", "5"}, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if application.Factory == nil || application.Logger == nil || application.Recorder == nil {
			t.Error("expected factory, logger and recorder to be set")
		}
		if application.Config.Op != "all" {
			t.Errorf("Op = %q, want all", application.Config.Op)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"intcalc", "--help"}, io.Discard)
		if !IsHelpError(err) {
			t.Errorf("expected a help error, got %v", err)
		}
	})

	t.Run("invalid flag value", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"intcalc", "-op", "nope", "1"}, io.Discard)
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected a ConfigError, got %v", err)
		}
		if IsHelpError(err) {
			t.Error("a config error is not a help error")
		}
	})

	t.Run("custom family is selectable", func(t *testing.T) {
		t.Parallel()
		if _, err := New([]string{"intcalc", "-op", "twice", "1"}, io.Discard, WithFactory(twiceFactory(t))); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestRun_Evaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  []string
	}{
		{"single operation", []string{"-op", "sqrt", "16"}, apperrors.ExitSuccess,
			[]string{"Single evaluation of sqrt", "sqrt(16) = 4", "Global Status: Success"}},
		{"family comparison", []string{"-op", "factorial", "5"}, apperrors.ExitSuccess,
			[]string{"Parallel comparison of 2 operations", "factorial-iterative", "= 120"}},
		{"expected divergence", []string{"-op", "power", "--", "-2", "3"}, apperrors.ExitSuccess,
			[]string{"Expected divergence in family power", "power-recursive(-2, 3) = -8"}},
		{"all unary operations", []string{"7"}, apperrors.ExitSuccess,
			[]string{"is-prime(7) = 1", "next-prime(7) = 7", "(7) = 13"}},
		{"invalid arity", []string{"-op", "sqrt", "1", "2"}, apperrors.ExitErrorConfig, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, _, code := run(t, tt.args)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\noutput:\n%s", code, tt.wantCode, out)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRun_Quiet(t *testing.T) {
	t.Parallel()
	out, _, code := run(t, []string{"-op", "sqrt", "-q", "16"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if out != "4\n" {
		t.Errorf("output = %q, want %q", out, "4\n")
	}
}

func TestRun_NoArguments(t *testing.T) {
	t.Parallel()
	out, errOut, code := run(t, nil)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if out != "" {
		t.Errorf("expected no standard output, got %q", out)
	}
	if !strings.Contains(errOut, "no arguments") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_Mismatch(t *testing.T) {
	t.Parallel()
	out, _, code := run(t, []string{"-op", "twice", "3"}, WithFactory(twiceFactory(t)))
	if code != apperrors.ExitErrorMismatch {
		t.Fatalf("exit code = %d, want %d\n%s", code, apperrors.ExitErrorMismatch, out)
	}
	if !strings.Contains(out, "CRITICAL ERROR") {
		t.Errorf("output missing the mismatch status:\n%s", out)
	}
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	f := toolkit.NewDefaultFactory()
	if err := f.Register(toolkit.NewUnary("block", "block", "waits for the test to finish", "n",
		func(n int32) int32 {
			<-release
			return n
		}, nil)); err != nil {
		t.Fatal(err)
	}

	out, _, code := run(t, []string{"-op", "block", "-timeout", "20ms", "1"}, WithFactory(f))
	if code != apperrors.ExitErrorTimeout {
		t.Fatalf("exit code = %d, want %d\n%s", code, apperrors.ExitErrorTimeout, out)
	}
	if !strings.Contains(out, "Timeout") {
		t.Errorf("output missing the timeout status:\n%s", out)
	}
}

func TestRun_Sweep(t *testing.T) {
	t.Parallel()

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		out, _, code := run(t, []string{"-op", "sqrt", "-sweep-from", "0", "-sweep-to", "4", "-q"})
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if want := "0 0\n1 1\n2 0\n3 0\n4 2\n"; out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("binary operation", func(t *testing.T) {
		t.Parallel()
		out, _, code := run(t, []string{"-op", "power-iterative", "-sweep-from", "-1", "-sweep-to", "2", "--", "3"})
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d\n%s", code, out)
		}
		for _, want := range []string{
			"power-iterative(-1, 3) = 0  [sentinel]",
			"power-iterative(2, 3) = 8",
			"Swept 4 value(s)",
			"2 sentinel result(s)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("family selector", func(t *testing.T) {
		t.Parallel()
		_, errOut, code := run(t, []string{"-op", "power", "-sweep-from", "1", "-sweep-to", "2", "--", "3"})
		if code != apperrors.ExitErrorConfig {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
		}
		if !strings.Contains(errOut, "exactly one operation") {
			t.Errorf("stderr = %q", errOut)
		}
	})

	t.Run("dashboard family selector", func(t *testing.T) {
		t.Parallel()
		out, errOut, code := run(t, []string{"-op", "fibonacci", "-sweep-from", "0", "-sweep-to", "40", "--tui"})
		if code != apperrors.ExitErrorConfig {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
		}
		if out != "" || !strings.Contains(errOut, "exactly one operation") {
			t.Errorf("stdout = %q, stderr = %q", out, errOut)
		}
	})

	t.Run("dashboard needs a sweep", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"intcalc", "-op", "sqrt", "--tui", "16"}, io.Discard)
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("New error = %v, want a ConfigError", err)
		}
	})
}

func TestRun_Metrics(t *testing.T) {
	t.Parallel()
	out, _, code := run(t, []string{"-op", "factorial", "-metrics", "5"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{
		"--- Metrics ---",
		`intcalc_evaluations_total{operation="factorial-iterative"} 1`,
		`intcalc_evaluations_total{operation="factorial-recursive"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "go_goroutines") {
		t.Error("runtime metrics are only printed in verbose mode")
	}
}

func TestRun_List(t *testing.T) {
	t.Parallel()
	out, _, code := run(t, []string{"--list"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	for _, name := range toolkit.NewDefaultFactory().List() {
		if !strings.Contains(out, name) {
			t.Errorf("catalogue missing %q", name)
		}
	}
}

func TestRun_Completion(t *testing.T) {
	t.Parallel()

	out, _, code := run(t, []string{"--completion", "bash"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "next-prime") {
		t.Errorf("bash completion does not offer the operations:\n%s", out)
	}

	_, errOut, code := run(t, []string{"--completion", "tcsh"})
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errOut, "Error generating completion") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_REPL(t *testing.T) {
	t.Parallel()
	in := strings.NewReader("sqrt 16\nexit\n")
	out, _, code := run(t, []string{"--repl"}, WithInput(in))
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "sqrt(16) = 4") {
		t.Errorf("REPL output missing the result:\n%s", out)
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-version"}, true},
		{[]string{"-op", "sqrt", "-V"}, true},
		{[]string{"-op", "sqrt", "16"}, false},
		{[]string{"--", "-V"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "intcalc "+Version) {
		t.Errorf("PrintVersion() = %q", buf.String())
	}
}

func TestRun_DeepRecursionIsRefused(t *testing.T) {
	t.Parallel()

	t.Run("all operations still answer", func(t *testing.T) {
		t.Parallel()
		out, _, code := run(t, []string{"-q", "100000000"})
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d, want %d\n%s", code, apperrors.ExitSuccess, out)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 5 {
			t.Errorf("expected one value per family, got %d lines:\n%s", len(lines), out)
		}
		for _, want := range []string{"10000", "100000007"} {
			if !strings.Contains(out, want+"\n") {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("iterative variant answers alone", func(t *testing.T) {
		t.Parallel()
		out, _, code := run(t, []string{"-op", "power", "1", "2000000000"})
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d, want %d\n%s", code, apperrors.ExitSuccess, out)
		}
		if !strings.Contains(out, "power-iterative(1, 2000000000) = 1") {
			t.Errorf("output missing the iterative result:\n%s", out)
		}
	})

	t.Run("single recursive operation", func(t *testing.T) {
		t.Parallel()
		out, _, code := run(t, []string{"-op", "factorial-recursive", "100000000"})
		if code != apperrors.ExitErrorConfig {
			t.Fatalf("exit code = %d, want %d\n%s", code, apperrors.ExitErrorConfig, out)
		}
		if !strings.Contains(out, "recursion depth 100000000 exceeds the limit of 1000000") {
			t.Errorf("output missing the refusal:\n%s", out)
		}
	})
}
