package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/orchestration"
)

func TestCLIResultPresenter_ComparisonTable(t *testing.T) {
	t.Parallel()
	results := []orchestration.EvaluationResult{
		{Name: "power-recursive", Family: "power", Args: []int32{-2, 3}, Value: -8, Valid: true, Duration: 3 * time.Microsecond},
		{Name: "power-iterative", Family: "power", Args: []int32{-2, 3}, Value: 0, Valid: false},
		{Name: "slow", Family: "x", Err: apperrors.TimeoutError{Operation: "slow", Limit: time.Second}},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Operation", "Duration", "Value", "Status",
		"power-recursive", "3µs", "-8", "Success", "< 1µs", "Sentinel", "Failure", "timed out"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q, got:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := lines[1]
	row := lines[2]
	if strings.Index(header, "Duration") != strings.Index(row, "3µs") {
		t.Errorf("columns are not aligned:\n%s\n%s", header, row)
	}
}

func TestCLIResultPresenter_Divergence(t *testing.T) {
	t.Parallel()
	results := []orchestration.EvaluationResult{
		{Name: "power-iterative", Family: "power", Args: []int32{-2, 3}, Value: 0, Valid: false},
		{Name: "power-recursive", Family: "power", Args: []int32{-2, 3}, Value: -8, Valid: true},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentDivergence("power", results, &buf)
	out := buf.String()
	for _, want := range []string{"Expected divergence in family power", "power-iterative(-2, 3) = 0  [sentinel]", "power-recursive(-2, 3) = -8  [valid]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestCLIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"timeout", apperrors.TimeoutError{Operation: "x", Limit: time.Second}, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"arity", apperrors.ValidationError{Field: "sqrt", Message: "bad"}, apperrors.ExitErrorConfig},
		{"other", errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if got := (CLIResultPresenter{}).HandleError(tt.err, 0, &buf); got != tt.want {
				t.Errorf("HandleError = %d, want %d", got, tt.want)
			}
			if buf.Len() == 0 {
				t.Error("HandleError should print a status")
			}
		})
	}
}

func TestQuietResultPresenter(t *testing.T) {
	t.Parallel()
	var out, errOut bytes.Buffer
	q := QuietResultPresenter{ErrWriter: &errOut}

	q.PresentComparisonTable([]orchestration.EvaluationResult{{Name: "sqrt"}}, &out)
	q.PresentResult(orchestration.EvaluationResult{Name: "sqrt", Value: 4}, orchestration.PresentationOptions{Details: true}, &out)
	q.PresentDivergence("power", []orchestration.EvaluationResult{
		{Name: "power-iterative", Value: 0},
		{Name: "power-recursive", Value: -8},
	}, &out)

	if got, want := out.String(), "4\npower-iterative 0\npower-recursive -8\n"; got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}

	if code := q.HandleError(context.DeadlineExceeded, 0, &out); code != apperrors.ExitErrorTimeout {
		t.Errorf("HandleError = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if !strings.Contains(errOut.String(), "Timeout") {
		t.Errorf("error status should go to ErrWriter, got %q", errOut.String())
	}
	if strings.Contains(errOut.String(), "\x1b[") {
		t.Error("quiet error output should not contain ANSI codes")
	}
}

func TestCLIColorProvider(t *testing.T) {
	t.Parallel()
	var _ apperrors.ColorProvider = CLIColorProvider{}
	c := CLIColorProvider{}
	if c.Red() != "" || c.Yellow() != "" || c.Reset() != "" {
		t.Error("colors should be empty with the no-color theme")
	}
}
