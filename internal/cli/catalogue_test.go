package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/intcalc/internal/toolkit"
)

func TestDisplayCatalogue(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ops := toolkit.NewDefaultFactory().GetAll()

	DisplayCatalogue(&buf, ops, true)
	out := buf.String()

	for _, want := range []string{"OPERATION", "FAMILY", "ARGUMENTS", "DESCRIPTION", "base, exponent", "-op power"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalogue should contain %q, got:\n%s", want, out)
		}
	}
	for _, op := range ops {
		if !strings.Contains(out, op.Name()) {
			t.Errorf("catalogue is missing %s", op.Name())
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("a buffer should not receive ANSI codes")
	}
}
