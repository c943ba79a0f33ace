package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewRecorder tests the Recorder constructor.
func TestNewRecorder(t *testing.T) {
	r := NewRecorder()
	if r == nil {
		t.Fatal("NewRecorder returned nil")
	}
	if r.Registry() == nil {
		t.Error("Recorder.registry should be initialized")
	}
}

// TestRecorder_Observe tests the evaluation and sentinel counters.
func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()

	r.Observe("sqrt", true, time.Microsecond)
	r.Observe("sqrt", false, time.Microsecond)
	r.Observe("is-prime", true, time.Millisecond)

	if got := testutil.ToFloat64(r.evaluations.WithLabelValues("sqrt")); got != 2 {
		t.Errorf("sqrt evaluations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.sentinels.WithLabelValues("sqrt")); got != 1 {
		t.Errorf("sqrt sentinels = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.sentinels.WithLabelValues("is-prime")); got != 0 {
		t.Errorf("is-prime sentinels = %v, want 0", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

// TestRecorder_ActiveGauge tests Begin and End.
func TestRecorder_ActiveGauge(t *testing.T) {
	r := NewRecorder()

	r.Begin()
	r.Begin()
	if got := testutil.ToFloat64(r.active); got != 2 {
		t.Errorf("active = %v, want 2", got)
	}
	r.End()
	r.End()
	if got := testutil.ToFloat64(r.active); got != 0 {
		t.Errorf("active = %v, want 0", got)
	}
}

// TestRecorder_WriteText tests the text exposition output.
func TestRecorder_WriteText(t *testing.T) {
	r := NewRecorder()
	r.Observe("fibonacci", true, time.Millisecond)

	t.Run("Own metrics only", func(t *testing.T) {
		var buf bytes.Buffer
		if err := r.WriteText(&buf, false); err != nil {
			t.Fatalf("WriteText error: %v", err)
		}
		body := buf.String()
		if !strings.Contains(body, `intcalc_evaluations_total{operation="fibonacci"} 1`) {
			t.Errorf("output should contain the fibonacci counter, got:\n%s", body)
		}
		if strings.Contains(body, "go_goroutines") {
			t.Error("runtime metrics should be filtered out")
		}
	})

	t.Run("With runtime metrics", func(t *testing.T) {
		var buf bytes.Buffer
		if err := r.WriteText(&buf, true); err != nil {
			t.Fatalf("WriteText error: %v", err)
		}
		if !strings.Contains(buf.String(), "go_goroutines") {
			t.Error("output should contain Go runtime metrics")
		}
	})
}

// TestRecorder_Handler tests the HTTP exposition handler.
func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.Observe("next-prime", true, time.Microsecond)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "intcalc_active_evaluations") {
		t.Error("response should contain intcalc_active_evaluations")
	}
}
