package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

	authgate "github.com/MrEthical07/authgate"
)

type stubSource struct {
	snapshot authgate.MetricsSnapshot
	dropped  uint64
}

func (s stubSource) MetricsSnapshot() authgate.MetricsSnapshot { return s.snapshot }
func (s stubSource) AuditDropped() uint64                      { return s.dropped }

func testSnapshot() authgate.MetricsSnapshot {
	counters := make([]uint64, 16)
	counters[authgate.MetricLoginSuccess] = 42
	counters[authgate.MetricRefreshFailure] = 3
	return authgate.MetricsSnapshot{Counters: counters}
}

func TestRenderExposition(t *testing.T) {
	e := NewExporterFromSource(stubSource{snapshot: testSnapshot(), dropped: 7})
	out := e.Render()

	for _, want := range []string{
		"# TYPE authgate_login_success_total counter",
		"authgate_login_success_total 42",
		"authgate_refresh_failure_total 3",
		"authgate_register_success_total 0",
		"authgate_audit_dropped_total 7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRenderEmptySnapshot(t *testing.T) {
	e := NewExporterFromSource(stubSource{})
	out := e.Render()

	// Disabled metrics still render a stable zeroed exposition.
	if !strings.Contains(out, "authgate_login_success_total 0") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestHandler(t *testing.T) {
	e := NewExporterFromSource(stubSource{snapshot: testSnapshot()})

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "authgate_login_success_total 42") {
		t.Fatalf("body:\n%s", rec.Body.String())
	}
}

func TestNilExporter(t *testing.T) {
	var e *Exporter
	if e.Render() != "" {
		t.Fatal("nil exporter rendered output")
	}
}
