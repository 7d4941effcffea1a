package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sessionauth "github.com/seralvz/sessionauth"
)

type stubSource struct {
	snap sessionauth.MetricsSnapshot
}

func (s *stubSource) MetricsSnapshot() sessionauth.MetricsSnapshot {
	return s.snap
}

func populatedSource() *stubSource {
	m := sessionauth.NewMetrics(sessionauth.MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(sessionauth.MetricIssueSuccess)
	m.Inc(sessionauth.MetricValidateSuccess)
	m.Inc(sessionauth.MetricValidateSuccess)
	m.Observe(sessionauth.MetricValidateLatency, 2*time.Millisecond)
	m.Observe(sessionauth.MetricValidateLatency, 2*time.Second)

	return &stubSource{snap: m.Snapshot()}
}

func TestRenderCounters(t *testing.T) {
	out := NewExporterFromSource(populatedSource()).Render()

	for _, want := range []string{
		"# TYPE sessionauth_issue_success_total counter",
		"sessionauth_issue_success_total 1",
		"sessionauth_validate_success_total 2",
		"sessionauth_validate_rejected_total 0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderHistogramCumulative(t *testing.T) {
	out := NewExporterFromSource(populatedSource()).Render()

	for _, want := range []string{
		"# TYPE sessionauth_validate_latency_seconds histogram",
		`sessionauth_validate_latency_seconds_bucket{le="0.005"} 1`,
		`sessionauth_validate_latency_seconds_bucket{le="0.5"} 1`,
		`sessionauth_validate_latency_seconds_bucket{le="+Inf"} 2`,
		"sessionauth_validate_latency_seconds_count 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderEmptySnapshot(t *testing.T) {
	src := &stubSource{snap: sessionauth.MetricsSnapshot{
		Counters:   map[sessionauth.MetricID]uint64{},
		Histograms: map[sessionauth.MetricID][]uint64{},
	}}
	if out := NewExporterFromSource(src).Render(); out != "" {
		t.Fatalf("expected empty output, got:\n%s", out)
	}

	var nilExporter *Exporter
	if out := nilExporter.Render(); out != "" {
		t.Fatalf("nil exporter output: %q", out)
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)

	NewExporterFromSource(populatedSource()).Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("content type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "sessionauth_issue_success_total 1") {
		t.Fatalf("body missing counter:\n%s", rec.Body.String())
	}
}
