package internaldefs

import (
	sessionauth "github.com/seralvz/sessionauth"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   sessionauth.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   sessionauth.MetricID
	Name string
	Help string
}

// CounterDefs enumerates every counter both exporters publish, in a stable
// order.
var CounterDefs = []CounterDef{
	{ID: sessionauth.MetricIssueSuccess, Name: "sessionauth_issue_success_total", Help: "Successful credential issuances."},
	{ID: sessionauth.MetricIssueFailure, Name: "sessionauth_issue_failure_total", Help: "Failed credential issuances."},
	{ID: sessionauth.MetricValidateSuccess, Name: "sessionauth_validate_success_total", Help: "Validations that returned a user snapshot."},
	{ID: sessionauth.MetricValidateRejected, Name: "sessionauth_validate_rejected_total", Help: "Validations that returned invalid."},
	{ID: sessionauth.MetricValidateCacheHit, Name: "sessionauth_validate_cache_hit_total", Help: "Validations served from the token cache."},
	{ID: sessionauth.MetricValidateCacheMiss, Name: "sessionauth_validate_cache_miss_total", Help: "Validations that ran the full verify path."},
	{ID: sessionauth.MetricSessionCreated, Name: "sessionauth_session_created_total", Help: "Sessions registered at issuance."},
	{ID: sessionauth.MetricSessionRevoked, Name: "sessionauth_session_revoked_total", Help: "Single-session revocations."},
	{ID: sessionauth.MetricLogoutAll, Name: "sessionauth_logout_all_total", Help: "Logout-everywhere operations."},
}

// HistogramDefs enumerates every histogram both exporters publish.
var HistogramDefs = []HistogramDef{
	{ID: sessionauth.MetricValidateLatency, Name: "sessionauth_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds are the bucket upper bounds in seconds, as rendered in
// Prometheus le labels.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are metric-name-safe forms of [HistogramBounds] for
// backends without native histogram support.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
