// Package prometheus renders sessionauth metrics in Prometheus text
// exposition format without depending on a Prometheus client library.
//
// [NewExporter] accepts a [sessionauth.Engine] and exposes an [http.Handler]
// that renders all engine counters and histograms. Counter names are prefixed
// sessionauth_*_total; the single histogram is
// sessionauth_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the
//     Handler.
//   - Mutate engine state.
package prometheus
