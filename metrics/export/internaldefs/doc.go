// Package internaldefs holds the shared metric name/help definitions used by
// the Prometheus and OTel exporters. It exists so the two exporters cannot
// drift apart; it is not a public API.
package internaldefs
