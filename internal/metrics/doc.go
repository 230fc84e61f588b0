// Package metrics records validation outcomes.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// check for nil. PrometheusRecorder registers counters and gauges on a
// registry that can be written as a node_exporter textfile after a run,
// which suits CI jobs that validate navigation without serving HTTP.
package metrics
