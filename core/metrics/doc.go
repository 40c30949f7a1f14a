// Package metrics defines the recorder interfaces for train and depot
// observability. Sinks such as PromSink and InfluxSink (infra/metrics) record
// train snapshots, composition events and depot inventory, and can be combined
// with NewMultiSink. NewMetricsSink builds the configured sinks through the
// factory registry and returns a MultiSink automatically when more than one
// sink is configured.
package metrics
