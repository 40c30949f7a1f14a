package metrics

import (
	"time"

	"github.com/kilianp07/traindepot/core/events"
	"github.com/kilianp07/traindepot/core/model"
)

// TrainSnapshotEvent is the state of a train after a successful mutation.
type TrainSnapshotEvent struct {
	Snapshot model.Snapshot
	Time     time.Time
}

// MetricsSink records train snapshots for observability purposes.
type MetricsSink interface {
	RecordTrainSnapshot(ev TrainSnapshotEvent) error
}

// CompositionRecorder records the composition events emitted by the yard.
type CompositionRecorder interface {
	RecordCompositionEvent(ev events.Event) error
}

// DepotInventory counts the depot vehicles by kind and assignment.
type DepotInventory struct {
	Engines     int
	Waggons     int
	IdleEngines int
	IdleWaggons int
	Time        time.Time
}

// DepotRecorder records depot inventory levels.
type DepotRecorder interface {
	RecordDepotInventory(inv DepotInventory) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordTrainSnapshot(TrainSnapshotEvent) error { return nil }
func (NopSink) RecordCompositionEvent(events.Event) error    { return nil }
func (NopSink) RecordDepotInventory(DepotInventory) error    { return nil }

// MultiSink fans out records to multiple sinks. Optional recorder interfaces
// are only forwarded to the sinks that implement them.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordTrainSnapshot forwards the snapshot to all sinks, returning the first error encountered.
func (m *MultiSink) RecordTrainSnapshot(ev TrainSnapshotEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordTrainSnapshot(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordCompositionEvent forwards composition events.
func (m *MultiSink) RecordCompositionEvent(ev events.Event) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(CompositionRecorder); ok {
			if err := rec.RecordCompositionEvent(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

// RecordDepotInventory forwards depot inventory levels.
func (m *MultiSink) RecordDepotInventory(inv DepotInventory) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DepotRecorder); ok {
			if err := rec.RecordDepotInventory(inv); err != nil {
				return err
			}
		}
	}
	return nil
}
