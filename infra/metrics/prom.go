package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/traindepot/core/events"
	coremetrics "github.com/kilianp07/traindepot/core/metrics"
)

// PromSink exposes train snapshots, composition events and depot inventory
// as Prometheus metrics.
type PromSink struct {
	passengers        *prometheus.GaugeVec
	freight           *prometheus.GaugeVec
	passengerCapacity *prometheus.GaugeVec
	freightCapacity   *prometheus.GaugeVec
	overallWeight     *prometheus.GaugeVec
	weightToMove      *prometheus.GaugeVec
	traction          *prometheus.GaugeVec
	length            *prometheus.GaugeVec
	conductors        *prometheus.GaugeVec
	canRun            *prometheus.GaugeVec
	events            *prometheus.CounterVec
	depot             *prometheus.GaugeVec
}

// NewPromSink registers the train metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gauge := func(name, help string) (*prometheus.GaugeVec, error) {
		return register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, []string{"train"}))
	}
	s := &PromSink{}
	for _, g := range []struct {
		dst        **prometheus.GaugeVec
		name, help string
	}{
		{&s.passengers, "train_passengers", "Passengers on board"},
		{&s.freight, "train_freight_kg", "Freight loaded in kg"},
		{&s.passengerCapacity, "train_passenger_capacity", "Seats over all vehicles"},
		{&s.freightCapacity, "train_freight_capacity_kg", "Freight capacity over all vehicles in kg"},
		{&s.overallWeight, "train_overall_weight_kg", "Empty weight plus the weight at full capacity in kg"},
		{&s.weightToMove, "train_weight_to_move_kg", "Weight the engines have to pull in kg"},
		{&s.traction, "train_traction", "Summed traction of all engines"},
		{&s.length, "train_length_m", "Train length in meters"},
		{&s.conductors, "train_conductors", "Conductors needed for the passengers on board"},
		{&s.canRun, "train_can_run", "1 when the engines can move the fully loaded train"},
	} {
		vec, err := gauge(g.name, g.help)
		if err != nil {
			return nil, err
		}
		*g.dst = vec
	}
	var err error
	s.events, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "train_composition_events_total",
		Help: "Total number of successful train mutations",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}
	s.depot, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "depot_vehicles",
		Help: "Depot vehicles by kind and assignment",
	}, []string{"kind", "state"}))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// register reuses an existing collector when one is already registered
// under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordTrainSnapshot sets the train gauges.
func (s *PromSink) RecordTrainSnapshot(ev coremetrics.TrainSnapshotEvent) error {
	snap := ev.Snapshot
	name := snap.Name
	s.passengers.WithLabelValues(name).Set(float64(snap.Passengers))
	s.freight.WithLabelValues(name).Set(float64(snap.FreightWeight))
	s.passengerCapacity.WithLabelValues(name).Set(float64(snap.PassengerCapacity))
	s.freightCapacity.WithLabelValues(name).Set(float64(snap.FreightCapacity))
	s.overallWeight.WithLabelValues(name).Set(float64(snap.OverallWeight))
	s.weightToMove.WithLabelValues(name).Set(float64(snap.WeightToMove))
	s.traction.WithLabelValues(name).Set(float64(snap.Traction))
	s.length.WithLabelValues(name).Set(float64(snap.Length))
	s.conductors.WithLabelValues(name).Set(float64(snap.Conductors))
	canRun := 0.0
	if snap.CanRun {
		canRun = 1
	}
	s.canRun.WithLabelValues(name).Set(canRun)
	return nil
}

// RecordCompositionEvent increments the event counter.
func (s *PromSink) RecordCompositionEvent(ev events.Event) error {
	s.events.WithLabelValues(string(ev.Kind)).Inc()
	return nil
}

// RecordDepotInventory sets the depot gauges.
func (s *PromSink) RecordDepotInventory(inv coremetrics.DepotInventory) error {
	s.depot.WithLabelValues("engine", "idle").Set(float64(inv.IdleEngines))
	s.depot.WithLabelValues("engine", "assigned").Set(float64(inv.Engines - inv.IdleEngines))
	s.depot.WithLabelValues("waggon", "idle").Set(float64(inv.IdleWaggons))
	s.depot.WithLabelValues("waggon", "assigned").Set(float64(inv.Waggons - inv.IdleWaggons))
	return nil
}
