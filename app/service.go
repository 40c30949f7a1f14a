// Package app wires the configuration into a running depot service.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/traindepot/config"
	"github.com/kilianp07/traindepot/core/events"
	coremetrics "github.com/kilianp07/traindepot/core/metrics"
	"github.com/kilianp07/traindepot/core/model"
	"github.com/kilianp07/traindepot/core/yard"
	"github.com/kilianp07/traindepot/infra/logger"
	"github.com/kilianp07/traindepot/infra/metrics"
	"github.com/kilianp07/traindepot/infra/mqtt"
	"github.com/kilianp07/traindepot/internal/eventbus"
)

// eventBuffer bounds the events queued between the yard and Run.
const eventBuffer = 1024

// Service owns the yard built from the configured depot and forwards its
// composition events to the metrics sink and the MQTT publisher.
type Service struct {
	Yard *yard.Yard

	plans    []config.TrainPlan
	sink     coremetrics.MetricsSink
	pub      events.Publisher
	bus      *eventbus.Bus[events.Event]
	events   <-chan events.Event
	log      logger.Logger
	promAddr string
}

// PlanResult is the outcome of composing one configured train.
type PlanResult struct {
	Name     string
	Snapshot model.Snapshot
	Err      error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	var pub events.Publisher = events.NopPublisher{}
	if cfg.MQTT.Enabled() {
		p, err := mqtt.NewPublisher(cfg.MQTT, logger.New("mqtt_publisher"))
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = p
	}
	svc, err := newService(cfg, sink, pub)
	if err != nil {
		if c, ok := pub.(interface{ Close() }); ok {
			c.Close()
		}
		return nil, err
	}
	return svc, nil
}

func newService(cfg *config.Config, sink coremetrics.MetricsSink, pub events.Publisher) (*Service, error) {
	d, err := cfg.Depot.Build(model.NewValidator())
	if err != nil {
		return nil, fmt.Errorf("depot: %w", err)
	}
	bus := eventbus.New[events.Event](eventBuffer)
	svc := &Service{
		plans:    cfg.Trains,
		sink:     sink,
		pub:      pub,
		bus:      bus,
		events:   bus.Subscribe(),
		log:      logger.New("service"),
		promAddr: cfg.Metrics.PrometheusAddr,
	}
	svc.Yard = yard.New(d, sink, bus, logger.New("yard"))
	svc.log.Infof("depot loaded with %d engines and %d waggons", len(d.Engines()), len(d.Waggons()))
	return svc, nil
}

// ComposePlans builds every configured train in order. A rejected plan does
// not stop the others; the returned error joins all rejections.
func (s *Service) ComposePlans() ([]PlanResult, error) {
	results := make([]PlanResult, 0, len(s.plans))
	var errs []error
	for _, tp := range s.plans {
		res := PlanResult{Name: tp.Name}
		plan, err := tp.ToPlan()
		if err == nil {
			res.Snapshot, err = s.Yard.Build(plan)
		}
		if err != nil {
			res.Err = err
			errs = append(errs, err)
			s.log.Warnf("train %q rejected: %v", tp.Name, err)
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// Run forwards composition events until the context is cancelled. It also
// serves the Prometheus endpoint when an address is configured.
func (s *Service) Run(ctx context.Context) error {
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	rec, _ := s.sink.(coremetrics.CompositionRecorder)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.events:
			if !ok {
				return nil
			}
			if rec != nil {
				if err := rec.RecordCompositionEvent(ev); err != nil {
					s.log.Errorf("record %s event: %v", ev.Kind, err)
				}
			}
			if err := s.pub.Publish(ev); err != nil {
				s.log.Errorf("publish %s event: %v", ev.Kind, err)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if c, ok := s.pub.(interface{ Close() }); ok {
		c.Close()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if dropped := s.bus.Dropped(); dropped > 0 {
		s.log.Warnf("%d composition events were dropped", dropped)
	}
	return nil
}
