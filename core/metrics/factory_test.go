package metrics_test

import (
	"testing"

	"github.com/kilianp07/traindepot/core/factory"
	metrics "github.com/kilianp07/traindepot/core/metrics"
)

/*
TestMetricsFactory_Builtins verifies the builtin registration.

	Cases:
	- instantiate builtin nop sink
	- unknown type returns error
*/
func TestMetricsFactory_Builtins(t *testing.T) {
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("create nop: %v", err)
	}
	if s == nil {
		t.Fatal("expected sink instance")
	}
	if _, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "missing"}}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestNewMetricsSink_Multi(t *testing.T) {
	s, err := metrics.NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("create nop default: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}

	cfgs := []factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}}
	s, err = metrics.NewMetricsSink(cfgs)
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	m, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if len(m.Sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(m.Sinks))
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (metrics.Config{Sinks: []factory.ModuleConfig{{Type: "nop"}}}).Validate(); err != nil {
		t.Fatalf("nop sink rejected: %v", err)
	}
	if err := (metrics.Config{Sinks: []factory.ModuleConfig{{Type: "statsd"}}}).Validate(); err == nil {
		t.Fatal("expected unknown sink type error")
	}
	if err := (metrics.Config{Sinks: []factory.ModuleConfig{{}}}).Validate(); err == nil {
		t.Fatal("expected missing type error")
	}
}
