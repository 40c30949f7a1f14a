package metrics

import (
	"fmt"

	"github.com/kilianp07/traindepot/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr is the listen address of the /metrics endpoint. Empty
	// disables the HTTP server.
	PrometheusAddr string `json:"prometheus_addr"`
}

// Validate checks that every configured sink type is registered.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
		if !sinkRegistry.Has(s.Type) {
			return fmt.Errorf("metrics sink %d: unknown type %s (known: %v)", i, s.Type, sinkRegistry.Types())
		}
	}
	return nil
}
