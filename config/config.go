package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/traindepot/core/metrics"
	"github.com/kilianp07/traindepot/infra/mqtt"
)

// EnvPrefix prefixes environment variables that override file values.
const EnvPrefix = "TRAINDEPOT_"

type Config struct {
	Depot   DepotConfig    `json:"depot"`
	Trains  []TrainPlan    `json:"trains"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
}

// Load reads the configuration document at path. TRAINDEPOT_MQTT__BROKER
// overrides mqtt.broker.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section with its defaults.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks every section. Metric sink types are checked by the
// service once the sink implementations are registered.
func (c Config) Validate() error {
	if err := c.Depot.Validate(); err != nil {
		return fmt.Errorf("depot: %w", err)
	}
	names := make(map[string]bool, len(c.Trains))
	for i, p := range c.Trains {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("trains[%d]: %w", i, err)
		}
		if names[p.Name] {
			return fmt.Errorf("trains[%d]: duplicate train name %q", i, p.Name)
		}
		names[p.Name] = true
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}
