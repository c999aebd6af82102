package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/experiment"
)

const (
	DefaultField  = "harmonic"
	DefaultMethod = "rk4"
	DefaultH      = 0.1
	DefaultN      = 100
	DefaultFormat = "text"
)

type Config struct {
	Field  string             `yaml:"field"`
	Method string             `yaml:"method"`
	T0     float64            `yaml:"t0"`
	H      float64            `yaml:"h"`
	N      int                `yaml:"n"`
	Y0     []float64          `yaml:"y0,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Output OutputConfig       `yaml:"output"`
}

type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:  DefaultField,
		Method: DefaultMethod,
		H:      DefaultH,
		N:      DefaultN,
		Output: OutputConfig{
			Path:   "-",
			Format: DefaultFormat,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// the base values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so callers can override fields freely.
func (c *Config) Clone() *Config {
	out := *c
	if c.Y0 != nil {
		out.Y0 = append([]float64(nil), c.Y0...)
	}
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// Validate checks the step size and iteration count before any output is
// opened. The order is only known once the field is resolved.
func (c *Config) Validate() error {
	return dynamo.Config{Order: 1, T0: c.T0, H: c.H, N: c.N}.Validate()
}

func (c *Config) Experiment() experiment.Config {
	return experiment.Config{
		Field:  c.Field,
		Method: c.Method,
		T0:     c.T0,
		H:      c.H,
		N:      c.N,
		Y0:     c.Y0,
		Params: c.Params,
	}
}
