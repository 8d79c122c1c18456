package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ecdrill/weierstrass"
)

// CurveConfig describes one curve y² = x³ + A·x + B over F_P.
type CurveConfig struct {
	Name string `yaml:"name"`
	P    uint64 `yaml:"p"`
	A    int64  `yaml:"a"`
	B    int64  `yaml:"b"`
}

// Config is the on-disk configuration file.
type Config struct {
	Curves []CurveConfig `yaml:"curves"`
}

// defaultConfig holds the two drill curves used when no file is given.
func defaultConfig() *Config {
	return &Config{
		Curves: []CurveConfig{
			{Name: "drill17", P: 17, A: 0, B: 1},
			{Name: "drill211", P: 211, A: 0, B: 4},
		},
	}
}

// LoadConfig reads and validates a YAML curve file. An empty path yields the
// built-in curves.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	return &cfg, nil
}

// Validate checks that names are unique and every curve can be instantiated.
func (c *Config) Validate() error {
	if len(c.Curves) == 0 {
		return errors.New("no curves configured")
	}
	seen := make(map[string]bool, len(c.Curves))
	for _, cc := range c.Curves {
		if cc.Name == "" {
			return errors.New("curve without a name")
		}
		if seen[cc.Name] {
			return errors.Errorf("duplicate curve %q", cc.Name)
		}
		seen[cc.Name] = true
		if _, err := weierstrass.NewCurve(cc.P, cc.A, cc.B); err != nil {
			return errors.Wrapf(err, "curve %q", cc.Name)
		}
	}
	return nil
}

// Curve instantiates the named curve.
func (c *Config) Curve(name string) (*weierstrass.Curve, error) {
	for _, cc := range c.Curves {
		if cc.Name != name {
			continue
		}
		curve, err := weierstrass.NewCurve(cc.P, cc.A, cc.B)
		if err != nil {
			return nil, errors.Wrapf(err, "curve %q", name)
		}
		return curve, nil
	}
	return nil, errors.Errorf("unknown curve %q", name)
}
