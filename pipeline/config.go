package pipeline

import (
	"github.com/ezoic/perfindex/dataset"
	"github.com/ezoic/perfindex/model_selection"
	"github.com/ezoic/perfindex/pkg/errors"
)

// Config controls one training run.
type Config struct {
	DataPath string
	TestSize float64
	Seed     int64
}

// Option configures a Config.
type Option func(*Config)

// WithDataPath sets the CSV path.
func WithDataPath(path string) Option {
	return func(c *Config) { c.DataPath = path }
}

// WithTestSize sets the holdout fraction.
func WithTestSize(size float64) Option {
	return func(c *Config) { c.TestSize = size }
}

// WithSeed sets the split seed.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// NewConfig returns the reference configuration (dataset.DefaultPath, 20%
// holdout, seed 42) with opts applied.
func NewConfig(opts ...Option) Config {
	c := Config{
		DataPath: dataset.DefaultPath,
		TestSize: model_selection.DefaultTestSize,
		Seed:     model_selection.DefaultSeed,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate checks the configuration before any I/O happens.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return errors.NewValidationError("data_path", "must not be empty", c.DataPath)
	}
	if !(c.TestSize > 0 && c.TestSize < 1) {
		return errors.NewValidationError("test_size", "must be in (0, 1)", c.TestSize)
	}
	return nil
}
