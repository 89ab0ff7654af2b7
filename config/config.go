// Package config loads the pricer's engine defaults and output settings.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment overrides, e.g. DERIVATIVES_MONTE_CARLO_PATHS.
const EnvPrefix = "DERIVATIVES"

// Config is the complete pricer configuration.
type Config struct {
	Log              LogConfig              `mapstructure:"log"`
	MonteCarlo       MonteCarloConfig       `mapstructure:"monte_carlo"`
	FiniteDifference FiniteDifferenceConfig `mapstructure:"finite_difference"`
	Output           OutputConfig           `mapstructure:"output"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MonteCarloConfig holds simulation defaults for every Monte Carlo model.
type MonteCarloConfig struct {
	Paths        int    `mapstructure:"paths"`
	Seed         uint64 `mapstructure:"seed"`
	Workers      int    `mapstructure:"workers"`
	BarrierSteps int    `mapstructure:"barrier_steps"`
}

// FiniteDifferenceConfig holds the default grid.
type FiniteDifferenceConfig struct {
	TimeSteps  int `mapstructure:"time_steps"`
	SpaceSteps int `mapstructure:"space_steps"`
}

// OutputConfig formats printed prices.
type OutputConfig struct {
	Symbol    string `mapstructure:"symbol"`
	Precision int    `mapstructure:"precision"`
}

// Load reads defaults, then the optional file at path, then environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the engine defaults.
func (c *Config) Validate() error {
	if c.MonteCarlo.Paths <= 0 {
		return fmt.Errorf("monte_carlo.paths must be positive: %d", c.MonteCarlo.Paths)
	}
	if c.MonteCarlo.Workers < 0 {
		return fmt.Errorf("monte_carlo.workers must not be negative: %d", c.MonteCarlo.Workers)
	}
	if c.MonteCarlo.BarrierSteps <= 0 {
		return fmt.Errorf("monte_carlo.barrier_steps must be positive: %d", c.MonteCarlo.BarrierSteps)
	}
	if c.FiniteDifference.TimeSteps <= 0 || c.FiniteDifference.SpaceSteps <= 0 {
		return fmt.Errorf("finite_difference grid must be positive: %dx%d",
			c.FiniteDifference.TimeSteps, c.FiniteDifference.SpaceSteps)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision must not be negative: %d", c.Output.Precision)
	}
	return nil
}

// Logger builds the zap logger described by c.
func (c LogConfig) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level %q: %w", c.Level, err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("monte_carlo.paths", 10000)
	v.SetDefault("monte_carlo.seed", 355)
	v.SetDefault("monte_carlo.workers", 1)
	v.SetDefault("monte_carlo.barrier_steps", 200)

	v.SetDefault("finite_difference.time_steps", 200)
	v.SetDefault("finite_difference.space_steps", 200)

	v.SetDefault("output.symbol", "$")
	v.SetDefault("output.precision", 4)
}
