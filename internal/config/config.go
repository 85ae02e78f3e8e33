// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the settings of the vecverify command from defaults,
// an optional config file, VECVERIFY_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ajroetker/go-fixvec/harness"
)

// EnvPrefix prefixes every environment override, e.g. VECVERIFY_HARNESS_TRIALS.
const EnvPrefix = "VECVERIFY"

type Config struct {
	Harness HarnessConfig `mapstructure:"harness"`
	Log     LogConfig     `mapstructure:"log"`
}

type HarnessConfig struct {
	Trials   int    `mapstructure:"trials"`
	MaxSize  int    `mapstructure:"max_size"`
	Size     int    `mapstructure:"size"`
	Seed     int64  `mapstructure:"seed"`
	SeedMode string `mapstructure:"seed_mode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"trials":     "harness.trials",
	"max-size":   "harness.max_size",
	"size":       "harness.size",
	"seed":       "harness.seed",
	"seed-mode":  "harness.seed_mode",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func DefaultConfig() Config {
	return Config{
		Harness: HarnessConfig{
			Trials:   harness.DefaultTrials,
			MaxSize:  harness.DefaultMaxSize,
			Size:     0,
			Seed:     harness.DefaultSeed,
			SeedMode: harness.SeedFixed.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Int("trials", defaults.Harness.Trials, "Randomized trials per scenario")
	fs.Int("max-size", defaults.Harness.MaxSize, "Largest random vector length")
	fs.Int("size", defaults.Harness.Size, "Fixed vector length (0 draws a random length per trial)")
	fs.Int64("seed", defaults.Harness.Seed, "Seed for --seed-mode=fixed")
	fs.String("seed-mode", defaults.Harness.SeedMode, "Seeding: fixed|clock")
	fs.String("log-level", defaults.Log.Level, "Log level: debug|info|warn|error")
	fs.String("log-format", defaults.Log.Format, "Log format: text|json")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("vecverify")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("harness.trials", c.Harness.Trials)
	v.SetDefault("harness.max_size", c.Harness.MaxSize)
	v.SetDefault("harness.size", c.Harness.Size)
	v.SetDefault("harness.seed", c.Harness.Seed)
	v.SetDefault("harness.seed_mode", c.Harness.SeedMode)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Harness.Trials < 1 {
		errs = append(errs, fmt.Errorf("harness.trials must be at least 1, got %d", c.Harness.Trials))
	}
	if c.Harness.MaxSize < 1 {
		errs = append(errs, fmt.Errorf("harness.max_size must be at least 1, got %d", c.Harness.MaxSize))
	}
	if c.Harness.Size < 0 {
		errs = append(errs, fmt.Errorf("harness.size must not be negative, got %d", c.Harness.Size))
	}
	if _, err := harness.ParseSeedMode(c.Harness.SeedMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (want text|json)", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps a level name to its slog.Level. The empty string is info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
