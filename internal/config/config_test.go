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

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

func newFlagBinder(t *testing.T, defaults Config, args ...string) *fakeBinder {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return &fakeBinder{fs: fs}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Harness.Trials != 64 {
		t.Errorf("Harness.Trials = %d; want 64", cfg.Harness.Trials)
	}
	if cfg.Harness.MaxSize != 256 {
		t.Errorf("Harness.MaxSize = %d; want 256", cfg.Harness.MaxSize)
	}
	if cfg.Harness.Seed != 42 {
		t.Errorf("Harness.Seed = %d; want 42", cfg.Harness.Seed)
	}
	if cfg.Harness.SeedMode != "fixed" {
		t.Errorf("Harness.SeedMode = %q; want %q", cfg.Harness.SeedMode, "fixed")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q; want %q", cfg.Log.Level, "info")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v; want nil", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())

	checks := []struct {
		flag string
		want string
	}{
		{"trials", "64"},
		{"max-size", "256"},
		{"size", "0"},
		{"seed", "42"},
		{"seed-mode", "fixed"},
		{"log-level", "info"},
		{"log-format", "text"},
	}
	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}
		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}
	for name := range flagKeys {
		if fs.Lookup(name) == nil {
			t.Errorf("flagKeys names unregistered flag %q", name)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(t, defaults), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != defaults {
		t.Errorf("Load() = %+v; want %+v", cfg, defaults)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	binder := newFlagBinder(t, defaults, "--trials=8", "--seed-mode=clock", "--log-level=debug", "--size=33")

	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Harness.Trials != 8 {
		t.Errorf("Harness.Trials = %d; want 8", cfg.Harness.Trials)
	}
	if cfg.Harness.Size != 33 {
		t.Errorf("Harness.Size = %d; want 33", cfg.Harness.Size)
	}
	if cfg.Harness.SeedMode != "clock" {
		t.Errorf("Harness.SeedMode = %q; want %q", cfg.Harness.SeedMode, "clock")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q; want %q", cfg.Log.Level, "debug")
	}
	if cfg.Harness.MaxSize != defaults.Harness.MaxSize {
		t.Errorf("Harness.MaxSize = %d; want %d", cfg.Harness.MaxSize, defaults.Harness.MaxSize)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VECVERIFY_HARNESS_TRIALS", "5")
	t.Setenv("VECVERIFY_LOG_FORMAT", "json")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Harness.Trials != 5 {
		t.Errorf("Harness.Trials = %d; want 5", cfg.Harness.Trials)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q; want %q", cfg.Log.Format, "json")
	}
	if cfg.Harness.Seed != 42 {
		t.Errorf("Harness.Seed = %d; want 42", cfg.Harness.Seed)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, "vecverify.yaml", `
harness:
  trials: 7
  max_size: 100
log:
  level: warn
`)
	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(t, defaults), ConfigFile: path, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Harness.Trials != 7 {
		t.Errorf("Harness.Trials = %d; want 7", cfg.Harness.Trials)
	}
	if cfg.Harness.MaxSize != 100 {
		t.Errorf("Harness.MaxSize = %d; want 100", cfg.Harness.MaxSize)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q; want %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_FlagBeatsConfigFile(t *testing.T) {
	path := writeConfig(t, "vecverify.yaml", "harness:\n  trials: 7\n")
	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Cmd:        newFlagBinder(t, defaults, "--trials=3"),
		ConfigFile: path,
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Harness.Trials != 3 {
		t.Errorf("Harness.Trials = %d; want 3", cfg.Harness.Trials)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	path := writeConfig(t, "bad.yaml", ":\t:bad yaml:::")

	if _, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()}); err == nil {
		t.Error("Load() = nil; want error for invalid config file")
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: "/nonexistent/path/vecverify.yaml",
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero trials", func(c *Config) { c.Harness.Trials = 0 }, "harness.trials"},
		{"zero max size", func(c *Config) { c.Harness.MaxSize = 0 }, "harness.max_size"},
		{"negative size", func(c *Config) { c.Harness.Size = -1 }, "harness.size"},
		{"bad seed mode", func(c *Config) { c.Harness.SeedMode = "random" }, "seed mode"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil; want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q; want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
