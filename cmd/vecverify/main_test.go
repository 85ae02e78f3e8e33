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

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-fixvec/internal/config"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"run", "list", "info", "stddev"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("trials"))
}

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, config.LogConfig{Level: "debug", Format: "json"})
	logger.Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger = setupLogger(&buf, config.LogConfig{Level: "not-a-level", Format: "text"})
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestRunCommandPasses(t *testing.T) {
	stdout, stderr, err := execute(t, "run", "--op", "add", "--op", "dot", "--dtype", "int16", "--trials", "4")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "add/int16/alias")
	assert.Contains(t, stdout, "dot/int16")
	assert.Contains(t, stdout, "3/3 scenarios passed")
	assert.Contains(t, stderr, "differential run finished")
}

func TestRunCommandJSON(t *testing.T) {
	stdout, _, err := execute(t, "run", "--op", "mac", "--trials", "2", "--size", "9", "--format", "json", "--log-level", "error")
	require.NoError(t, err)
	var report struct {
		Seed      int64 `json:"seed"`
		Scenarios []struct {
			Name   string `json:"name"`
			Trials int    `json:"trials"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, int64(42), report.Seed)
	require.Len(t, report.Scenarios, 4)
	assert.Equal(t, 2, report.Scenarios[0].Trials)
}

func TestRunCommandRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"run", "--format", "xml"}, "--format"},
		{"op", []string{"run", "--op", "fma"}, "unknown operations"},
		{"dtype", []string{"run", "--dtype", "int64"}, "int64"},
		{"trials", []string{"run", "--trials", "0"}, "harness.trials"},
		{"seed mode", []string{"list", "--seed-mode", "sometimes"}, "seed mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestListCommand(t *testing.T) {
	stdout, _, err := execute(t, "list", "--op", "mul_widen")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "SCENARIO")
	assert.Contains(t, stdout, "mul_widen/int8")
	assert.Regexp(t, `mul_widen/int16\s+mul_widen\s+int16\s+int32`, stdout)
}

func TestInfoCommand(t *testing.T) {
	stdout, _, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fixedpoint")
	assert.Contains(t, stdout, "16 bytes")
	assert.Contains(t, stdout, "int8=16 int16=8 int32=4 float32=4")
}

func TestStdDevCommand(t *testing.T) {
	stdout, _, err := execute(t, "stddev")
	require.NoError(t, err)
	assert.Contains(t, stdout, "seed: 42")
	assert.Contains(t, stdout, "reference")
	assert.Contains(t, stdout, "dispatch")
}
