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
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-fixvec/harness"
	"github.com/ajroetker/go-fixvec/hwy/contrib/fixedpoint"
	"github.com/ajroetker/go-fixvec/vector"
)

func newRunCmd() *cobra.Command {
	var (
		ops    []string
		dtypes []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the differential harness over the scenario registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}
			scenarios, err := selectScenarios(ops, dtypes)
			if err != nil {
				return err
			}

			cfg := activeCfg.Harness
			mode, err := harness.ParseSeedMode(cfg.SeedMode)
			if err != nil {
				return err
			}
			logger := slog.Default()
			runner := &harness.Runner{
				Ops:       vector.NewOps(fixedpoint.Kernels(), vector.WithLogger(logger)),
				Logger:    logger,
				Trials:    cfg.Trials,
				MaxSize:   cfg.MaxSize,
				FixedSize: cfg.Size,
				SeedMode:  mode,
				Seed:      cfg.Seed,
			}
			report, err := runner.Run(cmd.Context(), scenarios)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				err = report.WriteJSON(out)
			default:
				err = report.WriteTable(out)
			}
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			return report.Err()
		},
	}

	addFilterFlags(cmd, &ops, &dtypes)
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}

func addFilterFlags(cmd *cobra.Command, ops, dtypes *[]string) {
	cmd.Flags().StringSliceVar(ops, "op", nil, "Only these operations (repeatable)")
	cmd.Flags().StringSliceVar(dtypes, "dtype", nil, "Only these dtypes (repeatable)")
}

// selectScenarios filters the registry, rejecting unknown operation and
// dtype names.
func selectScenarios(ops, dtypeNames []string) ([]harness.Scenario, error) {
	all := harness.Registry()
	if unknown := lo.Without(ops, harness.Ops(all)...); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown operations %v; see 'vecverify list'", unknown)
	}
	dtypes := make([]vector.DType, 0, len(dtypeNames))
	for _, name := range dtypeNames {
		dt, err := vector.ParseDType(name)
		if err != nil {
			return nil, err
		}
		dtypes = append(dtypes, dt)
	}
	selected := harness.Filter(all, ops, dtypes)
	if len(selected) == 0 {
		return nil, errors.New("no scenario matches the --op/--dtype filters")
	}
	return selected, nil
}
