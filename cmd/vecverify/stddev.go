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
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-fixvec/harness"
	"github.com/ajroetker/go-fixvec/hwy/contrib/fixedpoint"
	"github.com/ajroetker/go-fixvec/reference"
	"github.com/ajroetker/go-fixvec/vector"
)

func newStdDevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stddev",
		Short: "Compute the standard deviation of 512 int16 samples through both layers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := harness.ParseSeedMode(activeCfg.Harness.SeedMode)
			if err != nil {
				return err
			}
			src := harness.NewSource(mode, activeCfg.Harness.Seed)
			samples, err := harness.NewStdDevInput(src)
			if err != nil {
				return err
			}
			defer samples.Release()

			want, err := harness.StdDev(reference.Ops{}, samples)
			if err != nil {
				return fmt.Errorf("reference: %w", err)
			}
			got, err := harness.StdDev(vector.NewOps(fixedpoint.Kernels()), samples)
			if err != nil {
				return fmt.Errorf("dispatch: %w", err)
			}
			slog.Debug("stddev computed", slog.Int64("seed", src.Seed()), slog.Any("reference", want), slog.Any("dispatch", got))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "seed: %d\n\n", src.Seed())
			fmt.Fprintln(tw, "\tMEAN\tENERGY\tVARIANCE\tSTDDEV")
			fmt.Fprintf(tw, "reference\t%d\t%d\t%d\t%d\n", want.Mean, want.Energy, want.Variance, want.StdDev)
			fmt.Fprintf(tw, "dispatch\t%d\t%d\t%d\t%d\n", got.Mean, got.Energy, got.Variance, got.StdDev)
			if err := tw.Flush(); err != nil {
				return err
			}
			if want != got {
				return fmt.Errorf("stddev: dispatch %+v differs from reference %+v", got, want)
			}
			return nil
		},
	}
}
