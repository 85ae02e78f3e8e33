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
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var ops, dtypes []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the scenarios of the differential harness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenarios, err := selectScenarios(ops, dtypes)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tOP\tDTYPE\tOUT\tINPUTS\tALIAS")
			for _, sc := range scenarios {
				out := "-"
				if sc.HasOut {
					out = sc.Out.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%t\n", sc.Name, sc.Op, sc.DType, out, sc.Inputs, sc.Alias)
			}
			return tw.Flush()
		},
	}

	addFilterFlags(cmd, &ops, &dtypes)

	return cmd
}
