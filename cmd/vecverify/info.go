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

	"github.com/ajroetker/go-fixvec/hwy"
	"github.com/ajroetker/go-fixvec/hwy/contrib/fixedpoint"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the dispatch target and lane geometry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "backend:\t%s\n", fixedpoint.Name)
			fmt.Fprintf(tw, "target:\t%s\n", fixedpoint.Target())
			fmt.Fprintf(tw, "dispatch level:\t%s\n", fixedpoint.Dispatch())
			fmt.Fprintf(tw, "lane width:\t%d bytes\n", hwy.CurrentWidth())
			fmt.Fprintf(tw, "lanes:\tint8=%d int16=%d int32=%d float32=%d\n",
				hwy.MaxLanes[int8](), hwy.MaxLanes[int16](), hwy.MaxLanes[int32](), hwy.MaxLanes[float32]())
			fmt.Fprintf(tw, "HWY_NO_SIMD:\t%t\n", hwy.NoSimdEnv())
			return tw.Flush()
		},
	}
}
