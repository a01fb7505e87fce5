// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/emberlord/pkg/engine"
	"laptudirm.com/x/emberlord/pkg/perft"
)

const SPIN = 31

// emberlord perft
func Perft() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perft depth",
		Short: "Count the action sequences of a position",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`perft counts the sequences of legal actions of the given
			length from a position, the standard opening by default.
			Each capture of a chain and each burn is one action. The
			counts are a consistency check of the move generator.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := strconv.Atoi(args[0])
			if err != nil || depth < 0 {
				return fmt.Errorf("perft: bad depth %q", args[0])
			}

			pos, _ := cmd.Flags().GetString("position")
			workers, _ := cmd.Flags().GetInt("workers")
			divide, _ := cmd.Flags().GetBool("divide")

			game, err := engine.ParsePosition(pos, engine.DefaultRules())
			if err != nil {
				return err
			}

			s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)
			s.Writer = cmd.ErrOrStderr()
			s.Suffix = fmt.Sprintf(" counting to depth %d", depth)

			start := time.Now()
			s.Start() // Start the ~working~ spinner.
			nodes, divides, err := perft.Run(cmd.Context(), game, depth, workers)
			s.Stop() // Stop the ~working~ spinner.
			elapsed := time.Since(start)

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if divide {
				for _, d := range divides {
					fmt.Fprintf(out, "%-8s %d\n", d.Action, d.Nodes)
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintf(out, "nodes %d\n", nodes)
			logrus.WithFields(logrus.Fields{
				"depth": depth, "time": elapsed,
				"nps": int64(float64(nodes) / elapsed.Seconds()),
			}).Info("perft: done")
			return nil
		},
	}

	cmd.Flags().String("position", engine.StartPosition, "Position to count from")
	cmd.Flags().IntP("workers", "w", 0, "Number of workers, one per CPU if zero")
	cmd.Flags().BoolP("divide", "d", false, "Print the count of every root action")
	return cmd
}
