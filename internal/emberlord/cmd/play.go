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
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/emberlord/pkg/match"
)

// emberlord play
func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game at the terminal",
		Args:  cobra.ExactArgs(0),
		Long: heredoc.Doc(`play starts a game between two players sharing the terminal.
			Moves are written as two squares, like c3-d4 or c3xe5, and
			a charged king burns a column with burn followed by the
			column's letter, like burn e. Type help for the other
			commands.

			If a turn time is configured, a side which runs out of time
			loses a random piece and the move passes to the opponent.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			session, err := newSession(cmd, config, true)
			if err != nil {
				return err
			}

			logrus.WithField("session", session.ID()).Debug("play: session created")
			return play(session, cmd.InOrStdin(), cmd.OutOrStdout(), config.Color, time.Second)
		},
	}

	gameFlags(cmd)
	return cmd
}

// play runs an interactive session until the input ends or the players
// quit. Time penalties are checked every tick, even while waiting for
// input.
func play(session *match.Session, in io.Reader, out io.Writer, colored bool, tick time.Duration) error {
	var mu sync.Mutex // serializes writes to out
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				penalties := session.Tick()
				if len(penalties) == 0 {
					continue
				}

				mu.Lock()
				printPenalties(out, penalties)
				renderBoard(out, session.Snapshot(), colored)
				mu.Unlock()
			}
		}
	}()

	mu.Lock()
	renderBoard(out, session.Snapshot(), colored)
	mu.Unlock()

	scanner := bufio.NewScanner(in)
	for printf("> "); scanner.Scan(); printf("> ") {
		line := scanner.Text()
		if line == "" {
			continue
		}

		cmd, err := match.ParseCommand(line)
		if err != nil {
			printf("error: %v\n", err)
			continue
		}

		reply, err := session.Exec(cmd)

		mu.Lock()
		printReply(out, reply, colored)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		mu.Unlock()

		if reply.Quit {
			return nil
		}
	}

	printf("\n")
	return scanner.Err()
}

func printPenalties(out io.Writer, penalties []match.Penalty) {
	for _, penalty := range penalties {
		fmt.Fprintln(out, penalty)
	}
}

func printReply(out io.Writer, reply match.Reply, colored bool) {
	printPenalties(out, reply.Penalties)

	for _, line := range reply.Lines {
		fmt.Fprintln(out, line)
	}

	if reply.Board != nil {
		renderBoard(out, reply.Board, colored)
	}
}
