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
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/emberlord/pkg/match"
)

// emberlord replay
func Replay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay script-file",
		Short: "Play the commands of a script and print the final position",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`replay plays the commands of a script file, one per line, as
			if they were typed into play. Blank lines and lines starting
			with # are skipped. Replays are untimed, and the first
			command which fails stops the replay with an error.

			Use - as the file name to read the script from standard
			input.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			session, err := newSession(cmd, config, false)
			if err != nil {
				return err
			}

			script := cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				script = file
			}

			quiet, _ := cmd.Flags().GetBool("quiet")
			return replay(session, script, cmd.OutOrStdout(), config.Color, quiet)
		},
	}

	gameFlags(cmd)
	cmd.Flags().BoolP("quiet", "q", false, "Only print the final position")
	return cmd
}

func replay(session *match.Session, script io.Reader, out io.Writer, colored, quiet bool) error {
	scanner := bufio.NewScanner(script)

	for number := 1; scanner.Scan(); number++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, err := match.ParseCommand(line)
		if err != nil {
			return fmt.Errorf("replay: line %d: %w", number, err)
		}

		reply, err := session.Exec(cmd)
		if err != nil {
			return fmt.Errorf("replay: line %d: %w", number, err)
		}

		if !quiet {
			fmt.Fprintf(out, "> %s\n", line)
			for _, text := range reply.Lines {
				fmt.Fprintln(out, text)
			}
		}

		if reply.Quit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	game := session.Snapshot()
	renderBoard(out, game, colored)
	fmt.Fprintln(out, game.Position())
	return nil
}
