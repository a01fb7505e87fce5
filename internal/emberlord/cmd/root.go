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
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/emberlord/pkg/common"
	"laptudirm.com/x/emberlord/pkg/match"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "emberlord",
		Short: "Play emberlord, draughts with flying kings and column burns",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`emberlord is a draughts variant played on the dark squares
			of an 8x8 board. Captures are mandatory and chain, regular
			pieces step forward but capture in every direction, and
			promoted kings fly along the diagonals. Every king carries
			one power-up which burns all the opposing pieces in a column.

			Settings are read from the config.yaml file in the config
			directory, which is created on first use, and can be
			overridden with EMBERLORD_ environment variables or a .env
			file in the working directory.`),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Emberlord's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().String("config-dir", common.Directory, "Directory of the config.yaml file")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Play())
	root.AddCommand(Replay())
	root.AddCommand(Perft())
	root.AddCommand(Config())

	return root
}

// loadConfig reads the configuration from the directory named by the
// --config-dir flag, after loading any .env file.
func loadConfig(cmd *cobra.Command) (*common.Config, error) {
	dir, _ := cmd.Flags().GetString("config-dir")
	return common.Load(dir)
}

// gameFlags registers the flags of the commands which start a game.
func gameFlags(cmd *cobra.Command) {
	cmd.Flags().String("position", "", "Start from the given position notation")
	cmd.Flags().String("book", "", "Start from a position of the given book file")
	cmd.Flags().Int64("seed", 0, "Seed for the time penalties, overrides the config")
}

// newSession starts a session as configured by the config file and the
// command's game flags.
func newSession(cmd *cobra.Command, config *common.Config, timed bool) (*match.Session, error) {
	rules, err := config.Rules()
	if err != nil {
		return nil, err
	}

	opts := match.Options{
		Rules: rules,
		Seed:  config.PenaltySeed,
	}

	if cmd.Flag("seed").Changed {
		opts.Seed, _ = cmd.Flags().GetInt64("seed")
	}

	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	if timed {
		if opts.TurnTime, err = config.TimeControl(); err != nil {
			return nil, err
		}
	}

	opts.Position, _ = cmd.Flags().GetString("position")

	bookFile, _ := cmd.Flags().GetString("book")
	if bookFile == "" {
		bookFile = config.Book
	}

	if opts.Position == "" && bookFile != "" {
		book, err := match.NewBook(bookFile, config.BookStrategy)
		if err != nil {
			return nil, err
		}

		// A sequential book starts from its first position.
		if config.BookStrategy == "random" {
			book.Seed(opts.Seed)
			book.Next()
		}
		opts.Position = book.Current()
	}

	return match.NewSession(opts)
}
