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
	"path/filepath"

	"github.com/spf13/cobra"
)

// emberlord config
func Config() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration and where it was read from",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := config.Dump()
			if err != nil {
				return err
			}

			dir, _ := cmd.Flags().GetString("config-dir")
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", filepath.Join(dir, "config.yaml"), data)
			return nil
		},
	}
}
