/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"overtrack/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "overtrack",
	Short: "Log overtime, review monthly statistics and share read-only monthly reports.",
	Long: `
**********************************************
*              OVERTRACK                     *
**********************************************

This CLI keeps overtime entries (project link, hours, supervisor, date, notes) per user in a
local SQLite database, aggregates them per calendar month and freezes a month into a
read-only report that can be shared by link.

Entries can be imported from CSV or Excel files and exported as CSV or Excel reports.
`,
	Example: `
  # Create configuration file
  overtrack config create

  # Load the demo users and their November 2025 entries
  overtrack seed

  # Log two hours for a user
  overtrack entry add --user demo_user_1 --date 2025-11-28 --hours 2 --supervisor "Mike Chen"

  # Show the statistics of a month
  overtrack stats --user demo_user_1 --month 2025-11

  # Share a month and print its link
  overtrack share create --user demo_user_1 --month 2025-11

  # Start the web dashboard
  overtrack serve
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.overtrack.yaml, then ./.overtrack.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database, or :memory: (overrides storage.db_path)")
	_ = viper.BindPFlag(config.KeyDBPath, rootCmd.PersistentFlags().Lookup("db"))
}

// initConfig reads in .env, the config file and OVERTRACK_* environment variables.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".overtrack")
	}

	viper.SetEnvPrefix("OVERTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || cfgFile == "" {
			return
		}
		fmt.Fprintf(os.Stderr, "Warning: could not read config %s: %v\n", cfgFile, err)
	}
}
