package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"overtrack/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

Values include defaults, environment overrides and the --db flag.
This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  overtrack config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; using defaults and environment.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("%s: %s\n", config.KeyDBPath, cfg.Storage.DBPath)
		fmt.Printf("%s: %s\n", config.KeyServerHost, cfg.Server.Host)
		fmt.Printf("%s: %d\n", config.KeyServerPort, cfg.Server.Port)
		fmt.Printf("%s: %s\n", config.KeyServerPublicURL, cfg.Server.PublicURL)
		fmt.Printf("%s: %s\n", config.KeyLogLevel, cfg.Log.Level)
		fmt.Printf("%s: %s\n", config.KeyLogFormat, cfg.Log.Format)
		fmt.Printf("share links: %s\n", cfg.Server.BaseURL())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
