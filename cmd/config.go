package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage overtrack configuration file values.",
	Long: `Create, edit, display, and delete the overtrack configuration file.

The configuration stores application-wide values:
- storage.db_path
- server.host / server.port / server.public_url
- log.level / log.format

Every key can also be set through an OVERTRACK_ environment variable, for example OVERTRACK_SERVER_PORT.`,
	Example: `
  # Create default config in $HOME/.overtrack.yaml
  overtrack config create

  # Show active config and source file
  overtrack config show

  # Open active config in editor (creates example if missing)
  overtrack config edit

  # Delete active config file
  overtrack config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
