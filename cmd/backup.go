package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"overtrack/dashboard"
)

var (
	backupUser string
	backupFile string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and restore a user's entries as JSON.",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all entries of a user to a JSON file",
	Example: `
  overtrack backup export --user demo_user_1 --output ./john.json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(backupUser); err != nil {
			return err
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		backup, err := svc.ExportBackup(backupUser)
		if err != nil {
			return err
		}
		if err := writeBackupFile(backupFile, backup); err != nil {
			return err
		}
		fmt.Printf("Backup written. Entries: %d, File: %s\n", len(backup.Entries), backupFile)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace all entries of a user with a JSON backup",
	Long: `Replace every entry of the user with the entries of a backup file.

The backup must have been exported for the same user. Entries receive new IDs.`,
	Example: `
  overtrack backup import --user demo_user_1 --input ./john.json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(backupUser); err != nil {
			return err
		}
		backup, err := readBackupFile(backupFile)
		if err != nil {
			return err
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		imported, err := svc.ImportBackup(backupUser, backup)
		if err != nil {
			return err
		}
		fmt.Printf("Backup restored. Entries: %d\n", imported)
		return nil
	},
}

func writeBackupFile(path string, backup dashboard.Backup) error {
	content, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := os.WriteFile(path, append(content, '\n'), 0o600); err != nil {
		return fmt.Errorf("write backup %s: %w", path, err)
	}
	return nil
}

func readBackupFile(path string) (dashboard.Backup, error) {
	var backup dashboard.Backup
	content, err := os.ReadFile(path)
	if err != nil {
		return backup, fmt.Errorf("read backup %s: %w", path, err)
	}
	if err := json.Unmarshal(content, &backup); err != nil {
		return backup, fmt.Errorf("decode backup %s: %w", path, err)
	}
	return backup, nil
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)

	backupCmd.PersistentFlags().StringVar(&backupUser, "user", "", "User ID")
	backupExportCmd.Flags().StringVarP(&backupFile, "output", "o", "", "Backup file to write")
	backupImportCmd.Flags().StringVarP(&backupFile, "input", "i", "", "Backup file to read")

	_ = backupExportCmd.MarkFlagRequired("output")
	_ = backupImportCmd.MarkFlagRequired("input")
}
