package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"overtrack/dashboard"
	"overtrack/importer"
)

var (
	importInputs []string
	importFormat string
	importUser   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import overtime entries from CSV/TSV/Excel files",
	Long: `Read source files, map each row to an overtime entry and append the entries to one user.

Recognized columns (case-insensitive, several aliases each):
- date (required), hours (required)
- project / project link / url
- supervisor / approved by
- notes / description

When --format is omitted, format is inferred from each input file extension.
Rows without a date and hours are skipped. The import stops at the first entry that fails validation;
entries appended before it are kept.`,
	Example: `
  # Import one CSV file for a user
  overtrack import -i overtime-november.csv --user demo_user_1

  # Import several Excel files
  overtrack import -i jan.xlsx -i feb.xlsx --user demo_user_2

  # Force TSV parsing for a .txt export
  overtrack import -i export.txt --format tsv --user demo_user_1
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(importUser); err != nil {
			return err
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		result, appended, err := importFiles(svc, importUser, importInputs, importFormat)
		if result != nil {
			fmt.Printf("Import completed. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Entries appended: %d\n",
				result.FilesProcessed,
				result.RowsRead,
				result.RowsMapped,
				result.RowsSkipped,
				appended,
			)
		}
		return err
	},
}

func importFiles(svc *dashboard.Service, userID string, paths []string, format string) (*importer.Result, int, error) {
	if _, err := svc.Accounts.Lookup(userID); err != nil {
		return nil, 0, err
	}

	result, err := importer.Run(paths, format)
	if err != nil {
		return nil, 0, err
	}

	appended, err := svc.ImportDrafts(userID, result.Drafts)
	return result, appended, err
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|tsv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importUser, "user", "", "User ID that receives the imported entries")

	_ = importCmd.MarkFlagRequired("input")
	_ = importCmd.MarkFlagRequired("user")
}
