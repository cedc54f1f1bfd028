package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"overtrack/dashboard"
	"overtrack/output"
	"overtrack/worklog"
)

var (
	exportFormat string
	exportMode   string
	exportOutput string
	exportUser   string
	exportMonth  string
	exportShare  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a monthly overtime report to CSV/Excel",
	Long: `Export one user's month, or a shared report, as a file.

Modes:
- entries: one row per entry plus the month totals
- daily: per-day hours with the running month total

The Excel format always contains the Summary, Entries and Daily sheets; --mode only selects the CSV layout.
With --share the frozen shared report is exported instead of the live entries.
Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export a month to CSV
  overtrack export --user demo_user_1 --month 2025-11 --output ./november.csv

  # Export last month to Excel
  overtrack export --user demo_user_1 --month previous --output ./report.xlsx

  # Export daily totals
  overtrack export --user demo_user_1 --month 2025-11 --mode daily --output ./daily.csv

  # Export a shared report
  overtrack export --share 0b7c5e0e-3f1a-4c3e-9d1e-2f4f0c8a9b11 --output ./shared.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		report, err := buildExportReport(svc, exportUser, exportMonth, exportShare)
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "entries":
			if err := writeReport(exportOutput, format, report); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, Mode: entries, Format: %s, File: %s\n", len(report.Rows), format, exportOutput)
		case "daily":
			if isExcelFormat(format) {
				if err := writeReport(exportOutput, format, report); err != nil {
					return err
				}
				fmt.Printf("Export completed. Mode: daily, Format: excel, File: %s\n", exportOutput)
				return nil
			}
			summaries := output.BuildDailySummaries(report)
			if err := output.WriteDailySummaries(exportOutput, format, summaries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Days: %d, Mode: daily, Format: %s, File: %s\n", len(summaries), format, exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: entries, daily)", exportMode)
		}
		return nil
	},
}

// buildExportReport returns the frozen report when shareID is set, otherwise
// the live month of userID.
func buildExportReport(svc *dashboard.Service, userID, monthValue, shareID string) (output.Report, error) {
	if shareID = strings.TrimSpace(shareID); shareID != "" {
		shared, found, err := svc.ResolveShare(shareID)
		if err != nil {
			return output.Report{}, err
		}
		if !found {
			return output.Report{}, &worklog.NotFoundError{Resource: "shared report", ID: shareID}
		}
		return output.ReportFromShare(shared), nil
	}

	if err := requireUser(userID); err != nil {
		return output.Report{}, err
	}
	month, err := resolveMonthFlag(monthValue)
	if err != nil {
		return output.Report{}, err
	}
	overview, err := svc.Overview(userID, month)
	if err != nil {
		return output.Report{}, err
	}
	return output.NewReport(overview.User.Name, month, overview.Entries, overview.Stats), nil
}

func writeReport(path, format string, report output.Report) error {
	writer, err := output.WriterForFormat(format)
	if err != nil {
		return err
	}
	return writer.Write(path, report)
}

func isExcelFormat(format string) bool {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "excel", "xlsx":
		return true
	}
	return false
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "entries", "Export mode: entries|daily")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportUser, "user", "", "User ID to export")
	exportCmd.Flags().StringVar(&exportMonth, "month", "current", "Month to export: YYYY-MM|current|previous")
	exportCmd.Flags().StringVar(&exportShare, "share", "", "Export the shared report with this ID instead of a live month")

	_ = exportCmd.MarkFlagRequired("output")
}
