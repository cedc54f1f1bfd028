package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"overtrack/share"
	"overtrack/stats"
	"overtrack/worklog"
)

var (
	shareUser  string
	shareMonth string
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Create and inspect read-only monthly reports.",
	Long: `A shared report freezes one user's month at the moment it is first shared.

Sharing the same month again returns the existing report and link; later entry changes do not alter it.
Shared reports list entries without their IDs and owner.`,
}

var shareCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Share a month and print its link",
	Example: `
  overtrack share create --user demo_user_1 --month 2025-11
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(shareUser); err != nil {
			return err
		}
		month, err := resolveMonthFlag(shareMonth)
		if err != nil {
			return err
		}

		svc, cfg, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		report, err := svc.ShareMonth(shareUser, month)
		if err != nil {
			return err
		}
		fmt.Printf("Shared %s of %s (created %s)\n", report.Month, report.UserName, report.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Println(share.URL(cfg.Server.BaseURL(), report.ID))
		return nil
	},
}

var shareShowCmd = &cobra.Command{
	Use:   "show <share-id>",
	Short: "Print a shared report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		report, found, err := svc.ResolveShare(args[0])
		if err != nil {
			return err
		}
		if !found {
			return &worklog.NotFoundError{Resource: "shared report", ID: args[0]}
		}

		fmt.Printf("%s, %s (read only)\n", report.UserName, report.Month)
		printStats(report.Stats, stats.RoundedTotal(report.Stats))
		for _, entry := range report.Entries {
			line := fmt.Sprintf("  %s  %6.2fh", entry.Date, entry.HoursWorked)
			if entry.Supervisor != "" {
				line += "  " + entry.Supervisor
			}
			if entry.ProjectLink != "" {
				line += "  " + entry.ProjectLink
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.AddCommand(shareCreateCmd, shareShowCmd)

	shareCreateCmd.Flags().StringVar(&shareUser, "user", "", "User ID")
	shareCreateCmd.Flags().StringVar(&shareMonth, "month", "current", "Month to share: YYYY-MM|current|previous")
}
