package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"overtrack/stats"
)

var (
	statsUser  string
	statsMonth string
	statsChart bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the monthly statistics of a user",
	Long: `Print total hours, entry count, distinct days worked and the average per worked day of one month.

With --chart the hours of every day that has entries are listed as well.`,
	Example: `
  overtrack stats --user demo_user_1 --month 2025-11
  overtrack stats --user demo_user_1 --month previous --chart
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(statsUser); err != nil {
			return err
		}
		month, err := resolveMonthFlag(statsMonth)
		if err != nil {
			return err
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		overview, err := svc.Overview(statsUser, month)
		if err != nil {
			return err
		}

		fmt.Printf("%s, %s\n", overview.User.Name, month)
		printStats(overview.Stats, stats.RoundedTotal(overview.Stats))
		if statsChart {
			for _, day := range overview.Stats.ChartData {
				fmt.Printf("  %s  %6.2fh\n", day.Date, day.Hours)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsUser, "user", "", "User ID")
	statsCmd.Flags().StringVar(&statsMonth, "month", "current", "Month: YYYY-MM|current|previous")
	statsCmd.Flags().BoolVar(&statsChart, "chart", false, "Also list hours per day")
}
