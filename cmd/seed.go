package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo users and their entries",
	Long: `Load two demo users (demo_user_1 and demo_user_2, password demo123) with their November 2025 entries.

Users are only added to a store without users and entries only to a store without entries.
With --reset every user, entry and shared report is removed first.`,
	Example: `
  overtrack seed
  overtrack seed --reset
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		if seedReset {
			if err := svc.Reset(); err != nil {
				return err
			}
		}
		result, err := svc.Seed()
		if err != nil {
			return err
		}
		fmt.Printf("Seed completed. Users added: %d, Entries added: %d\n", result.Users, result.Entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Remove all data before loading the demo data")
}
