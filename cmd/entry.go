package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"overtrack/internal/timeutil"
	"overtrack/worklog"
)

var (
	entryUser        string
	entryID          string
	entryDate        string
	entryMonth       string
	entryHours       float64
	entryProjectLink string
	entrySupervisor  string
	entryNotes       string
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Add, list, edit and delete overtime entries.",
	Long: `Manage the overtime entries of one user.

Dates accept YYYY-MM-DD, "today" and "yesterday". Months accept YYYY-MM, "current" and "previous".`,
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an overtime entry",
	Example: `
  overtrack entry add --user demo_user_1 --hours 2.5 --supervisor "Mike Chen" --project https://jira.company.com/browse/API-999
  overtrack entry add --user demo_user_1 --date yesterday --hours 1 --notes "Release support"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(entryUser); err != nil {
			return err
		}
		date, err := timeutil.ResolveDate(entryDate, time.Now())
		if err != nil {
			return err
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		if _, err := svc.Accounts.Lookup(entryUser); err != nil {
			return err
		}
		entry, err := svc.Entries.Append(entryUser, worklog.Draft{
			ProjectLink: entryProjectLink,
			HoursWorked: entryHours,
			Supervisor:  entrySupervisor,
			Date:        date,
			Notes:       entryNotes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged %.2fh on %s (ID %s)\n", entry.HoursWorked, entry.Date, entry.ID)
		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's entries of one month, most recent first",
	Example: `
  overtrack entry list --user demo_user_1 --month 2025-11
  overtrack entry list --user demo_user_1 --all
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(entryUser); err != nil {
			return err
		}

		var month worklog.Month
		all, _ := cmd.Flags().GetBool("all")
		if !all {
			resolved, err := resolveMonthFlag(entryMonth)
			if err != nil {
				return err
			}
			month = resolved
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		if _, err := svc.Accounts.Lookup(entryUser); err != nil {
			return err
		}
		entries, err := svc.Entries.ListByUser(entryUser, month)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No entries.")
			return nil
		}
		for _, entry := range entries {
			fmt.Println(formatEntryLine(entry))
		}
		return nil
	},
}

var entryEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change fields of an existing entry",
	Long: `Change the fields of an entry. Only flags given on the command line are changed.`,
	Example: `
  overtrack entry edit --user demo_user_1 --id 0192f6d8-... --hours 3 --notes "Incident follow-up"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(entryUser); err != nil {
			return err
		}
		patch, err := entryPatchFromFlags(cmd)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to change: pass at least one of --date, --hours, --project, --supervisor, --notes")
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		entry, err := svc.Entries.Update(entryID, entryUser, patch)
		if err != nil {
			return err
		}
		fmt.Println("Updated:", formatEntryLine(entry))
		return nil
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(entryUser); err != nil {
			return err
		}

		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.Entries.Remove(entryID, entryUser); err != nil {
			return err
		}
		fmt.Printf("Deleted entry %s\n", entryID)
		return nil
	},
}

// entryPatchFromFlags builds a patch from the flags the user actually set.
func entryPatchFromFlags(cmd *cobra.Command) (worklog.Patch, error) {
	var patch worklog.Patch
	flags := cmd.Flags()

	if flags.Changed("date") {
		date, err := timeutil.ResolveDate(entryDate, time.Now())
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}
	if flags.Changed("hours") {
		hours := entryHours
		patch.HoursWorked = &hours
	}
	if flags.Changed("project") {
		link := entryProjectLink
		patch.ProjectLink = &link
	}
	if flags.Changed("supervisor") {
		supervisor := entrySupervisor
		patch.Supervisor = &supervisor
	}
	if flags.Changed("notes") {
		notes := entryNotes
		patch.Notes = &notes
	}
	return patch, nil
}

func formatEntryLine(entry worklog.Entry) string {
	fields := []string{entry.Date.String(), fmt.Sprintf("%6.2fh", entry.HoursWorked), entry.ID}
	if entry.Supervisor != "" {
		fields = append(fields, "supervisor: "+entry.Supervisor)
	}
	if entry.ProjectLink != "" {
		fields = append(fields, entry.ProjectLink)
	}
	if entry.Notes != "" {
		fields = append(fields, "notes: "+entry.Notes)
	}
	return strings.Join(fields, "\t")
}

func addEntryFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&entryDate, "date", "today", "Entry date: YYYY-MM-DD|today|yesterday")
	cmd.Flags().Float64Var(&entryHours, "hours", 0, "Hours worked, greater than 0")
	cmd.Flags().StringVar(&entryProjectLink, "project", "", "Project link (URL)")
	cmd.Flags().StringVar(&entrySupervisor, "supervisor", "", "Supervisor who approved the overtime")
	cmd.Flags().StringVar(&entryNotes, "notes", "", "Free-text notes")
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryListCmd, entryEditCmd, entryDeleteCmd)

	entryCmd.PersistentFlags().StringVar(&entryUser, "user", "", "User ID owning the entries")

	addEntryFieldFlags(entryAddCmd)
	addEntryFieldFlags(entryEditCmd)
	_ = entryAddCmd.MarkFlagRequired("hours")

	entryListCmd.Flags().StringVar(&entryMonth, "month", "current", "Month to list: YYYY-MM|current|previous")
	entryListCmd.Flags().Bool("all", false, "List entries of every month")

	for _, c := range []*cobra.Command{entryEditCmd, entryDeleteCmd} {
		c.Flags().StringVar(&entryID, "id", "", "Entry ID")
		_ = c.MarkFlagRequired("id")
	}
}
