package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"overtrack/account"
)

var (
	userName     string
	userEmail    string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Register and list users.",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user",
	Long: `Register a user with a unique e-mail address.

Name must be 2 to 100 characters and the password at least 6 characters.
The new user ID is printed on success; pass it as --user to the other commands.`,
	Example: `
  overtrack user register --name "Ada Lovelace" --email ada@example.com --password secret1
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		profile, err := svc.Accounts.Register(account.RegisterInput{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s <%s> with ID %s\n", profile.Name, profile.Email, profile.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with their entry totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		summaries, err := svc.UsersOverview()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No users registered.")
			return nil
		}
		for _, summary := range summaries {
			last := "-"
			if !summary.LastEntry.IsZero() {
				last = summary.LastEntry.Local().Format(time.DateTime)
			}
			fmt.Printf("%s\t%s <%s>\tentries: %d\thours: %.1f\tlast: %s\n",
				summary.ID, summary.Name, summary.Email, summary.TotalEntries, summary.TotalHours, last)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userRegisterCmd, userListCmd)

	userRegisterCmd.Flags().StringVar(&userName, "name", "", "Display name")
	userRegisterCmd.Flags().StringVar(&userEmail, "email", "", "E-mail address used to sign in")
	userRegisterCmd.Flags().StringVar(&userPassword, "password", "", "Password, at least 6 characters")

	_ = userRegisterCmd.MarkFlagRequired("name")
	_ = userRegisterCmd.MarkFlagRequired("email")
	_ = userRegisterCmd.MarkFlagRequired("password")
}
