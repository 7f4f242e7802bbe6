package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out on this machine",
	Long:  "Forgets the stored session. Nothing is sent to the server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		wasSignedIn := store.Snapshot().HasToken()
		store.Logout()

		if wasSignedIn {
			notifier.Success("Signed out.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("Not signed in."))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
