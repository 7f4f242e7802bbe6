package cli

import (
	"fmt"
	"time"

	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange your session token for a new one",
	Long: `Asks the server for a fresh token.

Example:
  aipo refresh
  aipo refresh --if-expiring 1h`,
	RunE: protected(runRefresh),
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	window, _ := cmd.Flags().GetDuration("if-expiring")

	if window > 0 {
		expiry, err := models.TokenExpiry(store.Snapshot().Token)
		if err == nil {
			if remaining := time.Until(expiry); remaining > window {
				fmt.Fprintf(cmd.OutOrStdout(), "Session still valid for %s, not refreshing.\n",
					common.FormatDurationRemaining(remaining))
				return nil
			}
		} else {
			logrus.WithError(err).Debugln("Token expiry unknown, refreshing")
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := store.Refresh(ctx); err != nil {
		return err
	}

	notifier.Success("Session refreshed.")
	return nil
}

func init() {
	refreshCmd.Flags().Duration("if-expiring", 0, "Only refresh when the token expires within this window")
	rootCmd.AddCommand(refreshCmd)
}
