package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aipo-io/cli/internal/models"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your profile",
	Long: `Shows your profile. Pass --first-name, --last-name or --email to
change it.`,
	Args: cobra.NoArgs,
	RunE: protected(runProfile),
}

func runProfile(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	var update models.UserUpdate
	changed := false
	for flag, target := range map[string]**string{
		"first-name": &update.FirstName,
		"last-name":  &update.LastName,
		"email":      &update.Email,
	} {
		if cmd.Flags().Changed(flag) {
			value, _ := cmd.Flags().GetString(flag)
			value = strings.TrimSpace(value)
			*target = &value
			changed = true
		}
	}

	var profile *models.UserProfile
	var err error
	if changed {
		profile, err = api.UpdateProfile(ctx, update)
	} else {
		profile, err = api.Profile(ctx)
	}
	if err != nil {
		return err
	}

	if changed {
		// Keep the cached identity in step with the server.
		if user, meErr := api.Me(ctx); meErr == nil {
			store.SetUser(user)
		}
		notifier.Success("Profile updated.")
	}

	return render(cmd, profile, func(out io.Writer) error {
		name := strings.TrimSpace(deref(profile.FirstName) + " " + deref(profile.LastName))
		if len(name) == 0 {
			name = profile.Email
		}

		fmt.Fprintln(out, titleStyle.Render(name))
		field(out, "Email", profile.Email)
		field(out, "Plan", tierStyle.Render(string(profile.SubscriptionTier)))
		field(out, "Optimizations", fmt.Sprintf("%d of %d used", profile.OptimizationsUsed, profile.MonthlyOptimizations))
		field(out, "Tokens", fmt.Sprintf("%d of %d used", profile.TokensUsed, profile.MonthlyTokens))
		field(out, "Member since", profile.CreatedAt.Local().Format("2006-01-02"))
		if profile.LastLogin != nil {
			field(out, "Last login", profile.LastLogin.Local().Format("2006-01-02 15:04"))
		}
		return nil
	})
}

func init() {
	profileCmd.Flags().String("first-name", "", "New first name")
	profileCmd.Flags().String("last-name", "", "New last name")
	profileCmd.Flags().String("email", "", "New email")
	rootCmd.AddCommand(profileCmd)
}
