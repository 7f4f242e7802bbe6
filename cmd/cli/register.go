package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const minPasswordLength = 8

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create an AI Prompt Optimizer account and sign in to it.

Example:
  aipo register`,
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")

	var password, confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name),
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(value string) error {
					if value != password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		).Title("Start your free trial"),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("registration cancelled: %w", err)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := store.Register(ctx, strings.TrimSpace(email), password, strings.TrimSpace(name)); err != nil {
		return err
	}

	loginRequired.Reset()
	notifier.Success("Account created. You're signed in.")

	return nil
}

func validatePassword(value string) error {
	if len(value) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func init() {
	registerCmd.Flags().String("name", "", "Your name")
	registerCmd.Flags().String("email", "", "Account email")
	rootCmd.AddCommand(registerCmd)
}
