package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aipo-io/cli/internal/common"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your account",
	Long: `Sign in with your email and password. The session is kept in
~/.config/aipo/auth-storage.json until you log out or it expires.

Example:
  aipo login
  aipo login --email you@example.com --password-stdin < password.txt`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	passwordStdin, _ := cmd.Flags().GetBool("password-stdin")

	var password string
	if passwordStdin {
		var err error
		if password, err = readSecret(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	if len(email) == 0 || len(password) == 0 {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email).
					Validate(validateEmail),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(required("password")),
			).Title("Sign in to AI Prompt Optimizer"),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("login cancelled: %w", err)
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := store.Login(ctx, strings.TrimSpace(email), password); err != nil {
		return err
	}

	loginRequired.Reset()

	session := store.Snapshot()
	notifier.Success(fmt.Sprintf("Welcome back, %s!", session.User.GetName()))

	return nil
}

func validateEmail(value string) error {
	if !common.IsValidEmail(strings.TrimSpace(value)) {
		return errors.New("enter a valid email address")
	}
	return nil
}

func required(name string) func(string) error {
	return func(value string) error {
		if len(strings.TrimSpace(value)) == 0 {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// readSecret reads a single line, trimming the newline.
func readSecret(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
	rootCmd.AddCommand(loginCmd)
}
