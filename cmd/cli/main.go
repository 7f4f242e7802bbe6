package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aipo-io/cli/internal/auth"
	"github.com/aipo-io/cli/internal/client"
	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/config"
	"github.com/aipo-io/cli/internal/notify"
	"github.com/aipo-io/cli/internal/sessions"
	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Global state shared by the commands, built once per run by preRunConfigE
var (
	cfg           *config.Config
	storage       *sessions.FileStorage
	api           *client.Client
	store         *auth.Store
	provider      *auth.Provider
	notifier      notify.Notifier
	loginRequired *notify.LoginRequired
)

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

// preRunConfigE is the layout every command renders inside: configuration,
// logging, theme, notifications and the session.
func preRunConfigE(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	apiURL, err := cmd.Flags().GetString("api-url")
	if err == nil && len(apiURL) > 0 {
		if err := cfg.SetAPIURL(apiURL); err != nil {
			return err
		}
	}

	applyTheme(cfg.UI.Theme)

	switch cfg.UI.Notifications {
	case config.NotificationsLog:
		notifier = notify.Log{}
	default:
		notifier = notify.NewTerminal(cmd.ErrOrStderr())
	}

	storage = sessions.NewFileStorage(cfg.Storage.GetPath())

	// A forced logout ends the in-memory session too, the way a browser
	// redirect drops page state.
	loginRequired = notify.NewLoginRequired(func() {
		logrus.Debugln("Session expired, login required")
		if store != nil {
			store.Expire()
		}
	})

	api = client.New(client.Options{
		BaseURL:  cfg.API.GetURL(),
		Timeout:  cfg.API.Timeout,
		Sessions: storage,
		Failures: notify.NewDispatcher(notifier, loginRequired, storage),
	})

	store = auth.NewStore(api, storage)
	provider = auth.NewProvider(store)

	logrus.WithFields(logrus.Fields{
		"api":     api.BaseURL(),
		"storage": storage.Path(),
	}).Debugln("Client configured")

	return nil
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cleanup := common.WithInterrupt(parent)
	return ctx, context.CancelFunc(cleanup)
}

// requireSession makes sure a token is held before a protected command runs.
// Interactive users are offered a login instead of an error.
func requireSession(cmd *cobra.Command, _ []string) error {
	if store.Snapshot().HasToken() {
		return nil
	}
	if !isInteractive() {
		return common.ErrNoActiveSession
	}
	return promptAndLogin(cmd)
}

// promptAndLogin prompts the user if they want to login and handles the login process
func promptAndLogin(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Authentication Required"))
	fmt.Fprintln(out, "No active session found.")
	fmt.Fprintln(out)

	var shouldLogin bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Would you like to login now?").
				Description("Sign in with your AI Prompt Optimizer account").
				Value(&shouldLogin),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("login prompt cancelled: %w", err)
	}

	if !shouldLogin {
		return common.ErrNoActiveSession
	}

	if err := runLogin(cmd, nil); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return nil
}

// afterFailure offers a fresh login when a request ended the session.
func afterFailure(cmd *cobra.Command, err error) error {
	if err == nil || !loginRequired.Required() {
		return err
	}
	loginRequired.Reset()

	if !isInteractive() {
		return err
	}
	if loginErr := promptAndLogin(cmd); loginErr != nil {
		return errors.Join(err, loginErr)
	}

	fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("Signed in again. Re-run the command to continue."))
	return err
}

// protected wraps a command body that needs a session.
func protected(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd, args); err != nil {
			return err
		}
		return afterFailure(cmd, run(cmd, args))
	}
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

var rootCmd = &cobra.Command{
	Use:   "aipo",
	Short: "AI Prompt Optimizer - optimize your AI prompts and save on tokens",
	Long: `AI Prompt Optimizer enhances result quality while aggressively reducing
token costs across GPT-4, Claude and Gemini.

Run without a command to see what it can do, or start with 'aipo login'.`,
	PersistentPreRunE: preRunConfigE,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderLanding(cmd.OutOrStdout(), cfg.App.GetURL())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.config/aipo/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "Override the API URL (e.g., http://localhost:8000/api/v1)")
	rootCmd.PersistentFlags().StringP("output", "o", string(outputTable), "Output format: table, json or yaml")
	rootCmd.PersistentFlags().StringP("query", "q", "", "jq expression applied to the result before printing")
}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}
