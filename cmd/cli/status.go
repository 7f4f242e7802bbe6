package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aipo-io/cli/internal/auth"
	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/models"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type settledMsg struct{}

// waitModel shows a spinner until the auth provider settles.
type waitModel struct {
	spinner  spinner.Model
	done     <-chan struct{}
	settled  bool
	quitting bool
}

func newWaitModel(done <-chan struct{}) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))

	return waitModel{
		spinner: s,
		done:    done,
	}
}

func (m waitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForSettle)
}

func (m waitModel) waitForSettle() tea.Msg {
	<-m.done
	return settledMsg{}
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case settledMsg:
		m.settled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m waitModel) View() string {
	if m.settled || m.quitting {
		return ""
	}
	return fmt.Sprintf("\n %s Checking your session...\n\n", m.spinner.View())
}

// waitForProvider starts the provider and blocks until it settles, showing a
// spinner on interactive terminals.
func waitForProvider(ctx context.Context, cmd *cobra.Command, p *auth.Provider) error {
	p.Start(ctx)

	if !isInteractive() {
		return p.Wait(ctx)
	}

	program := tea.NewProgram(newWaitModel(p.Done()),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.ErrOrStderr()),
	)

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if model, ok := finalModel.(waitModel); ok && model.quitting {
		return context.Canceled
	}

	return p.Err()
}

type statusReport struct {
	State          string       `json:"state" yaml:"state"`
	User           *models.User `json:"user" yaml:"user"`
	TokenExpiresAt *time.Time   `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	APIURL         string       `json:"api_url" yaml:"api_url"`
	StoragePath    string       `json:"storage_path" yaml:"storage_path"`
}

func newStatusReport(session models.Session) statusReport {
	report := statusReport{
		State:       auth.StateOf(session).String(),
		User:        session.User,
		APIURL:      api.BaseURL(),
		StoragePath: storage.Path(),
	}

	if session.HasToken() {
		if expiry, err := models.TokenExpiry(session.Token); err == nil {
			report.TokenExpiresAt = &expiry
		} else {
			logrus.WithError(err).Debugln("Could not read token expiry")
		}
	}

	return report
}

func printStatus(out io.Writer, report statusReport) error {
	fmt.Fprintln(out, titleStyle.Render("AI Prompt Optimizer"))

	switch report.State {
	case auth.Authenticated.String():
		fmt.Fprintln(out, successStyle.Render("● Signed in"))
	case auth.Loading.String():
		fmt.Fprintln(out, warningStyle.Render("● Checking session"))
	default:
		fmt.Fprintln(out, errorStyle.Render("● Not signed in"))
		fmt.Fprintln(out, mutedStyle.Render("Run 'aipo login' or 'aipo register' to get started."))
	}
	fmt.Fprintln(out)

	if report.User != nil {
		field(out, "Name", report.User.GetName())
		field(out, "Email", report.User.Email)
		if len(report.User.SubscriptionTier) > 0 {
			field(out, "Plan", tierStyle.Render(string(report.User.SubscriptionTier)))
		}
		if report.User.OptimizationsRemaining != nil {
			field(out, "Optimizations", fmt.Sprintf("%d remaining", *report.User.OptimizationsRemaining))
		}
		if report.User.TokensRemaining != nil {
			field(out, "Tokens", fmt.Sprintf("%d remaining", *report.User.TokensRemaining))
		}
	}

	if report.TokenExpiresAt != nil {
		expiry := report.TokenExpiresAt.Local().Format("2006-01-02 15:04:05")
		if remaining := time.Until(*report.TokenExpiresAt); remaining > 0 {
			field(out, "Session", activeStyle.Render(fmt.Sprintf("expires %s (%s)",
				expiry, common.FormatDurationRemaining(remaining))))
		} else {
			field(out, "Session", expiredStyle.Render(fmt.Sprintf("expired %s", expiry)))
		}
	}

	field(out, "API", report.APIURL)

	return nil
}

func printRecentEvents(out io.Writer) {
	events := cfg.RecentEvents(5)
	if len(events) == 0 {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Recent warnings"))
	for _, event := range events {
		fmt.Fprintf(out, "  %s %s %s\n",
			mutedStyle.Render(event.Time.Format("15:04:05")),
			warningStyle.Render(event.Level.String()),
			event.Message)
	}
}

func showStatus(cmd *cobra.Command, session models.Session) error {
	report := newStatusReport(session)
	return render(cmd, report, func(out io.Writer) error {
		if err := printStatus(out, report); err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			printRecentEvents(out)
		}
		return nil
	})
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show who you are signed in as",
	Long: `Confirms the stored session with the server and shows the signed in
user. With --watch the output is refreshed whenever another aipo process
signs in or out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		err := waitForProvider(ctx, cmd, provider)
		if errors.Is(err, context.Canceled) {
			return err
		}
		// A failed check has already signed the session out; report that state.
		loginRequired.Reset()

		if err := showStatus(cmd, provider.Session()); err != nil {
			return err
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return nil
		}

		err = storage.Watch(ctx, func() {
			store.Rehydrate()
			fmt.Fprintln(cmd.OutOrStdout())
			if err := showStatus(cmd, store.Snapshot()); err != nil {
				logrus.WithError(err).Errorln("Failed to render status")
			}
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("Watching for session changes. Press Ctrl+C to stop."))
		<-ctx.Done()
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("watch", false, "Keep running and show session changes")
	rootCmd.AddCommand(statusCmd)
}
