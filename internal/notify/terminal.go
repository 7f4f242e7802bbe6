package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

var (
	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575")).
				Bold(true)
)

// Terminal writes notifications as styled lines, the way a toast would
// pop up in a browser.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Error(message string) {
	t.write(toastErrorStyle.Render("✗ " + message))
}

func (t *Terminal) Success(message string) {
	t.write(toastSuccessStyle.Render("✓ " + message))
}

func (t *Terminal) write(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, line)
}

// Log sends notifications to the structured log instead of the terminal.
type Log struct{}

func (Log) Error(message string) {
	logrus.WithField("notification", "error").Errorln(message)
}

func (Log) Success(message string) {
	logrus.WithField("notification", "success").Infoln(message)
}
