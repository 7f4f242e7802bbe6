// Package notify holds the side effects performed when a request fails:
// user-visible notifications and the forced logout on expired sessions.
package notify

import (
	"github.com/aipo-io/cli/internal/common"
	"github.com/sirupsen/logrus"
)

// Notifier surfaces a human readable message to the user.
type Notifier interface {
	Error(message string)
	Success(message string)
}

// Redirector sends the user to the login surface.
type Redirector interface {
	RedirectToLogin()
}

// SessionClearer removes the persisted session.
type SessionClearer interface {
	Clear() error
}

// FailureHandler receives every failed request before the error is returned
// to the caller.
type FailureHandler interface {
	HandleFailure(err *common.APIError)
}

// Dispatcher is the default FailureHandler. Every failure is surfaced
// through the Notifier; an AuthFailure additionally clears the persisted
// session and redirects to login.
type Dispatcher struct {
	Notifier   Notifier
	Redirector Redirector
	Sessions   SessionClearer
}

func NewDispatcher(notifier Notifier, redirector Redirector, sessions SessionClearer) *Dispatcher {
	return &Dispatcher{
		Notifier:   notifier,
		Redirector: redirector,
		Sessions:   sessions,
	}
}

func (d *Dispatcher) HandleFailure(err *common.APIError) {
	if err == nil {
		return
	}

	if err.Kind == common.AuthFailure {
		if d.Sessions != nil {
			if clearErr := d.Sessions.Clear(); clearErr != nil {
				logrus.WithError(clearErr).Errorln("Failed to clear persisted session")
			}
		}
		if d.Redirector != nil {
			d.Redirector.RedirectToLogin()
		}
	}

	if d.Notifier != nil && len(err.Message) > 0 {
		d.Notifier.Error(err.Message)
	}
}

// HandlerFunc adapts a function to FailureHandler.
type HandlerFunc func(err *common.APIError)

func (f HandlerFunc) HandleFailure(err *common.APIError) {
	f(err)
}
