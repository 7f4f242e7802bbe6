package notify

import (
	"sync/atomic"
)

// LoginRequired records that a forced logout happened so the caller's layer
// can send the user to the login surface once the failing call returns.
type LoginRequired struct {
	required   atomic.Bool
	onRedirect func()
}

func NewLoginRequired(onRedirect func()) *LoginRequired {
	return &LoginRequired{onRedirect: onRedirect}
}

func (l *LoginRequired) RedirectToLogin() {
	l.required.Store(true)
	if l.onRedirect != nil {
		l.onRedirect()
	}
}

// Required reports whether a redirect happened since the last Reset.
func (l *LoginRequired) Required() bool {
	return l.required.Load()
}

func (l *LoginRequired) Reset() {
	l.required.Store(false)
}
