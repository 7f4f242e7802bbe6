package auth

import "github.com/aipo-io/cli/internal/models"

// State is the coarse phase of a session.
type State int

const (
	Anonymous State = iota
	Loading
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// StateOf reports the phase a session is in. Loading wins over the
// authenticated flag while a transition is pending.
func StateOf(session models.Session) State {
	switch {
	case session.Loading:
		return Loading
	case session.IsAuthenticated:
		return Authenticated
	default:
		return Anonymous
	}
}
