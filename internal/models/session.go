package models

// SessionStorageKey is the fixed key the persisted session lives under.
const SessionStorageKey = "auth-storage"

// Session is the client-held record of the current identity and credential.
type Session struct {
	User            *User  `json:"user" yaml:"user"`
	Token           string `json:"token,omitempty" yaml:"token,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated" yaml:"isAuthenticated"`
	Loading         bool   `json:"-" yaml:"-"`
}

// HasToken reports whether a credential is held.
func (s Session) HasToken() bool {
	return len(s.Token) > 0
}

// Persisted returns the durable subset of the session. Loading is never
// persisted.
func (s Session) Persisted() PersistedSession {
	var token *string
	if s.HasToken() {
		t := s.Token
		token = &t
	}
	return PersistedSession{
		User:            s.User,
		Token:           token,
		IsAuthenticated: s.IsAuthenticated,
	}
}

// PersistedSession is the {user, token, isAuthenticated} subset written to
// durable storage. Token is a pointer so a cleared session is stored as null.
type PersistedSession struct {
	User            *User   `json:"user"`
	Token           *string `json:"token"`
	IsAuthenticated bool    `json:"isAuthenticated"`
}

// Session rebuilds the in-memory session. Loading always starts false.
func (p PersistedSession) Session() Session {
	session := Session{
		User:            p.User,
		IsAuthenticated: p.IsAuthenticated,
	}
	if p.Token != nil {
		session.Token = *p.Token
	}
	return session
}

// PersistedEnvelope is the JSON blob stored under SessionStorageKey.
type PersistedEnvelope struct {
	State   PersistedSession `json:"state"`
	Version int              `json:"version"`
}
