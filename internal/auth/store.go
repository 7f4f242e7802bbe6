// Package auth holds the client-side session state machine and the provider
// that resolves it once at startup.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/aipo-io/cli/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned when a newer session change started while the
// call was in flight. Its result was discarded.
var ErrSuperseded = errors.New("session change superseded by a newer one")

// API is the part of the HTTP client the store drives.
type API interface {
	Login(ctx context.Context, email string, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, email string, password string, name string) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.User, error)
	Refresh(ctx context.Context) (*models.TokenResponse, error)
	SetAuthToken(token string)
	ClearAuthToken()
}

// Storage persists the durable subset of the session.
type Storage interface {
	Load() (models.PersistedSession, error)
	Save(state models.PersistedSession) error
}

// Listener receives a snapshot of the session after every change.
type Listener func(models.Session)

// Store owns the session. Network calls run outside the lock; each call that
// starts a transition takes a new generation and its completion is applied
// only if no newer transition has started since.
type Store struct {
	api     API
	storage Storage

	lock       sync.Mutex
	session    models.Session
	generation uint64

	listenerLock sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// NewStore rehydrates the persisted session. A session that cannot be read
// is logged and the store starts empty.
func NewStore(api API, storage Storage) *Store {
	s := &Store{
		api:       api,
		storage:   storage,
		listeners: make(map[int]Listener),
	}
	s.session = s.load()
	s.syncClientToken(s.session)
	return s
}

func (s *Store) load() models.Session {
	if s.storage == nil {
		return models.Session{}
	}
	persisted, err := s.storage.Load()
	if err != nil {
		logrus.WithError(err).Warnln("Failed to load persisted session, starting signed out")
		return models.Session{}
	}
	return persisted.Session()
}

// Rehydrate replaces the in-memory session with what is persisted, for when
// another process rewrote it. Any in-flight transition is superseded.
func (s *Store) Rehydrate() {
	session := s.load()

	s.lock.Lock()
	s.generation++
	s.session = session
	s.syncClientToken(session)
	snapshot := copySession(session)
	s.lock.Unlock()

	logrus.WithField("authenticated", session.IsAuthenticated).Debugln("Session rehydrated")
	s.notify(snapshot)
}

func (s *Store) Login(ctx context.Context, email string, password string) error {
	gen := s.begin(func(session *models.Session) {
		session.Loading = true
	})

	resp, err := s.api.Login(ctx, email, password)
	return s.finishTokenResponse(gen, resp, err, "Login")
}

func (s *Store) Register(ctx context.Context, email string, password string, name string) error {
	gen := s.begin(func(session *models.Session) {
		session.Loading = true
	})

	resp, err := s.api.Register(ctx, email, password, name)
	return s.finishTokenResponse(gen, resp, err, "Registration")
}

func (s *Store) finishTokenResponse(gen uint64, resp *models.TokenResponse, err error, action string) error {
	if err != nil {
		logrus.WithError(err).Debugf("%s failed", action)
		if !s.commit(gen, signedOut) {
			return errors.Join(err, ErrSuperseded)
		}
		return err
	}

	if !s.commit(gen, signedIn(resp.User, resp.AccessToken)) {
		return ErrSuperseded
	}
	return nil
}

// CheckAuth confirms the held token with the backend. Without a token it
// settles as signed out and makes no request.
func (s *Store) CheckAuth(ctx context.Context) error {
	var hasToken bool
	gen := s.begin(func(session *models.Session) {
		hasToken = session.HasToken()
		session.Loading = hasToken
		if !hasToken {
			session.IsAuthenticated = false
		}
	})

	if !hasToken {
		return nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		logrus.WithError(err).Debugln("Session check failed, signing out")
		if !s.commit(gen, signedOut) {
			return errors.Join(err, ErrSuperseded)
		}
		return err
	}

	if !s.commit(gen, func(session *models.Session) {
		session.User = user
		session.IsAuthenticated = true
		session.Loading = false
	}) {
		return ErrSuperseded
	}
	return nil
}

// Refresh exchanges the held token for a new one. A failed refresh leaves
// the session as it was; a 401 is already handled by the client.
func (s *Store) Refresh(ctx context.Context) error {
	gen := s.begin(nil)

	resp, err := s.api.Refresh(ctx)
	if err != nil {
		return err
	}

	if !s.commit(gen, func(session *models.Session) {
		session.Token = resp.AccessToken
		session.IsAuthenticated = true
		if resp.User != nil {
			session.User = resp.User
		}
	}) {
		return ErrSuperseded
	}
	return nil
}

// Logout signs out locally. It never calls the backend and is idempotent.
func (s *Store) Logout() {
	s.begin(signedOut)
}

// Expire clears a session the backend rejected. Unlike Logout it does not
// start a new transition, so the call that received the rejection still
// completes and reports its own error.
func (s *Store) Expire() {
	s.update(signedOut)
}

func (s *Store) SetUser(user *models.User) {
	s.update(func(session *models.Session) {
		session.User = user
	})
}

// SetToken stores token and marks the session authenticated.
func (s *Store) SetToken(token string) {
	s.begin(func(session *models.Session) {
		session.Token = token
		session.IsAuthenticated = true
	})
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() models.Session {
	s.lock.Lock()
	defer s.lock.Unlock()
	return copySession(s.session)
}

// Subscribe registers fn for every later change and returns its removal.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.listenerLock.Lock()
		defer s.listenerLock.Unlock()
		delete(s.listeners, id)
	}
}

// begin starts a new transition, applies mutate and returns its generation.
func (s *Store) begin(mutate func(*models.Session)) uint64 {
	s.lock.Lock()
	s.generation++
	gen := s.generation
	snapshot, changed := s.apply(mutate)
	s.lock.Unlock()

	if changed {
		s.notify(snapshot)
	}
	return gen
}

// commit applies mutate only if gen is still current.
func (s *Store) commit(gen uint64, mutate func(*models.Session)) bool {
	s.lock.Lock()
	if gen != s.generation {
		s.lock.Unlock()
		logrus.WithField("generation", gen).Debugln("Discarding stale session change")
		return false
	}
	snapshot, changed := s.apply(mutate)
	s.lock.Unlock()

	if changed {
		s.notify(snapshot)
	}
	return true
}

// update mutates without starting a new transition.
func (s *Store) update(mutate func(*models.Session)) {
	s.lock.Lock()
	snapshot, changed := s.apply(mutate)
	s.lock.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

// apply runs mutate, persists the result and keeps the client token in step.
// Callers hold the lock.
func (s *Store) apply(mutate func(*models.Session)) (models.Session, bool) {
	if mutate == nil {
		return models.Session{}, false
	}

	mutate(&s.session)
	s.syncClientToken(s.session)

	if s.storage != nil {
		if err := s.storage.Save(s.session.Persisted()); err != nil {
			logrus.WithError(err).Errorln("Failed to persist session")
		}
	}

	return copySession(s.session), true
}

func (s *Store) syncClientToken(session models.Session) {
	if s.api == nil {
		return
	}
	if session.HasToken() {
		s.api.SetAuthToken(session.Token)
	} else {
		s.api.ClearAuthToken()
	}
}

func (s *Store) notify(session models.Session) {
	s.listenerLock.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenerLock.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}

func signedOut(session *models.Session) {
	*session = models.Session{}
}

func signedIn(user *models.User, token string) func(*models.Session) {
	return func(session *models.Session) {
		*session = models.Session{
			User:            user,
			Token:           token,
			IsAuthenticated: true,
		}
	}
}

func copySession(session models.Session) models.Session {
	if session.User != nil {
		user := *session.User
		session.User = &user
	}
	return session
}
