package auth

import (
	"context"
	"sync"

	"github.com/aipo-io/cli/internal/models"
	"github.com/sirupsen/logrus"
)

// Provider resolves the session once at startup and exposes it to the rest of
// the program. Until the check settles it reports loading.
type Provider struct {
	store *Store

	once sync.Once
	done chan struct{}

	lock sync.RWMutex
	err  error

	listenerLock sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

func NewProvider(store *Store) *Provider {
	return &Provider{
		store:     store,
		done:      make(chan struct{}),
		listeners: make(map[int]Listener),
	}
}

// Start runs the session check in the background. Only the first call does
// anything.
func (p *Provider) Start(ctx context.Context) {
	p.once.Do(func() {
		go p.run(ctx)
	})
}

func (p *Provider) run(ctx context.Context) {
	if err := p.store.CheckAuth(ctx); err != nil {
		logrus.WithError(err).Errorln("Auth initialization failed")

		p.lock.Lock()
		p.err = err
		p.lock.Unlock()
	}

	close(p.done)

	// Subscribers last saw the loading view. Direct store listeners already
	// saw the settled session.
	p.notify(p.store.Snapshot())
}

func (p *Provider) notify(session models.Session) {
	p.listenerLock.Lock()
	listeners := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.listenerLock.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}

// Session is the store's session, with Loading held true until the startup
// check has settled.
func (p *Provider) Session() models.Session {
	session := p.store.Snapshot()
	if !p.settled() {
		session.Loading = true
	}
	return session
}

func (p *Provider) State() State {
	return StateOf(p.Session())
}

// Done is closed once the startup check has settled.
func (p *Provider) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the startup check settles or ctx ends. The check's own
// failure is returned but has already been applied to the session.
func (p *Provider) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err is the startup check's failure, if any.
func (p *Provider) Err() error {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.err
}

// Subscribe forwards store changes to fn, with the provider's loading view.
func (p *Provider) Subscribe(fn Listener) func() {
	p.listenerLock.Lock()
	id := p.nextListener
	p.nextListener++
	p.listeners[id] = fn
	p.listenerLock.Unlock()

	unsubscribe := p.store.Subscribe(func(session models.Session) {
		if !p.settled() {
			session.Loading = true
		}
		fn(session)
	})

	return func() {
		unsubscribe()
		p.listenerLock.Lock()
		delete(p.listeners, id)
		p.listenerLock.Unlock()
	}
}

func (p *Provider) settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
