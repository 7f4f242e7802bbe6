package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aipo-io/cli/internal/client"
	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/models"
	"github.com/aipo-io/cli/internal/notify"
	"github.com/aipo-io/cli/internal/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu sync.Mutex

	token   string
	meCalls int

	login   func(email, password string) (*models.TokenResponse, error)
	me      func(ctx context.Context) (*models.User, error)
	refresh func() (*models.TokenResponse, error)
}

func (f *fakeAPI) Login(_ context.Context, email string, password string) (*models.TokenResponse, error) {
	return f.login(email, password)
}

func (f *fakeAPI) Register(_ context.Context, email string, password string, _ string) (*models.TokenResponse, error) {
	return f.login(email, password)
}

func (f *fakeAPI) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.meCalls++
	f.mu.Unlock()
	return f.me(ctx)
}

func (f *fakeAPI) Refresh(context.Context) (*models.TokenResponse, error) {
	return f.refresh()
}

func (f *fakeAPI) SetAuthToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeAPI) ClearAuthToken() {
	f.SetAuthToken("")
}

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meCalls
}

var alice = &models.User{ID: "1", Email: "alice@example.com", Name: "Alice", SubscriptionTier: models.SubscriptionTierPro}

func persisted(t *testing.T, token string) *sessions.MemoryStorage {
	t.Helper()
	storage := sessions.NewMemoryStorage()
	require.NoError(t, storage.Save(models.Session{User: alice, Token: token, IsAuthenticated: true}.Persisted()))
	return storage
}

func TestCheckAuth_NoTokenMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, sessions.NewMemoryStorage())

	require.NoError(t, store.CheckAuth(context.Background()))

	session := store.Snapshot()
	assert.False(t, session.IsAuthenticated)
	assert.False(t, session.Loading)
	assert.Equal(t, 0, api.calls())
	assert.Equal(t, Anonymous, StateOf(session))
}

func TestCheckAuth_RefreshesUser(t *testing.T) {
	updated := &models.User{ID: "1", Email: "alice@example.com", Name: "Alice Liddell"}
	api := &fakeAPI{me: func(context.Context) (*models.User, error) { return updated, nil }}
	store := NewStore(api, persisted(t, "t0"))

	assert.Equal(t, "t0", api.currentToken())
	require.NoError(t, store.CheckAuth(context.Background()))

	session := store.Snapshot()
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "Alice Liddell", session.User.Name)
	assert.Equal(t, "t0", session.Token)
	assert.Equal(t, 1, api.calls())
}

func TestCheckAuth_FailureDiscardsToken(t *testing.T) {
	storage := persisted(t, "t0")
	api := &fakeAPI{me: func(context.Context) (*models.User, error) {
		return nil, &common.APIError{Kind: common.AuthFailure, StatusCode: http.StatusUnauthorized}
	}}
	store := NewStore(api, storage)

	err := store.CheckAuth(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	session := store.Snapshot()
	assert.Equal(t, models.Session{}, session)
	assert.Empty(t, api.currentToken())

	stored, loadErr := storage.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, stored.Token)
	assert.Nil(t, stored.User)
}

func TestCheckAuth_LoadingWhilePending(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{me: func(context.Context) (*models.User, error) {
		<-release
		return alice, nil
	}}
	store := NewStore(api, persisted(t, "t0"))

	var states []State
	var mu sync.Mutex
	store.Subscribe(func(session models.Session) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, StateOf(session))
	})

	done := make(chan error)
	go func() { done <- store.CheckAuth(context.Background()) }()

	require.Eventually(t, func() bool { return store.Snapshot().Loading }, timeout, tick)
	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{Loading, Authenticated}, states)
}

func TestLogout_DiscardsStaleCheckAuth(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{me: func(context.Context) (*models.User, error) {
		<-release
		return alice, nil
	}}
	storage := persisted(t, "t0")
	store := NewStore(api, storage)

	done := make(chan error)
	go func() { done <- store.CheckAuth(context.Background()) }()
	require.Eventually(t, func() bool { return api.calls() == 1 }, timeout, tick)

	store.Logout()
	close(release)

	assert.ErrorIs(t, <-done, ErrSuperseded)

	session := store.Snapshot()
	assert.False(t, session.IsAuthenticated)
	assert.Nil(t, session.User)
	assert.Empty(t, session.Token)
	assert.Empty(t, api.currentToken())

	stored, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, stored.Token)
}

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{login: func(email, password string) (*models.TokenResponse, error) {
		return &models.TokenResponse{AccessToken: "t1", User: alice}, nil
	}}
	storage := sessions.NewMemoryStorage()
	store := NewStore(api, storage)

	require.NoError(t, store.Login(context.Background(), "alice@example.com", "secret"))

	session := store.Snapshot()
	assert.Equal(t, Authenticated, StateOf(session))
	assert.Equal(t, "t1", session.Token)
	assert.Equal(t, alice.Email, session.User.Email)
	assert.Equal(t, "t1", api.currentToken())

	stored, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, stored.Token)
	assert.Equal(t, "t1", *stored.Token)
}

func TestLogin_Failure(t *testing.T) {
	loginErr := &common.APIError{Kind: common.AuthFailure, StatusCode: http.StatusUnauthorized}
	api := &fakeAPI{login: func(email, password string) (*models.TokenResponse, error) {
		return nil, loginErr
	}}
	store := NewStore(api, sessions.NewMemoryStorage())

	err := store.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, loginErr)

	session := store.Snapshot()
	assert.False(t, session.IsAuthenticated)
	assert.False(t, session.Loading)
	assert.Empty(t, session.Token)
	assert.Nil(t, session.User)
}

func TestLogout_Idempotent(t *testing.T) {
	api := &fakeAPI{}
	storage := persisted(t, "t0")
	store := NewStore(api, storage)

	store.Logout()
	store.Logout()

	assert.Equal(t, models.Session{}, store.Snapshot())
	assert.Empty(t, api.currentToken())

	stored, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, models.PersistedSession{}, stored)
}

func TestSetTokenAndSetUser(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, sessions.NewMemoryStorage())

	store.SetToken("t2")
	assert.True(t, store.Snapshot().IsAuthenticated)
	assert.Equal(t, "t2", api.currentToken())

	store.SetUser(alice)
	assert.Equal(t, alice.Email, store.Snapshot().User.Email)
}

func TestRefresh(t *testing.T) {
	renamed := &models.User{ID: "1", Email: "alice@example.com", Name: "Alice L"}
	api := &fakeAPI{refresh: func() (*models.TokenResponse, error) {
		return &models.TokenResponse{AccessToken: "t3", User: renamed}, nil
	}}
	store := NewStore(api, persisted(t, "t0"))

	require.NoError(t, store.Refresh(context.Background()))
	session := store.Snapshot()
	assert.Equal(t, "t3", session.Token)
	assert.Equal(t, "Alice L", session.User.Name)
	assert.Equal(t, "t3", api.currentToken())
}

func TestRefresh_FailureKeepsSession(t *testing.T) {
	api := &fakeAPI{refresh: func() (*models.TokenResponse, error) {
		return nil, errors.New("boom")
	}}
	store := NewStore(api, persisted(t, "t0"))

	require.Error(t, store.Refresh(context.Background()))
	assert.Equal(t, "t0", store.Snapshot().Token)
}

func TestRehydrate_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	api := &fakeAPI{login: func(email, password string) (*models.TokenResponse, error) {
		return &models.TokenResponse{AccessToken: "t1", User: alice}, nil
	}}

	first := NewStore(api, sessions.NewFileStorage(dir))
	require.NoError(t, first.Login(context.Background(), "alice@example.com", "secret"))
	want := first.Snapshot()

	second := NewStore(&fakeAPI{}, sessions.NewFileStorage(dir))
	got := second.Snapshot()

	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.IsAuthenticated, got.IsAuthenticated)
	assert.Equal(t, want.User.Email, got.User.Email)
	assert.False(t, got.Loading)
}

func TestNewStore_CorruptStorageStartsEmpty(t *testing.T) {
	storage := sessions.NewMemoryStorage()
	storage.SetRaw([]byte("not json"))

	store := NewStore(&fakeAPI{}, storage)
	assert.Equal(t, models.Session{}, store.Snapshot())
}

func TestStore_Rehydrate(t *testing.T) {
	storage := sessions.NewMemoryStorage()
	api := &fakeAPI{}
	store := NewStore(api, storage)

	require.NoError(t, storage.Save(models.Session{User: alice, Token: "other", IsAuthenticated: true}.Persisted()))
	store.Rehydrate()

	assert.Equal(t, "other", store.Snapshot().Token)
	assert.Equal(t, "other", api.currentToken())
}

func TestStore_WithHTTPClient(t *testing.T) {
	var lastAuthorization atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuthorization.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case client.AuthLoginPath:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "server-token",
				"token_type":   "bearer",
				"user":         map[string]any{"id": 7, "email": "alice@example.com", "name": "Alice"},
			})
		case client.PromptsPath:
			_ = json.NewEncoder(w).Encode(map[string]any{"prompts": []any{}, "total": 0})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"detail": "Could not validate credentials"})
		}
	}))
	defer server.Close()

	storage := sessions.NewMemoryStorage()
	redirector := notify.NewLoginRequired(nil)
	api := client.New(client.Options{
		BaseURL:  server.URL,
		Sessions: storage,
		Failures: notify.NewDispatcher(nil, redirector, storage),
	})
	store := NewStore(api, storage)

	require.NoError(t, store.Login(context.Background(), "alice@example.com", "secret"))
	assert.Equal(t, models.ID("7"), store.Snapshot().User.ID)

	_, err := api.Request(context.Background(), http.MethodGet, client.PromptsPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer server-token", lastAuthorization.Load())

	err = store.CheckAuth(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.True(t, redirector.Required())
	assert.False(t, store.Snapshot().IsAuthenticated)

	stored, loadErr := storage.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, stored.Token)
}

func TestStore_RejectedCredentialsKeepOriginalError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"detail": "Incorrect email or password"})
	}))
	defer server.Close()

	storage := sessions.NewMemoryStorage()
	var store *Store
	redirector := notify.NewLoginRequired(func() {
		store.Expire()
	})
	api := client.New(client.Options{
		BaseURL:  server.URL,
		Sessions: storage,
		Failures: notify.NewDispatcher(nil, redirector, storage),
	})
	store = NewStore(api, storage)

	err := store.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrSuperseded)
	assert.True(t, redirector.Required())
	assert.Equal(t, Anonymous, StateOf(store.Snapshot()))

	redirector.Reset()
	store.SetToken("stale-token")

	err = store.CheckAuth(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrSuperseded)
	assert.True(t, redirector.Required())

	session := store.Snapshot()
	assert.False(t, session.IsAuthenticated)
	assert.False(t, session.Loading)
	assert.Empty(t, session.Token)
	assert.Empty(t, api.AuthToken())
}

func TestExpire_DoesNotSupersedeInFlightCall(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, sessions.NewMemoryStorage())
	store.SetToken("abc")

	api.me = func(ctx context.Context) (*models.User, error) {
		store.Expire()
		return nil, common.ErrUnauthorized
	}

	err := store.CheckAuth(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrSuperseded)
	assert.False(t, store.Snapshot().HasToken())
}
