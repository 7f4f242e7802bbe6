package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/models"
	"github.com/aipo-io/cli/internal/notify"
	"github.com/aipo-io/cli/internal/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedFailures struct {
	mu     sync.Mutex
	errors []*common.APIError
}

func (r *recordedFailures) HandleFailure(err *common.APIError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recordedFailures) all() []*common.APIError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*common.APIError(nil), r.errors...)
}

func persistToken(t *testing.T, storage sessions.Storage, token string) {
	t.Helper()
	require.NoError(t, storage.Save(models.PersistedSession{
		User:            &models.User{ID: "1", Email: "a@b.com"},
		Token:           &token,
		IsAuthenticated: true,
	}))
}

func newTestClient(t *testing.T, handler http.Handler, storage SessionReader, failures notify.FailureHandler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Options{
		BaseURL:  server.URL,
		Sessions: storage,
		Failures: failures,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestRequest_AttachesPersistedToken(t *testing.T) {
	storage := sessions.NewMemoryStorage()
	persistToken(t, storage, "persisted-token")

	var authorization, requestID, clientID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		requestID = r.Header.Get(RequestIDHeader)
		clientID = r.Header.Get(ClientIDHeader)
		writeJSON(w, http.StatusOK, map[string]any{})
	}), storage, nil)

	_, err := client.Request(context.Background(), http.MethodGet, "/analytics/usage", nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer persisted-token", authorization)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, common.GetClientIdentifier().String(), clientID)
}

func TestRequest_NoTokenNoHeader(t *testing.T) {
	var authorization string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{})
	}), sessions.NewMemoryStorage(), nil)

	_, err := client.Request(context.Background(), http.MethodGet, "/templates", nil)
	require.NoError(t, err)
	assert.Empty(t, authorization)
}

func TestRequest_CorruptStorageProceedsUnauthenticated(t *testing.T) {
	storage := sessions.NewMemoryStorage()
	storage.SetRaw([]byte("{definitely not json"))

	var authorization string
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		authorization = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{})
	}), storage, nil)

	_, err := client.Request(context.Background(), http.MethodGet, "/templates", nil)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, authorization)
}

func TestRequest_PersistedTokenOverridesDefault(t *testing.T) {
	storage := sessions.NewMemoryStorage()

	var seen []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{})
	}), storage, nil)

	client.SetAuthToken("default-token")
	assert.Equal(t, "default-token", client.AuthToken())

	_, err := client.Request(context.Background(), http.MethodGet, "/prompts", nil)
	require.NoError(t, err)

	persistToken(t, storage, "persisted-token")
	_, err = client.Request(context.Background(), http.MethodGet, "/prompts", nil)
	require.NoError(t, err)

	require.NoError(t, storage.Clear())
	client.ClearAuthToken()
	_, err = client.Request(context.Background(), http.MethodGet, "/prompts", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer default-token", "Bearer persisted-token", ""}, seen)
}

func TestRequest_FailureDispatch(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		kind     common.ErrorKind
		message  string
		sentinel error
	}{
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     map[string]any{"detail": "Not enough permissions"},
			kind:     common.PermissionFailure,
			message:  common.MessageAccessDenied,
			sentinel: common.ErrForbidden,
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     map[string]any{"detail": "Prompt not found"},
			kind:     common.NotFound,
			message:  common.MessageNotFound,
			sentinel: common.ErrNotFound,
		},
		{
			name:   "validation with field errors",
			status: http.StatusUnprocessableEntity,
			body: map[string]any{"detail": []map[string]any{
				{"loc": []any{"body", "email"}, "msg": "value is not a valid email address", "type": "value_error.email"},
				{"loc": []any{"body", "password"}, "msg": "field required", "type": "value_error.missing"},
			}},
			kind:     common.ValidationFailure,
			message:  "value is not a valid email address, field required",
			sentinel: common.ErrValidation,
		},
		{
			name:     "validation without structured body",
			status:   http.StatusUnprocessableEntity,
			body:     map[string]any{"detail": "bad input"},
			kind:     common.ValidationFailure,
			message:  common.MessageValidation,
			sentinel: common.ErrValidation,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     map[string]any{},
			kind:     common.RateLimited,
			message:  common.MessageRateLimited,
			sentinel: common.ErrRateLimited,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     map[string]any{"detail": "traceback"},
			kind:     common.ServerFailure,
			message:  common.MessageServerError,
			sentinel: common.ErrServer,
		},
		{
			name:     "other status with detail",
			status:   http.StatusBadRequest,
			body:     map[string]any{"detail": "Email already registered"},
			kind:     common.UnknownFailure,
			message:  "Email already registered",
			sentinel: common.ErrUnexpected,
		},
		{
			name:     "other status without detail",
			status:   http.StatusBadGateway,
			body:     "upstream unavailable",
			kind:     common.UnknownFailure,
			message:  common.MessageUnexpected,
			sentinel: common.ErrUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := &recordedFailures{}
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}), sessions.NewMemoryStorage(), failures)

			_, err := client.Request(context.Background(), http.MethodPost, "/prompts", map[string]string{"original_prompt": "x"})
			require.Error(t, err)

			var apiErr *common.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, http.MethodPost, apiErr.Method)
			assert.Equal(t, "/prompts", apiErr.Path)
			assert.NotEmpty(t, apiErr.RequestID)
			assert.ErrorIs(t, err, tt.sentinel)

			handled := failures.all()
			require.Len(t, handled, 1)
			assert.Equal(t, apiErr.Kind, handled[0].Kind)
			assert.Equal(t, apiErr.Message, handled[0].Message)
		})
	}
}

func TestRequest_UnauthorizedClearsSessionAndRedirects(t *testing.T) {
	for _, path := range []string{AuthMePath, PromptsPath, AnalyticsDashboardPath} {
		t.Run(path, func(t *testing.T) {
			storage := sessions.NewMemoryStorage()
			persistToken(t, storage, "expired-token")

			redirector := notify.NewLoginRequired(nil)
			dispatcher := notify.NewDispatcher(nil, redirector, storage)

			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
			}), storage, dispatcher)

			_, err := client.Request(context.Background(), http.MethodGet, path, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrUnauthorized)
			assert.True(t, common.IsKind(err, common.AuthFailure))

			state, loadErr := storage.Load()
			require.NoError(t, loadErr)
			assert.Nil(t, state.Token)
			assert.False(t, state.IsAuthenticated)
			assert.True(t, redirector.Required())
		})
	}
}

func TestRequest_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	failures := &recordedFailures{}
	client := New(Options{
		BaseURL:  baseURL,
		Sessions: sessions.NewMemoryStorage(),
		Failures: failures,
	})

	_, err := client.Request(context.Background(), http.MethodGet, "/prompts", nil)
	require.Error(t, err)

	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, common.TransportFailure, apiErr.Kind)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Equal(t, common.MessageNetworkError, apiErr.Message)
	assert.ErrorIs(t, err, common.ErrTransport)

	handled := failures.all()
	require.Len(t, handled, 1)
	assert.Equal(t, common.TransportFailure, handled[0].Kind)
}

func TestRequest_CancelledContextIsTransportFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Request(ctx, http.MethodGet, "/prompts", nil)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.TransportFailure))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Defaults(t *testing.T) {
	client := New(Options{})
	assert.Equal(t, DefaultBaseURL, client.BaseURL())

	client = New(Options{BaseURL: "https://api.example.com/api/v1/"})
	assert.Equal(t, "https://api.example.com/api/v1", client.BaseURL())
}
