// Package client is the HTTP client for the AI Prompt Optimizer API.
//
// Every request passes through two interceptors. The outbound one attaches
// the persisted bearer token. The inbound one classifies failures, hands them
// to the configured notify.FailureHandler and re-raises them as
// *common.APIError so callers can still branch on them.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/models"
	"github.com/aipo-io/cli/internal/notify"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "http://localhost:8000/api/v1"
	DefaultTimeout = 30 * time.Second

	RequestIDHeader = "X-Request-ID"
	ClientIDHeader  = "X-Client-ID"
)

// SessionReader is the read side of the persisted session.
type SessionReader interface {
	Load() (models.PersistedSession, error)
}

type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Sessions SessionReader
	Failures notify.FailureHandler

	// HTTPClient overrides the underlying transport, mostly for tests.
	HTTPClient *http.Client
}

type Client struct {
	rest     *resty.Client
	sessions SessionReader
	failures notify.FailureHandler
}

func New(opts Options) *Client {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if len(baseURL) == 0 {
		baseURL = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var rest *resty.Client
	if opts.HTTPClient != nil {
		rest = resty.NewWithClient(opts.HTTPClient)
	} else {
		rest = resty.New()
	}

	rest.SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", common.GetUserAgent()).
		SetHeader(ClientIDHeader, common.GetClientIdentifier().String())

	c := &Client{
		rest:     rest,
		sessions: opts.Sessions,
		failures: opts.Failures,
	}

	rest.OnBeforeRequest(c.beforeRequest)
	rest.OnAfterResponse(c.afterResponse)
	rest.OnError(c.onError)

	return c
}

// BaseURL is the API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

// SetAuthToken sets the default bearer token, used when no persisted token
// is found at request time.
func (c *Client) SetAuthToken(token string) {
	c.rest.SetAuthToken(token)
}

// ClearAuthToken removes the default bearer token.
func (c *Client) ClearAuthToken() {
	c.rest.SetAuthToken("")
}

// AuthToken returns the default bearer token.
func (c *Client) AuthToken() string {
	return c.rest.Token
}

// Request performs method on path with an optional JSON body. Failures are
// returned as *common.APIError after the failure handler has run.
func (c *Client) Request(ctx context.Context, method string, path string, body any) (*resty.Response, error) {
	return c.request(ctx, method, path, body, nil)
}

func (c *Client) request(ctx context.Context, method string, path string, body any, query map[string]string) (*resty.Response, error) {
	req := c.rest.R().SetContext(ctx)

	if body != nil {
		req.SetBody(body)
	}

	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(strings.ToUpper(method), path)
	if err != nil {
		return resp, asAPIError(req, err)
	}

	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (*resty.Response, error) {
	return c.request(ctx, http.MethodGet, path, nil, query)
}

func (c *Client) post(ctx context.Context, path string, body any) (*resty.Response, error) {
	return c.request(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) put(ctx context.Context, path string, body any) (*resty.Response, error) {
	return c.request(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.request(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// decode validates a successful response body against T.
func decode[T any](resp *resty.Response, schema string) (*T, error) {
	item, err := models.Decode[T](schema, resp.Body())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"url":    resp.Request.URL,
			"schema": schema,
		}).WithError(err).Errorln("Failed to decode response")
		return nil, err
	}
	return item, nil
}

func validateOutgoing(name string, body interface{ Validate() error }) error {
	if err := body.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}
