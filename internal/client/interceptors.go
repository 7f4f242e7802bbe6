package client

import (
	"errors"

	"github.com/aipo-io/cli/internal/common"
	"github.com/aipo-io/cli/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// beforeRequest attaches the persisted bearer token. A persisted session
// that cannot be read is logged and the request proceeds without it.
func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	if len(req.Header.Get(RequestIDHeader)) == 0 {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}

	if c.sessions == nil {
		return nil
	}

	state, err := c.sessions.Load()
	if err != nil {
		logrus.WithError(err).Errorln("Error parsing auth storage")
		return nil
	}

	if state.Token != nil && len(*state.Token) > 0 {
		req.SetAuthToken(*state.Token)
	}

	return nil
}

// afterResponse turns every error status into an APIError, runs the failure
// handler and fails the request with it.
func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}

	apiErr := newResponseError(resp)

	logrus.WithFields(logrus.Fields{
		"method":    apiErr.Method,
		"path":      apiErr.Path,
		"status":    apiErr.StatusCode,
		"kind":      apiErr.Kind.String(),
		"requestId": apiErr.RequestID,
	}).Debugln("Request failed")

	c.handleFailure(apiErr)

	return apiErr
}

// onError sees every failed request. Those without a response are transport
// failures; the rest were already handled in afterResponse.
func (c *Client) onError(req *resty.Request, err error) {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return
	}

	transportErr := newTransportError(req, err)

	logrus.WithFields(logrus.Fields{
		"method":    transportErr.Method,
		"path":      transportErr.Path,
		"requestId": transportErr.RequestID,
	}).WithError(err).Debugln("Request failed without a response")

	c.handleFailure(transportErr)
}

func (c *Client) handleFailure(err *common.APIError) {
	if c.failures != nil {
		c.failures.HandleFailure(err)
	}
}

func newResponseError(resp *resty.Response) *common.APIError {
	status := resp.StatusCode()
	kind := common.ClassifyStatus(status)
	detail, fields := models.ParseErrorBody(resp.Body())

	apiErr := &common.APIError{
		Kind:       kind,
		StatusCode: status,
		Detail:     detail,
		Fields:     fields,
		Message:    common.DescribeFailure(kind, detail, fields),
		Err:        errors.New(resp.Status()),
	}

	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.Path = requestPath(resp.Request)
		apiErr.RequestID = resp.Request.Header.Get(RequestIDHeader)
	}

	return apiErr
}

func newTransportError(req *resty.Request, err error) *common.APIError {
	var responseErr *resty.ResponseError
	if errors.As(err, &responseErr) && responseErr.Err != nil {
		err = responseErr.Err
	}

	apiErr := &common.APIError{
		Kind:    common.TransportFailure,
		Message: common.DescribeFailure(common.TransportFailure, "", nil),
		Err:     err,
	}

	if req != nil {
		apiErr.Method = req.Method
		apiErr.Path = requestPath(req)
		apiErr.RequestID = req.Header.Get(RequestIDHeader)
	}

	return apiErr
}

// asAPIError makes sure callers always receive an *common.APIError.
func asAPIError(req *resty.Request, err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return newTransportError(req, err)
}

func requestPath(req *resty.Request) string {
	if req.RawRequest != nil && req.RawRequest.URL != nil {
		return req.RawRequest.URL.Path
	}
	return req.URL
}
