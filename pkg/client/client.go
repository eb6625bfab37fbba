package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikogura/portfolio-admin/pkg/logging"
	"github.com/nikogura/portfolio-admin/pkg/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the local Portfolio API.
	DefaultBaseURL = "http://localhost:8000/api/v1"
	// DefaultTimeout applies to every request. CV extraction is the slow one.
	DefaultTimeout = 120 * time.Second
	// UserAgent identifies this client to the backend.
	UserAgent = "portfolio-admin/1.0"
)

// Requester issues a request and decodes the response into out.
type Requester interface {
	Do(ctx context.Context, req Request, out interface{}) (err error)
}

// Request describes one call against the backend.
// Body is JSON-encoded unless it is a *Multipart.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   interface{}
}

// Client talks to the Portfolio REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store
	logger     *zap.Logger
}

// NewClient creates a client for baseURL. The store supplies the bearer token, if any.
func NewClient(baseURL string, store storage.Store, logger *zap.Logger) (client *Client) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if store == nil {
		store = storage.NewMemory(nil)
	}
	client = &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		logger:  logging.OrNop(logger),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	return client
}

// SetTimeout replaces the per-request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() (baseURL string) {
	baseURL = c.baseURL
	return baseURL
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) (err error) {
	err = c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
	return err
}

// Post issues a POST request with body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) (err error) {
	err = c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
	return err
}

// Put issues a PUT request with body.
func (c *Client) Put(ctx context.Context, path string, body interface{}, out interface{}) (err error) {
	err = c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
	return err
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) (err error) {
	err = c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
	return err
}

// Do sends req and decodes a successful JSON response into out.
// 204 responses leave out untouched. Non-2xx responses return *APIError.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) (err error) {
	err = c.do(ctx, req, out)
	if err != nil {
		c.logger.Warn("API request error",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err))
	}
	return err
}

func (c *Client) do(ctx context.Context, req Request, out interface{}) (err error) {
	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	header := http.Header{}
	for k, v := range req.Header {
		header[k] = append([]string(nil), v...)
	}

	var body io.Reader
	body, err = encodeBody(req.Body, header)
	if err != nil {
		return err
	}

	if token := c.store.Get(storage.KeyAuthToken); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	header.Set("User-Agent", UserAgent)

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return err
	}
	httpReq.Header = header

	c.logger.Debug("API request", zap.String("method", req.Method), zap.String("url", endpoint))

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = newAPIError(resp.StatusCode, respBody)
		return err
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return err
	}

	err = json.Unmarshal(respBody, out)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse response from %s %s", req.Method, req.Path)
		return err
	}

	return err
}

// encodeBody serialises body and fixes up the content type in header.
func encodeBody(body interface{}, header http.Header) (reader io.Reader, err error) {
	if body == nil {
		return reader, err
	}

	if form, ok := body.(*Multipart); ok {
		// the boundary-bearing type replaces whatever the caller set
		header.Del("Content-Type")
		var contentType string
		reader, contentType, err = form.encode()
		if err != nil {
			return reader, err
		}
		header.Set("Content-Type", contentType)
		return reader, err
	}

	var data []byte
	data, err = json.Marshal(body)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return reader, err
	}

	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}

	reader = bytes.NewReader(data)
	return reader, err
}
