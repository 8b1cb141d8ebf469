// HTTP client for the music catalog REST API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicadm/internal/shared"
)

// ClientOpts configures a [Client]. Zero values fall back to defaults.
type ClientOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
	Notifier   Notifier
	Envelope   string
}

// Client performs JSON requests against the catalog API.
//
// Every failed request passes through [Normalize], is logged at error level, and raises an error [Notification].
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	notifier   Notifier
	envelope   string
}

// NewClient creates a new [Client] from opts.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = shared.DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Envelope == "" {
		opts.Envelope = shared.EnvelopeData
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		notifier:   opts.Notifier,
		envelope:   opts.Envelope,
	}
}

// BaseURL returns the API root every path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs a GET request to path and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodGet, path, query, body, out)
}

// Post performs a POST request with body encoded as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// Patch performs a PATCH request with body encoded as JSON and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, query, body, out)
}

// Delete performs a DELETE request to path.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, query, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", shared.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("request", "method", method, "url", fullURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(ctx, method, path, 0, nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(ctx, method, path, 0, nil, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(ctx, method, path, resp.StatusCode, respBody, nil)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("failed to decode response", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// fail normalizes the failure, logs it, and notifies unless the caller has gone away.
func (c *Client) fail(ctx context.Context, method, path string, status int, body []byte, cause error) error {
	apiErr := Normalize(status, body, cause)

	c.logger.Error("API error", "method", method, "path", path, "status", apiErr.Status, "message", apiErr.Message, "data", apiErr.Data)

	if ctx.Err() == nil {
		n := NewNotification(LevelError, apiErr.Message)
		n.Status = apiErr.Status
		c.notifier.Notify(ctx, n)
	}
	return apiErr
}

// getList decodes a list response according to the configured envelope mode.
//
// The result is never nil.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var items []T
	if c.envelope == shared.EnvelopeBare {
		if err := c.Get(ctx, path, query, nil, &items); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Data []T `json:"data"`
		}
		if err := c.Get(ctx, path, query, nil, &envelope); err != nil {
			return nil, err
		}
		items = envelope.Data
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}
