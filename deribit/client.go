// Copyright (c) 2025 cdrappi

package deribit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// privatePrefix routes actions to the authenticated POST path.
const privatePrefix = "/api/v1/private/"

// signatureHeader is assigned directly into the header map so that the name
// keeps the exact case the server verifies against.
const signatureHeader = "x-deribit-sig"

type Client struct {
	opts Options

	key, secret string

	base *url.URL

	client *http.Client
}

// New returns a client for the exchange REST API. Key and secret may be
// empty for public-only use.
func New(key, secret string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = new(Options)
	}
	if err := opts.Check(); err != nil {
		return nil, err
	}
	base, err := url.Parse(opts.RestURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rest url %q: %w", opts.RestURL, err)
	}
	c := &Client{
		opts:   *opts,
		key:    key,
		secret: secret,
		base:   base,
		client: &http.Client{
			Timeout: opts.HttpClientTimeout,
		},
	}
	return c, nil
}

// Close releases the client's idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Result is the unwrapped payload portion of a response envelope. Raw holds
// the "result" field when the server returned one; otherwise Message carries
// the server message, or "Ok" when the server acknowledged without data.
type Result struct {
	Raw     json.RawMessage
	Message string
}

// Do performs one REST call against the exchange and unwraps the response
// envelope. Actions under /api/v1/private/ are signed and sent as
// form-encoded POST requests; all other actions are unauthenticated GET
// requests with query-string parameters.
func (c *Client) Do(ctx context.Context, action string, params Params) (*Result, error) {
	if strings.HasPrefix(action, privatePrefix) {
		return c.post(ctx, action, params)
	}
	return c.get(ctx, action, params)
}

func (c *Client) get(ctx context.Context, action string, params Params) (*Result, error) {
	addrURL := c.base.JoinPath(action)
	addrURL.RawQuery = params.form().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addrURL.String(), nil)
	if err != nil {
		slog.Error("could not create http get request with context", "url", addrURL, "err", err)
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not perform http get request", "url", addrURL, "err", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	return unwrap(resp, addrURL)
}

func (c *Client) post(ctx context.Context, action string, params Params) (*Result, error) {
	if len(c.key) == 0 || len(c.secret) == 0 {
		return nil, fmt.Errorf("%s: %w", action, ErrCredentials)
	}

	signature := c.sign(action, params, time.Now().UnixMilli())

	addrURL := c.base.JoinPath(action)
	body := params.form().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addrURL.String(), strings.NewReader(body))
	if err != nil {
		slog.Error("could not create http post request with context", "url", addrURL, "err", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header[signatureHeader] = []string{signature}

	resp, err := c.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not perform http post request", "url", addrURL, "err", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	return unwrap(resp, addrURL)
}

// unwrap normalizes a server reply into a Result or one of the error kinds.
func unwrap(resp *http.Response, addrURL *url.URL) (*Result, error) {
	if resp.StatusCode != http.StatusOK {
		slog.Error("http request is unsuccessful", "status", resp.StatusCode, "url", addrURL)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("could not read response body", "url", addrURL, "err", err)
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Error("could not unmarshal response envelope", "response", string(data), "err", err)
		return nil, err
	}

	if env.Success != nil && !*env.Success {
		msg := ""
		if env.Message != nil {
			msg = *env.Message
		}
		return nil, &APIError{Message: msg}
	}

	if len(env.Result) != 0 && string(env.Result) != "null" {
		return &Result{Raw: env.Result}, nil
	}
	if env.Message != nil {
		return &Result{Message: *env.Message}, nil
	}
	return &Result{Message: "Ok"}, nil
}

func call[PT *T, T any](ctx context.Context, c *Client, action string, params Params, result PT) error {
	res, err := c.Do(ctx, action, params)
	if err != nil {
		return err
	}
	if len(res.Raw) == 0 {
		return fmt.Errorf("response for %s has no result payload", action)
	}
	if err := json.Unmarshal(res.Raw, result); err != nil {
		slog.Error("could not decode result payload", "action", action, "err", err)
		return err
	}
	return nil
}
