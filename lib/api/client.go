// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/poskit/poskit/lib/clock"
)

// ErrUnauthorized is returned by every client method when the backend
// answers 401. The configured unauthorized hook has already run by
// the time the caller sees it; callers navigate, they do not notify.
var ErrUnauthorized = errors.New("api: unauthorized")

// Options configures a Client.
type Options struct {
	// BaseURL is the backend base URL without a trailing slash.
	BaseURL string

	// HTTPClient overrides the transport. Nil means a default
	// http.Client; tests point this at an httptest.Server.
	HTTPClient *http.Client

	// TokenSource returns the current bearer token, or "" when the
	// session holds none. Consulted before every request so a tenant
	// switch takes effect immediately.
	TokenSource func() string

	// OnUnauthorized runs once per 401 response, before the method
	// returns ErrUnauthorized. The session store's purge hook goes
	// here.
	OnUnauthorized func()

	// OnLoading receives busy-indicator transitions: 1 when the
	// indicator should show, 0 when it may hide. Hiding is delayed so
	// the indicator stays visible for the minimum display window.
	OnLoading func(active int)

	// Clock drives the minimum-display timer. Nil means clock.Real().
	Clock clock.Clock
}

// Client is the typed HTTP client for the POS backend.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokenSource    func() string
	onUnauthorized func()
	loader         *loaderState
}

// New creates a Client from options.
func New(options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(options.BaseURL, "/"),
		tokenSource:    options.TokenSource,
		onUnauthorized: options.OnUnauthorized,
		loader:         newLoaderState(clk, options.OnLoading),
	}
}

// post performs one backend exchange: marshal the payload, attach the
// bearer token, count the request in flight, and decode the envelope
// response into out. All endpoints are POST; the backend fronts
// stored procedures and does not use HTTP verbs for semantics.
func (client *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", path, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	request.Header.Set("Content-Type", "application/json")
	if client.tokenSource != nil {
		if token := client.tokenSource(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	client.loader.start()
	response, err := client.httpClient.Do(request)
	client.loader.stop()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		// Drain so the connection can be reused, then purge.
		io.Copy(io.Discard, response.Body)
		if client.onUnauthorized != nil {
			client.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("%s: HTTP %d: %s", path, response.StatusCode, errorBody(response.Body))
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}

// errorBody extracts a short excerpt of an error response body for
// inclusion in error messages.
func errorBody(body io.Reader) string {
	const limit = 512
	data, err := io.ReadAll(io.LimitReader(body, limit))
	if err != nil || len(data) == 0 {
		return "(no body)"
	}
	return strings.TrimSpace(string(data))
}
