// Package api implements the REST client for the billing backend: the
// session transport plus typed repositories over the product, invoice,
// shop, staff, subscription, and auth endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"golang.org/x/time/rate"

	"github.com/Naveenv26/mobile-bill/internal/config"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

// Client wraps the base URL and the session-aware HTTP client. All
// repositories in this package go through its helpers, so every call is
// authenticated, rate limited, and error-classified the same way.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds the API client. The cookie jar holds the HTTP-only
// refresh cookie; the session transport shares it for refresh calls.
func NewClient(cfg *config.APIConfig, tokens TokenSource, onSessionExpired func()) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create cookie jar: %w", err)
	}

	transport := NewTransport(TransportOptions{
		Tokens:           tokens,
		Limiter:          rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		BaseURL:          cfg.BaseURL,
		Jar:              jar,
		OnSessionExpired: onSessionExpired,
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// NewClientWithHTTP builds a Client around a prepared http.Client. Used by
// tests to point at an httptest server.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any, headers map[string]string) error {
	return c.do(ctx, http.MethodPost, path, body, out, headers)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do runs one API call: encodes the body, classifies failures per the
// client error taxonomy, and decodes 2xx responses into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if apperror.IsAppError(err) {
			return apperror.GetAppError(err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return apperror.NewNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return apperror.NewNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperror.FromResponse(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: failed to decode response: %w", err)
	}
	return nil
}

// getList decodes endpoints that return either a bare JSON array or a
// paginated {"results": [...]} envelope.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("api: failed to decode list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("api: failed to decode paginated list: %w", err)
	}
	return envelope.Results, nil
}
