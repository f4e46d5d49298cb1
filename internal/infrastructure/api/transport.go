package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

const refreshPath = "/auth/refresh/"

// TokenSource is the transport's view of the access-token store.
type TokenSource interface {
	Token() string
	Set(token string) error
	Clear() error
}

// Transport is an http.RoundTripper that makes every API call
// authenticated and self-healing across access-token expiry.
//
// Outbound: attaches the stored access token as a bearer credential and
// waits on the client-side rate limiter. Inbound: on a 401 for any path
// other than the refresh endpoint it performs exactly one silent refresh
// and resubmits the original request once with the new token. A 401 on the
// retried request, or from the refresh endpoint itself, propagates
// unchanged. Refresh failure clears local session state and fires the
// session-expired hook.
//
// Retry state is purely structural: nothing is flagged on the request
// object, so concurrent callers can share requests safely.
type Transport struct {
	base    http.RoundTripper
	tokens  TokenSource
	limiter *rate.Limiter

	refreshURL string
	// refreshClient shares the cookie jar with the main client so the
	// refresh call carries the HTTP-only refresh cookie.
	refreshClient *http.Client

	onSessionExpired func()

	// mu serializes refresh attempts; concurrent 401s share one refresh.
	mu sync.Mutex
}

// TransportOptions configures a Transport.
type TransportOptions struct {
	Base             http.RoundTripper
	Tokens           TokenSource
	Limiter          *rate.Limiter
	BaseURL          string
	Jar              http.CookieJar
	OnSessionExpired func()
}

// NewTransport creates the session transport.
func NewTransport(opts TransportOptions) *Transport {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Transport{
		base:       base,
		tokens:     opts.Tokens,
		limiter:    limiter,
		refreshURL: strings.TrimRight(opts.BaseURL, "/") + refreshPath,
		refreshClient: &http.Client{
			Transport: base,
			Jar:       opts.Jar,
		},
		onSessionExpired: opts.OnSessionExpired,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	usedToken := t.tokens.Token()
	resp, err := t.base.RoundTrip(t.withToken(req, usedToken))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// The refresh endpoint's own 401 must never trigger another refresh.
	if strings.HasSuffix(req.URL.Path, refreshPath) {
		return resp, nil
	}

	// A request whose body cannot be replayed cannot be retried.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	newToken, refreshErr := t.refresh(req, usedToken)
	if refreshErr != nil {
		drain(resp)
		t.expireSession()
		return nil, refreshErr
	}

	drain(resp)
	return t.base.RoundTrip(t.withToken(req, newToken))
}

// withToken clones the request with a replayed body and the given bearer
// token attached. An empty token leaves the authorization header untouched.
func (t *Transport) withToken(req *http.Request, token string) *http.Request {
	clone := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			clone.Body = body
		}
	}
	if token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	return clone
}

// refresh calls the refresh endpoint and persists the new access token.
// usedToken is the token the failing request carried: if another caller
// already refreshed while we waited on the lock, its token is reused
// instead of burning a second refresh.
func (t *Transport) refresh(origin *http.Request, usedToken string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current := t.tokens.Token(); current != "" && current != usedToken {
		return current, nil
	}

	req, err := http.NewRequestWithContext(origin.Context(), http.MethodPost, t.refreshURL, nil)
	if err != nil {
		return "", fmt.Errorf("api: failed to build refresh request: %w", err)
	}

	resp, err := t.refreshClient.Do(req)
	if err != nil {
		return "", apperror.NewNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperror.NewNetworkError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperror.FromResponse(resp.StatusCode, body)
	}

	var payload struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Access == "" {
		return "", apperror.NewAuthError("Token refresh returned no access token")
	}

	if err := t.tokens.Set(payload.Access); err != nil {
		return "", err
	}
	return payload.Access, nil
}

func (t *Transport) expireSession() {
	_ = t.tokens.Clear()
	if t.onSessionExpired != nil {
		t.onSessionExpired()
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}
