package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeTokens) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared = true
	return nil
}

func TestTransportAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "tok-1"}
	client := &http.Client{Transport: NewTransport(TransportOptions{Tokens: tokens, BaseURL: srv.URL})}

	resp, err := client.Get(srv.URL + "/products/")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestTransportRefreshesOnceAndRetries(t *testing.T) {
	var refreshCalls atomic.Int32
	var retriedAuth string
	var retriedBody string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"access": "tok-new"}`))
	})
	mux.HandleFunc("/invoices/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Header.Get("Authorization") != "Bearer tok-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		retriedAuth = r.Header.Get("Authorization")
		retriedBody = string(body)
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := &fakeTokens{token: "tok-stale"}
	client := &http.Client{Transport: NewTransport(TransportOptions{Tokens: tokens, BaseURL: srv.URL})}

	resp, err := client.Post(srv.URL+"/invoices/", "application/json", bytes.NewReader([]byte(`{"shop":1}`)))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, "Bearer tok-new", retriedAuth)
	assert.Equal(t, `{"shop":1}`, retriedBody, "retry must replay the original body")
	assert.Equal(t, "tok-new", tokens.Token())

	// The new token is reused; no second refresh for the next call.
	resp, err = client.Post(srv.URL+"/invoices/", "application/json", bytes.NewReader([]byte(`{"shop":2}`)))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestTransportSecondUnauthorizedPropagates(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"access": "tok-new"}`))
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		// Still rejected with the fresh token: permission problem, not expiry.
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := &fakeTokens{token: "tok-stale"}
	client := &http.Client{Transport: NewTransport(TransportOptions{Tokens: tokens, BaseURL: srv.URL})}

	resp, err := client.Get(srv.URL + "/products/")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh, never a loop")
}

func TestTransportRefreshFailureExpiresSession(t *testing.T) {
	var expired atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Refresh token expired"}`))
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := &fakeTokens{token: "tok-stale"}
	client := &http.Client{Transport: NewTransport(TransportOptions{
		Tokens:           tokens,
		BaseURL:          srv.URL,
		OnSessionExpired: func() { expired.Store(true) },
	})}

	_, err := client.Get(srv.URL + "/products/")
	require.Error(t, err)
	assert.True(t, apperror.IsAuth(err))
	assert.True(t, expired.Load(), "session-expired hook must fire")
	assert.True(t, tokens.cleared, "local token must be cleared")
	assert.Empty(t, tokens.Token())
}

func TestTransportRefreshEndpointNeverRefreshesItself(t *testing.T) {
	var refreshCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "tok"}
	client := &http.Client{Transport: NewTransport(TransportOptions{Tokens: tokens, BaseURL: srv.URL})}

	resp, err := client.Post(srv.URL+"/auth/refresh/", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestTransportConcurrent401sShareOneRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"access": "tok-new"}`))
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := &fakeTokens{token: "tok-stale"}
	client := &http.Client{Transport: NewTransport(TransportOptions{Tokens: tokens, BaseURL: srv.URL})}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(srv.URL + "/products/")
			if err == nil {
				resp.Body.Close()
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), refreshCalls.Load(), "stampeding 401s must share one refresh")
}
