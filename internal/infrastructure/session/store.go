// Package session holds the locally persisted access token.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenFile = "access_token"

// TokenStore keeps the short-lived access token on disk so a restarted
// client resumes its session. The refresh token never passes through here:
// it lives in an HTTP-only cookie managed by the transport's cookie jar.
type TokenStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewTokenStore opens the token store under the given storage directory,
// loading a previously saved token if one exists.
func NewTokenStore(storagePath string) (*TokenStore, error) {
	if err := os.MkdirAll(storagePath, 0o700); err != nil {
		return nil, fmt.Errorf("session: failed to create storage dir: %w", err)
	}

	s := &TokenStore{path: filepath.Join(storagePath, tokenFile)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("session: failed to read token file: %w", err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token returns the stored access token, or "" when logged out.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set persists a new access token.
func (s *TokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("session: failed to write token file: %w", err)
	}
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: failed to remove token file: %w", err)
	}
	return nil
}

// ExpiresAt peeks at the token's exp claim without verifying the
// signature. Verification is the server's job; the client only uses this
// for display and diagnostics.
func (s *TokenStore) ExpiresAt() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// ExpiresSoon reports whether the token expires within the given window.
// Unreadable tokens count as expiring so callers err on the refresh side.
func (s *TokenStore) ExpiresSoon(within time.Duration) bool {
	if s.Token() == "" {
		return false
	}
	exp, ok := s.ExpiresAt()
	if !ok {
		return true
	}
	return time.Until(exp) < within
}
