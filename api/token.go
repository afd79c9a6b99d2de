package api

import (
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore holds the current access token in memory. It is the single
// authoritative copy process-wide: the request decorator reads it, login and
// refresh write it, logout and failed refreshes clear it. The token is never
// persisted to disk.
type TokenStore struct {
	mu  sync.Mutex
	tok *oauth2.Token
}

// Set replaces the current token.
func (s *TokenStore) Set(tok *oauth2.Token) {
	s.mu.Lock()
	s.tok = tok
	s.mu.Unlock()
}

// Get returns the current token, or nil when unauthenticated.
func (s *TokenStore) Get() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

// Clear drops the current token.
func (s *TokenStore) Clear() {
	s.Set(nil)
}
