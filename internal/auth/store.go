// Package auth manages OAuth2 credentials: loading, interactive consent,
// refresh and persistence.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrTokenNotSet indicates no OAuth token is available yet.
var ErrTokenNotSet = errors.New("no token defined")

// Store is a file-backed credential store. Reading, refreshing and writing
// the token are separate operations so callers decide when each happens.
type Store struct {
	mu    sync.RWMutex
	cfg   *oauth2.Config
	token *oauth2.Token
	path  string

	states map[string]time.Time
}

// NewStore creates a Store, loading a previously persisted token from path
// when the file exists. An empty path disables persistence.
func NewStore(cfg *oauth2.Config, path string) (*Store, error) {
	s := &Store{
		cfg:    cfg,
		path:   path,
		states: make(map[string]time.Time),
	}
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Token file %s doesn't exist yet, will be created on persist", path)

			return s, nil
		}

		return nil, fmt.Errorf("os.Open failed: %w", err)
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("json.NewDecoder.Decode failed: %w", err)
	}
	s.token = token

	return s, nil
}

// OAuthToken returns the current token or ErrTokenNotSet.
func (s *Store) OAuthToken() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return nil, ErrTokenNotSet
	}

	return s.token, nil
}

// Refresh exchanges the refresh token for a fresh access token and replaces
// the stored token. It is a no-op when the current token is still valid.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return ErrTokenNotSet
	}
	if s.token.Valid() {
		return nil
	}

	tok, err := s.cfg.TokenSource(ctx, s.token).Token()
	if err != nil {
		return fmt.Errorf("cfg.TokenSource.Token failed: %w", err)
	}
	s.token = tok

	return nil
}

// RedirectURL generates the OAuth2 consent URL with a fresh random state.
func (s *Store) RedirectURL() (string, error) {
	state, err := s.newState()
	if err != nil {
		return "", fmt.Errorf("newState failed: %w", err)
	}

	return s.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// AuthorizeCode exchanges a consent code for a token after validating state.
func (s *Store) AuthorizeCode(ctx context.Context, code, state string) error {
	if !s.takeState(state) {
		return errors.New("invalid or expired state parameter")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("cfg.Exchange failed: %w", err)
	}
	s.token = tok

	return nil
}

// Persist writes the token to disk. Nothing happens without a token or path.
func (s *Store) Persist() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.path == "" || s.token == nil {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("os.OpenFile failed: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(s.token); err != nil {
		return fmt.Errorf("json.NewEncoder.Encode failed: %w", err)
	}

	return nil
}

func (s *Store) newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.states[state] = now.Add(5 * time.Minute)

	for st, exp := range s.states {
		if exp.Before(now) {
			delete(s.states, st)
		}
	}

	return state, nil
}

// takeState consumes a state value, single use.
func (s *Store) takeState(state string) bool {
	if state == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)

	return !time.Now().After(expiry)
}
