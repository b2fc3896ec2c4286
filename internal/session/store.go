// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lapor/internal/logging"
)

// ErrNoToken is returned when no access token is stored.
var ErrNoToken = errors.New("no access token stored")

// Store holds the current access token. It is safe for concurrent use: one
// writer (login/logout) and any number of readers.
type Store struct {
	mu        sync.RWMutex
	token     string
	persister Persister
	logger    zerolog.Logger
}

// NewStore creates an empty store backed by p. A nil p keeps the token in memory only.
func NewStore(p Persister) *Store {
	if p == nil {
		p = NewMemoryPersister()
	}
	return &Store{
		persister: p,
		logger:    logging.WithComponent("session"),
	}
}

// AccessToken returns the current token, or "" when no session exists.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a session exists.
func (s *Store) HasToken() bool {
	return s.AccessToken() != ""
}

// PutAccessToken persists token and then publishes it to readers.
// If persistence fails the in-memory token is left untouched.
func (s *Store) PutAccessToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("put access token: %w", ErrNoToken)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, token); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	s.token = token

	s.logger.Debug().Str("token", logging.RedactToken(token)).Msg("Access token stored")
	return nil
}

// Clear removes the token from the persister and from memory.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Delete(ctx); err != nil {
		return fmt.Errorf("delete access token: %w", err)
	}
	s.token = ""

	s.logger.Debug().Msg("Access token cleared")
	return nil
}

// Restore loads a previously persisted token. A missing token is not an error.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.persister.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore access token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.logger.Debug().Str("token", logging.RedactToken(token)).Msg("Access token restored")
	return nil
}
