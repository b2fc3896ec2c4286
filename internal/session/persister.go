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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/lapor/internal/config"
)

// Persister stores the access token outside the process.
type Persister interface {
	// Load returns the stored token or ErrNoToken.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
	Close() error
}

// PersisterType selects a Persister backend.
type PersisterType string

const (
	// PersisterMemory keeps the token for the process lifetime only.
	PersisterMemory PersisterType = "memory"

	// PersisterBadger keeps the token in a BadgerDB directory.
	PersisterBadger PersisterType = "badger"
)

// tokenKey is the BadgerDB key holding the token record.
const tokenKey = "auth:access_token"

// tokenRecord is the persisted form of a token.
type tokenRecord struct {
	AccessToken string    `json:"access_token"`
	StoredAt    time.Time `json:"stored_at"`
}

// OpenPersister creates the backend named by cfg.Store.
func OpenPersister(cfg config.SessionConfig) (Persister, error) {
	switch PersisterType(cfg.Store) {
	case PersisterMemory, "":
		return NewMemoryPersister(), nil
	case PersisterBadger:
		return OpenBadgerPersister(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// MemoryPersister is an in-process Persister.
type MemoryPersister struct {
	mu     sync.Mutex
	record *tokenRecord
}

// NewMemoryPersister creates an empty MemoryPersister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load returns the stored token.
func (m *MemoryPersister) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return "", ErrNoToken
	}
	return m.record.AccessToken, nil
}

// Save stores token.
func (m *MemoryPersister) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = &tokenRecord{AccessToken: token, StoredAt: time.Now()}
	return nil
}

// Delete removes the token.
func (m *MemoryPersister) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = nil
	return nil
}

// Close is a no-op.
func (m *MemoryPersister) Close() error { return nil }

// BadgerPersister implements Persister using BadgerDB for durable storage.
type BadgerPersister struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerPersister opens (or creates) a BadgerDB at path.
func OpenBadgerPersister(path string) (*BadgerPersister, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for session: %w", err)
	}
	return &BadgerPersister{db: db, ownsDB: true}, nil
}

// NewBadgerPersister wraps an existing DB. Close leaves db open.
func NewBadgerPersister(db *badger.DB) *BadgerPersister {
	return &BadgerPersister{db: db}
}

// Load returns the stored token.
func (b *BadgerPersister) Load(_ context.Context) (string, error) {
	var rec tokenRecord

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoToken
		}
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return "", err
	}
	if rec.AccessToken == "" {
		return "", ErrNoToken
	}
	return rec.AccessToken, nil
}

// Save stores token.
func (b *BadgerPersister) Save(_ context.Context, token string) error {
	data, err := json.Marshal(tokenRecord{AccessToken: token, StoredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tokenKey), data)
	})
}

// Delete removes the token. Deleting a missing token succeeds.
func (b *BadgerPersister) Delete(_ context.Context) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(tokenKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete token: %w", err)
		}
		return nil
	})
}

// Close closes the DB if this persister opened it.
func (b *BadgerPersister) Close() error {
	if b.ownsDB {
		return b.db.Close()
	}
	return nil
}
