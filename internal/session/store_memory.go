// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package session

import (
	"context"
	"sync"
)

// MemoryStore implements [Store] with process-local maps.
//
// It mirrors the one-shot semantics of [RedisStore] under a single mutex and
// is used by tests and local development without a Redis instance. Entries
// never expire.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	csrf     map[string]string
	flash    map[string]Flash
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		csrf:     make(map[string]string),
		flash:    make(map[string]Flash),
	}
}

// Load fetches the session document, or (nil, nil) when absent.
func (store *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, found := store.sessions[id]
	if !found {
		return nil, nil
	}

	// Return a copy so callers cannot mutate the stored document in place.
	session := stored
	session.ID = id
	return &session, nil
}

// Save persists the session document.
func (store *MemoryStore) Save(ctx context.Context, session *Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sessions[session.ID] = *session
	return nil
}

// Delete removes the session document and its one-shot values.
func (store *MemoryStore) Delete(ctx context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, id)
	delete(store.csrf, id)
	delete(store.flash, id)
	return nil
}

// SetCSRF stores the pending token, overwriting any prior pending token.
func (store *MemoryStore) SetCSRF(ctx context.Context, id string, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.csrf[id] = token
	return nil
}

// ConsumeCSRF atomically removes and returns the pending token.
func (store *MemoryStore) ConsumeCSRF(ctx context.Context, id string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	token := store.csrf[id]
	delete(store.csrf, id)
	return token, nil
}

// SetFlash stores the pending flash message.
func (store *MemoryStore) SetFlash(ctx context.Context, id string, flash Flash) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.flash[id] = flash
	return nil
}

// PopFlash atomically removes and returns the pending flash.
func (store *MemoryStore) PopFlash(ctx context.Context, id string) (*Flash, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	flash, found := store.flash[id]
	if !found {
		return nil, nil
	}

	delete(store.flash, id)
	return &flash, nil
}
