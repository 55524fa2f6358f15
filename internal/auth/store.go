package auth

import (
	"context"
	"errors"
	"sync"
)

// Storage keys for the persisted session pair.
const (
	KeyToken = "authToken"
	KeyUser  = "user"
)

// ErrNotFound is returned by Store.Get when the key holds no value.
var ErrNotFound = errors.New("auth: key not found")

// Store is the key-value persistence port behind the session manager.
// Implementations decide where the token/user pair lives: process memory,
// redis, or MySQL.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps session entries in process memory. Used by tests and
// single-process deployments that accept losing the session on restart.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
