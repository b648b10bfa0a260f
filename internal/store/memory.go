package store

import (
	"context"
	"sync"
)

// MemKV is an in-memory KV for tests and ephemeral runs. Safe for concurrent
// use, though the application itself serializes writes at the service layer.
type MemKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemKV returns an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string][]byte)}
}

// Get returns the value under key and whether it exists.
func (s *MemKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *MemKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
