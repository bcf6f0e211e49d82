package store

import (
	"context"
	"sync"
)

type MemoryStoreOption func(*memoryStore)

// WithCredentials seeds the store
func WithCredentials(credentials *Credentials) MemoryStoreOption {
	return func(m *memoryStore) {
		for _, key := range Keys {
			if value := credentials.Value(key); value != "" {
				m.values[key] = value
			}
		}
	}
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[Key]string
}

func (m *memoryStore) Get(_ context.Context, key Key) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, key Key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if value == "" {
		return m.Remove(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStore) Remove(_ context.Context, key Key) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func NewMemoryStore(options ...MemoryStoreOption) Store {
	ret := &memoryStore{values: map[Key]string{}}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
