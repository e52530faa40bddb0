// Package store persists client-local state in keyed string slots, the way a
// browser's local storage does, and layers typed snapshots on top of them.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrCorruptSlot is returned when a stored value cannot be decoded into
	// the requested type.
	ErrCorruptSlot = errors.New("store: corrupt slot")
	// ErrInvalidKey is returned for empty slot keys.
	ErrInvalidKey = errors.New("store: invalid key")
)

// Storage is a keyed string slot store. GetItem reports ok=false for absent
// keys. Implementations must be safe for concurrent use.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Lister is implemented by storages that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context) ([]string, error)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}

// MemoryStorage keeps slots in process memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Keys returns the stored keys sorted.
func (m *MemoryStorage) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

type namespaced struct {
	inner  Storage
	prefix string
}

// Namespace scopes storage to prefix so several browsers can share one
// backend without seeing each other's slots.
func Namespace(storage Storage, prefix string) Storage {
	return &namespaced{inner: storage, prefix: prefix + "/"}
}

func (n *namespaced) GetItem(ctx context.Context, key string) (string, bool, error) {
	return n.inner.GetItem(ctx, n.prefix+key)
}

func (n *namespaced) SetItem(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return n.inner.SetItem(ctx, n.prefix+key, value)
}

func (n *namespaced) RemoveItem(ctx context.Context, key string) error {
	return n.inner.RemoveItem(ctx, n.prefix+key)
}
