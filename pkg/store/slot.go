package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Slot is a typed view over one storage key. Values are stored as JSON.
type Slot[T any] struct {
	storage Storage
	key     string
}

// NewSlot binds key in storage to type T.
func NewSlot[T any](storage Storage, key string) *Slot[T] {
	return &Slot[T]{storage: storage, key: key}
}

// Key returns the slot key.
func (s *Slot[T]) Key() string { return s.key }

// Load reads the slot. An absent or empty slot yields init. A value that does
// not decode into T returns ErrCorruptSlot.
func (s *Slot[T]) Load(ctx context.Context, init T) (T, error) {
	raw, ok, err := s.storage.GetItem(ctx, s.key)
	if err != nil {
		return init, fmt.Errorf("store: load %q: %w", s.key, err)
	}
	if !ok || raw == "" {
		return init, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return init, fmt.Errorf("%w: %q: %v", ErrCorruptSlot, s.key, err)
	}
	return v, nil
}

// Save serialises v in full and writes it to the slot.
func (s *Slot[T]) Save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", s.key, err)
	}
	if err := s.storage.SetItem(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("store: save %q: %w", s.key, err)
	}
	return nil
}

// Clear removes the slot.
func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.storage.RemoveItem(ctx, s.key)
}

// Store holds the current snapshot of a slot. Mutations are computed by the
// caller from Snapshot and handed back through Commit, which persists the
// whole value before making it current.
type Store[T any] struct {
	slot *Slot[T]

	mu      sync.RWMutex
	current T
}

// Open loads the named slot, seeding it with init when absent, and writes
// the initial snapshot back so the slot always exists after Open.
func Open[T any](ctx context.Context, storage Storage, name string, init T) (*Store[T], error) {
	slot := NewSlot[T](storage, name)
	current, err := slot.Load(ctx, init)
	if err != nil {
		return nil, err
	}
	if err := slot.Save(ctx, current); err != nil {
		return nil, err
	}
	return &Store[T]{slot: slot, current: current}, nil
}

// Snapshot returns the current value. Callers must treat it as immutable.
func (s *Store[T]) Snapshot() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Commit persists next and makes it the current snapshot. On a write error
// the previous snapshot stays current.
func (s *Store[T]) Commit(ctx context.Context, next T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.slot.Save(ctx, next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// Update applies fn to the current snapshot and commits the result. An error
// from fn leaves the store untouched.
func (s *Store[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.current)
	if err != nil {
		return s.current, err
	}
	if err := s.slot.Save(ctx, next); err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}
