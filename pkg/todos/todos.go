// Package todos is the todo list domain: an ordered list of items addressed
// by position and persisted in full to a storage slot.
package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-uidemo/pkg/store"
)

// StorageKey is the slot holding the serialised list.
const StorageKey = "todo list"

var (
	ErrIndexOutOfRange = errors.New("todos: index out of range")
	ErrEmptyTitle      = errors.New("todos: title is required")
)

// Item is one todo. Items have no identity beyond their position.
type Item struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// List is an immutable ordered snapshot. Every mutation returns a new list.
type List []Item

// Add appends an open item with title.
func (l List) Add(title string) (List, error) {
	if strings.TrimSpace(title) == "" {
		return l, ErrEmptyTitle
	}
	next := make(List, len(l), len(l)+1)
	copy(next, l)
	return append(next, Item{Title: title}), nil
}

// Remove drops the item at index, shifting the ones after it.
func (l List) Remove(index int) (List, error) {
	if err := l.check(index); err != nil {
		return l, err
	}
	next := make(List, 0, len(l)-1)
	next = append(next, l[:index]...)
	return append(next, l[index+1:]...), nil
}

// SetDone sets the done flag of the item at index only.
func (l List) SetDone(index int, done bool) (List, error) {
	if err := l.check(index); err != nil {
		return l, err
	}
	next := make(List, len(l))
	copy(next, l)
	next[index].Done = done
	return next, nil
}

// Toggle flips the done flag of the item at index.
func (l List) Toggle(index int) (List, error) {
	if err := l.check(index); err != nil {
		return l, err
	}
	return l.SetDone(index, !l[index].Done)
}

// Remaining counts open items.
func (l List) Remaining() int {
	n := 0
	for _, item := range l {
		if !item.Done {
			n++
		}
	}
	return n
}

func (l List) check(index int) error {
	if index < 0 || index >= len(l) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(l))
	}
	return nil
}

// Open loads the list persisted in storage, starting empty when the slot is
// absent.
func Open(ctx context.Context, storage store.Storage) (*store.Store[List], error) {
	st, err := store.Open(ctx, storage, StorageKey, List{})
	if err != nil {
		return nil, fmt.Errorf("todos: open: %w", err)
	}
	return st, nil
}
