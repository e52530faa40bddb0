package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	name string
	open func(t *testing.T) Storage
}

func backends() []backend {
	return []backend{
		{"memory", func(*testing.T) Storage { return NewMemoryStorage() }},
		{"file", func(t *testing.T) Storage {
			s, err := NewFileStorage(t.TempDir())
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T) Storage {
			s, err := OpenSQLite(context.Background(), ":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
	}
}

func TestStorageContract(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)

			_, ok, err := s.GetItem(ctx, "todo list")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem(ctx, "todo list", `[]`))
			require.NoError(t, s.SetItem(ctx, "todo list", `[{"title":"a","done":false}]`))

			v, ok, err := s.GetItem(ctx, "todo list")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `[{"title":"a","done":false}]`, v)

			require.NoError(t, s.SetItem(ctx, "session/x", "1"))
			if lister, ok := s.(Lister); ok {
				keys, err := lister.Keys(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"session/x", "todo list"}, keys)
			}

			require.NoError(t, s.RemoveItem(ctx, "todo list"))
			require.NoError(t, s.RemoveItem(ctx, "todo list"))
			_, ok, err = s.GetItem(ctx, "todo list")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.ErrorIs(t, s.SetItem(ctx, " ", "x"), ErrInvalidKey)
		})
	}
}

func TestNamespaceIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStorage()
	alice := Namespace(shared, "alice")
	bob := Namespace(shared, "bob")

	require.NoError(t, alice.SetItem(ctx, "todo list", "a"))
	_, ok, err := bob.GetItem(ctx, "todo list")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := shared.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/todo list"}, keys)
}

type item struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func TestOpenSeedsAndPersistsInitial(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	st, err := Open(ctx, s, "todo list", []item{})
	require.NoError(t, err)
	assert.Empty(t, st.Snapshot())

	raw, ok, err := s.GetItem(ctx, "todo list")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestOpenReadsExistingSlot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	require.NoError(t, s.SetItem(ctx, "todo list", `[{"title":"milk","done":true}]`))

	st, err := Open(ctx, s, "todo list", []item{})
	require.NoError(t, err)
	assert.Equal(t, []item{{Title: "milk", Done: true}}, st.Snapshot())
}

func TestOpenCorruptSlot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	require.NoError(t, s.SetItem(ctx, "todo list", `{"title":`))

	_, err := Open(ctx, s, "todo list", []item{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSlot)

	require.NoError(t, s.SetItem(ctx, "todo list", `{"title":"not a list"}`))
	_, err = Open(ctx, s, "todo list", []item{})
	assert.ErrorIs(t, err, ErrCorruptSlot)
}

func TestCommitPersistsFullState(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			st, err := Open(ctx, s, "todo list", []item{})
			require.NoError(t, err)

			next := append(st.Snapshot(), item{Title: "milk"}, item{Title: "bread", Done: true})
			require.NoError(t, st.Commit(ctx, next))

			reloaded, err := NewSlot[[]item](s, "todo list").Load(ctx, nil)
			require.NoError(t, err)
			assert.Equal(t, st.Snapshot(), reloaded)
		})
	}
}

type failingStorage struct{ Storage }

func (failingStorage) SetItem(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestCommitFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	st := &Store[[]item]{slot: NewSlot[[]item](failingStorage{NewMemoryStorage()}, "k"), current: []item{{Title: "a"}}}

	err := st.Commit(ctx, []item{{Title: "b"}})
	require.Error(t, err)
	assert.Equal(t, []item{{Title: "a"}}, st.Snapshot())

	_, err = st.Update(ctx, func(cur []item) ([]item, error) { return nil, nil })
	require.Error(t, err)
	assert.Equal(t, []item{{Title: "a"}}, st.Snapshot())
}

func TestUpdateRejectedMutation(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, NewMemoryStorage(), "k", []item{{Title: "a"}})
	require.NoError(t, err)

	boom := errors.New("rejected")
	_, err = st.Update(ctx, func([]item) ([]item, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []item{{Title: "a"}}, st.Snapshot())

	got, err := st.Update(ctx, func(cur []item) ([]item, error) {
		return append(append([]item(nil), cur...), item{Title: "b"}), nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
