package todos

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uidemo/pkg/store"
)

func TestAddRemoveDoNotMutateReceiver(t *testing.T) {
	base := List{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	added, err := base.Add("d")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	removed, err := base.Remove(1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	if diff := cmp.Diff(List{{Title: "a"}, {Title: "b"}, {Title: "c"}}, base); diff != "" {
		t.Fatalf("receiver mutated (-want +got):\n%s", diff)
	}
	if len(added) != 4 || added[3].Title != "d" || added[3].Done {
		t.Fatalf("unexpected add result %+v", added)
	}
	if diff := cmp.Diff(List{{Title: "a"}, {Title: "c"}}, removed); diff != "" {
		t.Fatalf("remove mismatch (-want +got):\n%s", diff)
	}
}

func TestSetDoneOnlyTouchesOneItem(t *testing.T) {
	base := List{{Title: "a"}, {Title: "b", Done: true}, {Title: "c"}}

	next, err := base.SetDone(2, true)
	if err != nil {
		t.Fatalf("set done: %v", err)
	}
	want := List{{Title: "a"}, {Title: "b", Done: true}, {Title: "c", Done: true}}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Fatalf("set done mismatch (-want +got):\n%s", diff)
	}
	if base[2].Done {
		t.Fatalf("receiver mutated")
	}

	toggled, _ := next.Toggle(1)
	if toggled[1].Done || toggled[0].Done || !toggled[2].Done {
		t.Fatalf("toggle leaked into other items: %+v", toggled)
	}
	if toggled.Remaining() != 2 {
		t.Fatalf("expected 2 remaining, got %d", toggled.Remaining())
	}
}

func TestIndexAndTitleErrors(t *testing.T) {
	l := List{{Title: "a"}}
	for _, idx := range []int{-1, 1, 5} {
		if _, err := l.Remove(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("remove %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
		if _, err := l.SetDone(idx, true); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("set done %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if _, err := l.Add("   "); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestPersistedSlotMatchesMemoryAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemoryStorage()
	st, err := Open(ctx, storage)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	slot := store.NewSlot[List](storage, StorageKey)

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 200; step++ {
		cur := st.Snapshot()
		var next List
		switch op := rng.Intn(3); {
		case op == 0 || len(cur) == 0:
			next, err = cur.Add(string(rune('a' + rng.Intn(26))))
		case op == 1:
			next, err = cur.Remove(rng.Intn(len(cur)))
		default:
			next, err = cur.Toggle(rng.Intn(len(cur)))
		}
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if err := st.Commit(ctx, next); err != nil {
			t.Fatalf("step %d commit: %v", step, err)
		}

		stored, err := slot.Load(ctx, nil)
		if err != nil {
			t.Fatalf("step %d load: %v", step, err)
		}
		if diff := cmp.Diff(st.Snapshot(), stored); diff != "" {
			t.Fatalf("step %d slot diverged (-memory +stored):\n%s", step, diff)
		}
	}
}

func TestOpenCorruptSlotPropagates(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemoryStorage()
	if err := storage.SetItem(ctx, StorageKey, "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Open(ctx, storage); !errors.Is(err, store.ErrCorruptSlot) {
		t.Fatalf("expected ErrCorruptSlot, got %v", err)
	}
}
