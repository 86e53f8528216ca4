package session

import (
	"errors"
	"fmt"
	"testing"
)

func TestStorePutGet(t *testing.T) {
	store, err := NewStore[string](4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.Put("a", "alpha")
	got, err := store.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "alpha" {
		t.Errorf("expected alpha, got %q", got)
	}

	store.Put("a", "alpha-2")
	got, _ = store.Get("a")
	if got != "alpha-2" {
		t.Errorf("put should replace, got %q", got)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", store.Len())
	}
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := NewStore[string](4)
	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store, _ := NewStore[string](4)
	store.Put("a", "alpha")
	store.Delete("a")
	if _, err := store.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent key is fine.
	store.Delete("never-existed")
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store, _ := NewStore[int](3)
	for i := 0; i < 3; i++ {
		store.Put(fmt.Sprintf("s%d", i), i)
	}

	// Touch s0 so s1 becomes the eviction candidate.
	if _, err := store.Get("s0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.Put("s3", 3)

	if _, err := store.Get("s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected s1 evicted, got %v", err)
	}
	for _, id := range []string{"s0", "s2", "s3"} {
		if _, err := store.Get(id); err != nil {
			t.Errorf("expected %s retained, got %v", id, err)
		}
	}
}

func TestStoreInvalidSize(t *testing.T) {
	if _, err := NewStore[int](0); err == nil {
		t.Error("expected error for non-positive size")
	}
}
