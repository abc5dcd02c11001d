package cache

import (
	"context"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for exercising the persisted tier.
type fakeStore struct {
	data map[string][]byte
	gets int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.gets++
	return s.data[key], nil
}

func (s *fakeStore) Set(ctx context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func TestTiered_MemoryHit(t *testing.T) {
	c := NewTiered[string](time.Hour)
	ctx := context.Background()

	c.Put(ctx, "k", "v")

	got, ok := c.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("expected memory hit with %q, got %q (ok=%v)", "v", got, ok)
	}
}

func TestTiered_Miss(t *testing.T) {
	c := NewTiered[string](time.Hour)

	if _, ok := c.Get(context.Background(), "absent"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestTiered_StoreHitPromotes(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	writer := NewTiered[string](time.Hour, WithStore[string](store, "route_"))
	writer.Put(ctx, "a|b", "metrics")

	// Fresh cache with an empty memory tier but the same store.
	reader := NewTiered[string](time.Hour, WithStore[string](store, "route_"))

	got, ok := reader.Get(ctx, "a|b")
	if !ok || got != "metrics" {
		t.Fatalf("expected store hit, got %q (ok=%v)", got, ok)
	}

	// Second read must be served from memory without touching the store.
	storeGets := store.gets
	if _, ok := reader.Get(ctx, "a|b"); !ok {
		t.Fatal("expected promoted memory hit")
	}
	if store.gets != storeGets {
		t.Fatalf("expected no extra store reads after promotion, got %d", store.gets-storeGets)
	}
}

func TestTiered_TTLExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := newFakeStore()
	c := NewTiered[string](12*time.Hour, WithStore[string](store, "route_"), WithClock[string](clock))
	ctx := context.Background()

	c.Put(ctx, "k", "v")

	// Just inside the TTL window.
	now = now.Add(11 * time.Hour)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("entry inside TTL must be a hit")
	}

	// Past the TTL: both tiers must treat the entry as absent.
	now = now.Add(2 * time.Hour)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("entry past TTL must be a miss")
	}
	if store.data["route_k"] != nil {
		t.Fatal("expired persisted entry must be evicted on access")
	}
}
