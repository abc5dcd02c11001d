package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Store is a persisted key/value backend for the second cache tier.
// Implementations return (nil, nil) for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// envelope is the persisted entry format: value plus its write timestamp,
// so TTL can be enforced on read regardless of backend expiry support.
type envelope struct {
	TS    int64           `json:"ts"`
	Value json.RawMessage `json:"value"`
}

type memoryEntry[V any] struct {
	value V
	ts    time.Time
}

// Tiered is a two-tier cache: an in-process map in front of an optional
// persisted store. Lookup order is memory, then store; a store hit is
// promoted into the memory tier. Entries past the TTL are treated as absent
// and evicted on access. The clock is injectable for tests.
type Tiered[V any] struct {
	mu     sync.Mutex
	memory map[string]memoryEntry[V]

	store  Store
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Tiered cache.
type Option[V any] func(*Tiered[V])

// WithStore attaches a persisted second tier. Keys are namespaced with the
// given prefix in the store.
func WithStore[V any](store Store, prefix string) Option[V] {
	return func(c *Tiered[V]) {
		c.store = store
		c.prefix = prefix
	}
}

// WithClock overrides the time source.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Tiered[V]) {
		c.now = now
	}
}

// NewTiered creates a cache with the given TTL.
func NewTiered[V any](ttl time.Duration, opts ...Option[V]) *Tiered[V] {
	c := &Tiered[V]{
		memory: make(map[string]memoryEntry[V]),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, checking the memory tier first and
// falling back to the persisted store.
func (c *Tiered[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	c.mu.Lock()
	if e, ok := c.memory[key]; ok {
		if c.now().Sub(e.ts) <= c.ttl {
			c.mu.Unlock()
			return e.value, true
		}
		delete(c.memory, key) // lazy expiry
	}
	c.mu.Unlock()

	if c.store == nil {
		return zero, false
	}

	raw, err := c.store.Get(ctx, c.prefix+key)
	if err != nil || raw == nil {
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, false
	}

	if c.now().Sub(time.UnixMilli(env.TS)) > c.ttl {
		_ = c.store.Delete(ctx, c.prefix+key)
		return zero, false
	}

	var value V
	if err := json.Unmarshal(env.Value, &value); err != nil {
		return zero, false
	}

	// Promote the persisted hit into the memory tier.
	c.mu.Lock()
	c.memory[key] = memoryEntry[V]{value: value, ts: c.now()}
	c.mu.Unlock()

	return value, true
}

// Put writes through both tiers. Store failures are ignored: the memory tier
// is authoritative for the session and a missing persisted entry only costs a
// future lookup.
func (c *Tiered[V]) Put(ctx context.Context, key string, value V) {
	now := c.now()

	c.mu.Lock()
	c.memory[key] = memoryEntry[V]{value: value, ts: now}
	c.mu.Unlock()

	if c.store == nil {
		return
	}

	rawValue, err := json.Marshal(value)
	if err != nil {
		return
	}
	raw, err := json.Marshal(envelope{TS: now.UnixMilli(), Value: rawValue})
	if err != nil {
		return
	}
	_ = c.store.Set(ctx, c.prefix+key, raw)
}
