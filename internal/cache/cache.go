package cache

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"vortex/internal/store"
)

// entry pairs a cached value with its write timestamp (unix milliseconds).
type entry[V any] struct {
	Value     V     `json:"value"`
	WrittenAt int64 `json:"ts"`
}

// UnmarshalJSON accepts the legacy shape where entries were stored as the
// bare value with no timestamp. Legacy entries are stamped on the next write.
func (e *entry[V]) UnmarshalJSON(data []byte) error {
	type alias entry[V]
	var a alias
	if err := json.Unmarshal(data, &a); err == nil && a.WrittenAt != 0 {
		*e = entry[V](a)
		return nil
	}
	var bare V
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	e.Value = bare
	e.WrittenAt = 0
	return nil
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	maxEntries int
	now        func() time.Time
}

// WithMaxEntries bounds the cache; every write evicts oldest-first entries
// until the count is within the cap.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Cache is a TTL'd key-value cache persisted as a single JSON object under
// one storage key. Persistence is best-effort: store failures and malformed
// blobs degrade to an empty cache and are never surfaced to callers.
//
// Writes follow a read-modify-write of the whole object; concurrent writers
// through separate Cache instances race and the last one wins, which is
// acceptable for re-derivable data like posters and country codes.
type Cache[V any] struct {
	mu         sync.Mutex
	store      store.Store
	storageKey string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	loaded  bool
	entries map[string]entry[V]
}

// New creates a cache persisted under storageKey. Values older than ttl are
// treated as absent.
func New[V any](st store.Store, storageKey string, ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		store:      st,
		storageKey: storageKey,
		ttl:        ttl,
		maxEntries: o.maxEntries,
		now:        o.now,
	}
}

// Get returns the cached value for key. A missing or expired entry reports
// absent; expired entries are removed so the next persist drops them.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked()

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.expiredLocked(e) {
		delete(c.entries, key)
		return zero, false
	}
	return e.Value, true
}

// Set stores value under key, stamps it with the current time, persists the
// full cache object, then sweeps expired entries and enforces the capacity
// bound (oldest entries first).
func (c *Cache[V]) Set(key string, value V) {
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked()

	nowMillis := c.now().UnixMilli()
	c.entries[key] = entry[V]{Value: value, WrittenAt: nowMillis}

	c.purgeExpiredLocked()
	c.evictOverCapacityLocked()
	c.persistLocked(nowMillis)
}

// Len reports the number of live entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked()
	return len(c.entries)
}

// Reset drops the in-memory view; the next access reloads whatever is
// persisted in the store. Entries are not refetched from upstream until
// they expire or a miss triggers a fresh lookup.
func (c *Cache[V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.entries = nil
}

func (c *Cache[V]) loadLocked() {
	if c.loaded {
		return
	}
	c.loaded = true
	c.entries = make(map[string]entry[V])

	data, err := c.store.Read(c.storageKey)
	if err != nil || len(data) == 0 {
		return
	}
	var persisted map[string]entry[V]
	if err := json.Unmarshal(data, &persisted); err != nil {
		return
	}
	c.entries = persisted
	if c.entries == nil {
		c.entries = make(map[string]entry[V])
	}
}

func (c *Cache[V]) expiredLocked(e entry[V]) bool {
	if e.WrittenAt == 0 {
		// Legacy entry with no timestamp; valid until rewritten.
		return false
	}
	age := c.now().UnixMilli() - e.WrittenAt
	return age >= c.ttl.Milliseconds()
}

func (c *Cache[V]) purgeExpiredLocked() {
	for k, e := range c.entries {
		if c.expiredLocked(e) {
			delete(c.entries, k)
		}
	}
}

func (c *Cache[V]) evictOverCapacityLocked() {
	if c.maxEntries <= 0 || len(c.entries) <= c.maxEntries {
		return
	}
	type aged struct {
		key string
		ts  int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, ts: e.WrittenAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ts < all[j].ts })
	for _, a := range all[:len(all)-c.maxEntries] {
		delete(c.entries, a.key)
	}
}

// persistLocked writes the whole object back, normalizing legacy entries to
// the timestamped shape along the way. Failures are swallowed.
func (c *Cache[V]) persistLocked(nowMillis int64) {
	out := make(map[string]entry[V], len(c.entries))
	for k, e := range c.entries {
		if e.WrittenAt == 0 {
			e.WrittenAt = nowMillis
			c.entries[k] = e
		}
		out[k] = e
	}
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	_ = c.store.Write(c.storageKey, data)
}
