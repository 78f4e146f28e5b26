package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/afero"

	"vortex/internal/store"
)

func newTestStore(t *testing.T) *store.FileStore {
	t.Helper()
	st, err := store.NewFileStore(afero.NewMemMapFs(), "cache")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return st
}

func TestSetThenGetWithinTTL(t *testing.T) {
	c := New[string](newTestStore(t), "posters", 30*24*time.Hour)

	c.Set("movie:603", "https://image.tmdb.org/t/p/w500/matrix.jpg")

	got, ok := c.Get("movie:603")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "https://image.tmdb.org/t/p/w500/matrix.jpg" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestExpiredEntryIsAbsentAndRemoved(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := New[string](newTestStore(t), "posters", time.Minute, WithClock(clock))

	c.Set("movie:1", "poster-url")

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("movie:1"); ok {
		t.Fatal("expected expired entry to be absent")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry removed, have %d entries", c.Len())
	}
}

func TestCapacityEvictsOldestFirst(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := New[string](newTestStore(t), "posters", time.Hour, WithMaxEntries(3), WithClock(clock))

	for _, key := range []string{"a", "b", "c", "d", "e"} {
		c.Set(key, "v-"+key)
		now = now.Add(time.Second)
	}

	if c.Len() != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", c.Len())
	}
	for _, evicted := range []string{"a", "b"} {
		if _, ok := c.Get(evicted); ok {
			t.Fatalf("expected oldest entry %q to be evicted", evicted)
		}
	}
	for _, kept := range []string{"c", "d", "e"} {
		if _, ok := c.Get(kept); !ok {
			t.Fatalf("expected newer entry %q to survive", kept)
		}
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	st := newTestStore(t)

	first := New[[]string](st, "countries", time.Hour)
	first.Set("movie:603", []string{"US", "AU"})

	second := New[[]string](st, "countries", time.Hour)
	codes, ok := second.Get("movie:603")
	if !ok {
		t.Fatal("expected persisted entry to survive a new instance")
	}
	if len(codes) != 2 || codes[0] != "US" || codes[1] != "AU" {
		t.Fatalf("unexpected codes: %v", codes)
	}
}

func TestLegacyBareValueAcceptedAndStampedOnWrite(t *testing.T) {
	st := newTestStore(t)
	if err := st.Write("posters", []byte(`{"movie:42":"https://example.com/old.jpg"}`)); err != nil {
		t.Fatalf("failed to seed legacy blob: %v", err)
	}

	c := New[string](st, "posters", time.Hour)
	got, ok := c.Get("movie:42")
	if !ok {
		t.Fatal("expected legacy entry to be readable")
	}
	if got != "https://example.com/old.jpg" {
		t.Fatalf("unexpected legacy value: %q", got)
	}

	// Any write normalizes the legacy entry to the timestamped shape.
	c.Set("movie:43", "https://example.com/new.jpg")

	fresh := New[string](st, "posters", time.Hour)
	if _, ok := fresh.Get("movie:42"); !ok {
		t.Fatal("expected normalized legacy entry to remain readable")
	}

	data, err := st.Read("posters")
	if err != nil {
		t.Fatalf("failed to read persisted blob: %v", err)
	}
	var persisted map[string]struct {
		Value string `json:"value"`
		TS    int64  `json:"ts"`
	}
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("failed to decode persisted blob: %v", err)
	}
	if persisted["movie:42"].TS == 0 {
		t.Fatalf("expected legacy entry to be stored with a timestamp: %s", data)
	}
}

func TestMalformedBlobTreatedAsEmpty(t *testing.T) {
	st := newTestStore(t)
	if err := st.Write("search", []byte(`{not json`)); err != nil {
		t.Fatalf("failed to seed malformed blob: %v", err)
	}

	c := New[string](st, "search", time.Hour)
	if _, ok := c.Get("term"); ok {
		t.Fatal("expected empty cache for malformed blob")
	}
	c.Set("term", "value")
	if _, ok := c.Get("term"); !ok {
		t.Fatal("expected write to succeed after malformed blob")
	}
}
