package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s, err := m.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Server.Port != 7777 || s.Catalog.PageSize != 20 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected settings file to be created: %v", err)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s := DefaultSettings()
	s.Metadata.TMDBAPIKey = "abc123"
	s.Server.Port = 9000
	if err := m.Save(s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Metadata.TMDBAPIKey != "abc123" || loaded.Server.Port != 9000 {
		t.Fatalf("round trip lost data: %+v", loaded)
	}
}

func TestLoadBackfillsPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"server":{"host":"127.0.0.1","port":8080}}`), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	s, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Server.Host != "127.0.0.1" || s.Server.Port != 8080 {
		t.Fatalf("explicit values lost: %+v", s.Server)
	}
	if s.Listing.BaseURL == "" || s.Catalog.TrendingMaxPages != 500 || s.Log.MaxSize != 50 {
		t.Fatalf("backfill missing: %+v", s)
	}
}
