package watchlist

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"vortex/internal/store"
	"vortex/models"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	st, err := store.NewFileStore(afero.NewMemMapFs(), "data")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	svc, err := NewService(st)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc, st
}

func TestAddListRemove(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.AddOrUpdate("alice", models.WatchlistUpsert{
		ID:   "tt0133093",
		Kind: models.KindMovie,
		Name: "The Matrix",
		Year: 1999,
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if item.AddedAt.IsZero() {
		t.Fatal("expected AddedAt to be stamped")
	}

	items, err := svc.List("alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "tt0133093" {
		t.Fatalf("unexpected list: %+v", items)
	}
	if !svc.Contains("alice", models.KindMovie, "tt0133093") {
		t.Fatal("expected Contains to report the item")
	}

	removed, err := svc.Remove("alice", models.KindMovie, "tt0133093")
	if err != nil || !removed {
		t.Fatalf("remove failed: removed=%v err=%v", removed, err)
	}
	if removed, _ := svc.Remove("alice", models.KindMovie, "tt0133093"); removed {
		t.Fatal("second remove must be a no-op")
	}
}

func TestListSortedMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stamps := []time.Time{base, base.Add(2 * time.Hour), base.Add(time.Hour)}
	ids := []string{"tt1", "tt2", "tt3"}
	for i, id := range ids {
		ts := stamps[i]
		svc.now = func() time.Time { return ts }
		if _, err := svc.AddOrUpdate("u", models.WatchlistUpsert{ID: id, Kind: models.KindMovie, Name: id}); err != nil {
			t.Fatalf("add %s failed: %v", id, err)
		}
	}

	items, err := svc.List("u")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if items[0].ID != "tt2" || items[1].ID != "tt3" || items[2].ID != "tt1" {
		t.Fatalf("unexpected order: %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestUpdateKeepsAddedAt(t *testing.T) {
	svc, _ := newTestService(t)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	if _, err := svc.AddOrUpdate("u", models.WatchlistUpsert{ID: "tt1", Kind: models.KindSeries, Name: "Old Name"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	updated, err := svc.AddOrUpdate("u", models.WatchlistUpsert{ID: "tt1", Kind: models.KindSeries, Name: "New Name", Year: 2020})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.AddedAt.Equal(first) {
		t.Fatalf("AddedAt changed on update: %v", updated.AddedAt)
	}
	if updated.Name != "New Name" || updated.Year != 2020 {
		t.Fatalf("metadata not refreshed: %+v", updated)
	}

	items, _ := svc.List("u")
	if len(items) != 1 {
		t.Fatalf("update must not duplicate, got %d items", len(items))
	}
}

func TestValidation(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddOrUpdate("", models.WatchlistUpsert{ID: "tt1", Kind: models.KindMovie}); !errors.Is(err, ErrUserIDRequired) {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
	if _, err := svc.AddOrUpdate("u", models.WatchlistUpsert{Kind: models.KindMovie}); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("expected ErrIDRequired, got %v", err)
	}
	if _, err := svc.AddOrUpdate("u", models.WatchlistUpsert{ID: "tt1"}); !errors.Is(err, ErrKindRequired) {
		t.Fatalf("expected ErrKindRequired, got %v", err)
	}
	if _, err := svc.List(""); !errors.Is(err, ErrUserIDRequired) {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	svc, st := newTestService(t)

	if _, err := svc.AddOrUpdate("u", models.WatchlistUpsert{ID: "tt1", Kind: models.KindMovie, Name: "Kept"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	reloaded, err := NewService(st)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	items, err := reloaded.List("u")
	if err != nil || len(items) != 1 || items[0].Name != "Kept" {
		t.Fatalf("unexpected reloaded list: %+v (err=%v)", items, err)
	}
}

func TestPurgeRemovesAllUserItems(t *testing.T) {
	svc, st := newTestService(t)

	for _, id := range []string{"tt1", "tt2"} {
		if _, err := svc.AddOrUpdate("u", models.WatchlistUpsert{ID: id, Kind: models.KindMovie, Name: id}); err != nil {
			t.Fatalf("add %s failed: %v", id, err)
		}
	}
	if _, err := svc.AddOrUpdate("other", models.WatchlistUpsert{ID: "tt3", Kind: models.KindSeries, Name: "Kept"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.Purge("u"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if items, _ := svc.List("u"); len(items) != 0 {
		t.Fatalf("expected empty list after purge, got %+v", items)
	}
	if items, _ := svc.List("other"); len(items) != 1 {
		t.Fatalf("other users must be untouched, got %+v", items)
	}
	if err := svc.Purge("u"); err != nil {
		t.Fatalf("purging an absent user must be a no-op, got %v", err)
	}

	reloaded, err := NewService(st)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if items, _ := reloaded.List("u"); len(items) != 0 {
		t.Fatalf("purge must persist, got %+v", items)
	}
}

func TestLegacyFlatArrayMigratesToDefaultUser(t *testing.T) {
	st, err := store.NewFileStore(afero.NewMemMapFs(), "data")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	legacy := `[{"id":"tt0903747","kind":"series","title":"Breaking Bad"}]`
	if err := st.Write(storageKey, []byte(legacy)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc, err := NewService(st)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	items, err := svc.List(models.DefaultUserID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "tt0903747" {
		t.Fatalf("legacy item not migrated: %+v", items)
	}
	if items[0].AddedAt.IsZero() {
		t.Fatal("expected migration to stamp AddedAt")
	}
}
