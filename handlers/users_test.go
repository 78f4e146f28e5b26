package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"

	"vortex/handlers"
	"vortex/internal/store"
	"vortex/models"
	"vortex/services/users"
	"vortex/services/watchlist"
)

func TestUsersDeleteCascadesWatchlist(t *testing.T) {
	st, err := store.NewFileStore(afero.NewMemMapFs(), "data")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	userSvc, err := users.NewService(st)
	if err != nil {
		t.Fatalf("failed to create users service: %v", err)
	}
	wlSvc, err := watchlist.NewService(st)
	if err != nil {
		t.Fatalf("failed to create watchlist service: %v", err)
	}
	h := handlers.NewUsersHandler(userSvc)
	h.SetWatchlist(wlSvc)

	extra, err := userSvc.Create("Second")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := wlSvc.AddOrUpdate(extra.ID, models.WatchlistUpsert{ID: "tt0133093", Kind: models.KindMovie, Name: "The Matrix"}); err != nil {
		t.Fatalf("failed to seed watchlist: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+extra.ID, nil)
	req = mux.SetURLVars(req, map[string]string{"userID": extra.ID})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if userSvc.Exists(extra.ID) {
		t.Fatal("user still present after delete")
	}
	items, err := wlSvc.List(extra.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected watchlist purged with the user, got %+v", items)
	}
}
