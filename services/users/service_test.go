package users

import (
	"errors"
	"testing"

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

func TestDefaultUserCreatedOnFirstRun(t *testing.T) {
	svc, _ := newTestService(t)

	if !svc.Exists(models.DefaultUserID) {
		t.Fatal("expected the default profile to exist")
	}
	users := svc.List()
	if len(users) != 1 || users[0].Name != models.DefaultUserName {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Create("Alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if alice.ID == "" || alice.ID == models.DefaultUserID {
		t.Fatalf("expected a generated id, got %q", alice.ID)
	}
	if _, ok := svc.Get(alice.ID); !ok {
		t.Fatal("created user not retrievable")
	}

	if _, err := svc.Create("   "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestRename(t *testing.T) {
	svc, _ := newTestService(t)

	renamed, err := svc.Rename(models.DefaultUserID, "Family")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "Family" {
		t.Fatalf("unexpected name: %q", renamed.Name)
	}
	if _, err := svc.Rename("missing", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteRefusesLastUser(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Delete(models.DefaultUserID); err == nil {
		t.Fatal("expected refusal to delete the last user")
	}

	extra, err := svc.Create("Second")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(extra.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if svc.Exists(extra.ID) {
		t.Fatal("deleted user still present")
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	svc, st := newTestService(t)

	created, err := svc.Create("Alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	reloaded, err := NewService(st)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.Exists(created.ID) {
		t.Fatal("expected created user to survive reload")
	}
	if len(reloaded.List()) != 2 {
		t.Fatalf("unexpected user count after reload: %d", len(reloaded.List()))
	}
}
