package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"vortex/models"
	"vortex/services/watchlist"
)

type watchlistService interface {
	List(userID string) ([]models.WatchlistItem, error)
	AddOrUpdate(userID string, input models.WatchlistUpsert) (models.WatchlistItem, error)
	Remove(userID string, kind models.Kind, id string) (bool, error)
}

var _ watchlistService = (*watchlist.Service)(nil)

type userRegistry interface {
	Exists(id string) bool
}

type WatchlistHandler struct {
	Service  watchlistService
	Users    userRegistry
	DemoMode bool
}

// NewWatchlistHandler creates the watchlist handler. In demo mode writes are
// rejected so the shared demo state stays clean.
func NewWatchlistHandler(service watchlistService, users userRegistry, demoMode bool) *WatchlistHandler {
	return &WatchlistHandler{Service: service, Users: users, DemoMode: demoMode}
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.Service.List(userID)
	if err != nil {
		http.Error(w, err.Error(), statusForWatchlistError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if h.DemoMode {
		http.Error(w, "watchlist is read-only in demo mode", http.StatusForbidden)
		return
	}

	var body models.WatchlistUpsert
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.Service.AddOrUpdate(userID, body)
	if err != nil {
		http.Error(w, err.Error(), statusForWatchlistError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if h.DemoMode {
		http.Error(w, "watchlist is read-only in demo mode", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	kind := models.ParseKind(strings.TrimSpace(vars["kind"]))
	id := strings.TrimSpace(vars["id"])
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	removed, err := h.Service.Remove(userID, kind, id)
	if err != nil {
		http.Error(w, err.Error(), statusForWatchlistError(err))
		return
	}
	if !removed {
		http.Error(w, "watchlist item not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *WatchlistHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(mux.Vars(r)["userID"])
	if userID == "" {
		http.Error(w, "user id is required", http.StatusBadRequest)
		return "", false
	}
	if h.Users != nil && !h.Users.Exists(userID) {
		http.Error(w, "user not found", http.StatusNotFound)
		return "", false
	}
	return userID, true
}

func statusForWatchlistError(err error) int {
	switch {
	case errors.Is(err, watchlist.ErrUserIDRequired),
		errors.Is(err, watchlist.ErrIDRequired),
		errors.Is(err, watchlist.ErrKindRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
