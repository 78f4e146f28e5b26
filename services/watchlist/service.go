package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"vortex/internal/store"
	"vortex/models"
)

const storageKey = "vortexWatchlist"

var (
	ErrUserIDRequired = errors.New("user id is required")
	ErrIDRequired     = errors.New("id is required")
	ErrKindRequired   = errors.New("kind is required")
)

// Service manages persistence and retrieval of per-user watchlists.
type Service struct {
	mu    sync.RWMutex
	store store.Store
	items map[string]map[string]models.WatchlistItem
	now   func() time.Time
}

// NewService creates a watchlist service persisting through st.
func NewService(st store.Store) (*Service, error) {
	svc := &Service{
		store: st,
		items: make(map[string]map[string]models.WatchlistItem),
		now:   time.Now,
	}
	if err := svc.load(); err != nil {
		return nil, err
	}
	return svc, nil
}

// List returns all watchlist items for a user, most recently added first.
func (s *Service) List(userID string) ([]models.WatchlistItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.WatchlistItem, 0)
	if perUser, ok := s.items[userID]; ok {
		items = make([]models.WatchlistItem, 0, len(perUser))
		for _, item := range perUser {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].Key() < items[j].Key()
		}
		return items[i].AddedAt.After(items[j].AddedAt)
	})

	return items, nil
}

// Contains reports whether a title is on a user's watchlist.
func (s *Service) Contains(userID string, kind models.Kind, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perUser, ok := s.items[strings.TrimSpace(userID)]
	if !ok {
		return false
	}
	_, exists := perUser[string(kind)+":"+id]
	return exists
}

// AddOrUpdate inserts a new item or refreshes metadata for an existing one.
// The original AddedAt is kept on update so list ordering stays stable.
func (s *Service) AddOrUpdate(userID string, input models.WatchlistUpsert) (models.WatchlistItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.WatchlistItem{}, ErrUserIDRequired
	}
	if strings.TrimSpace(input.ID) == "" {
		return models.WatchlistItem{}, ErrIDRequired
	}
	if strings.TrimSpace(string(input.Kind)) == "" {
		return models.WatchlistItem{}, ErrKindRequired
	}
	kind := models.ParseKind(strings.ToLower(strings.TrimSpace(string(input.Kind))))

	s.mu.Lock()
	defer s.mu.Unlock()

	perUser := s.ensureUserLocked(userID)

	key := string(kind) + ":" + input.ID
	item, exists := perUser[key]
	if !exists {
		item = models.WatchlistItem{
			ID:      input.ID,
			Kind:    kind,
			AddedAt: s.now().UTC(),
		}
	}
	item.Kind = kind

	if strings.TrimSpace(input.Name) != "" {
		item.Name = input.Name
	}
	if input.Overview != "" {
		item.Overview = input.Overview
	}
	if input.Year != 0 {
		item.Year = input.Year
	}
	if strings.TrimSpace(input.PosterURL) != "" {
		item.PosterURL = input.PosterURL
	}
	if input.TMDBID != 0 {
		item.TMDBID = input.TMDBID
	}

	perUser[key] = item

	if err := s.saveLocked(); err != nil {
		return models.WatchlistItem{}, err
	}
	return item, nil
}

// Remove deletes an item from a user's watchlist. Removing an absent item is
// not an error; the boolean reports whether anything changed.
func (s *Service) Remove(userID string, kind models.Kind, id string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, ErrUserIDRequired
	}
	if strings.TrimSpace(id) == "" || strings.TrimSpace(string(kind)) == "" {
		return false, ErrIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	perUser := s.ensureUserLocked(userID)

	key := string(kind) + ":" + id
	if _, exists := perUser[key]; !exists {
		return false, nil
	}
	delete(perUser, key)

	if err := s.saveLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// Purge deletes every watchlist entry belonging to a user. Called when the
// user profile itself is removed.
func (s *Service) Purge(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[userID]; !ok {
		return nil
	}
	delete(s.items, userID)
	return s.saveLocked()
}

func (s *Service) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Read(storageKey)
	if errors.Is(err, os.ErrNotExist) {
		s.items = make(map[string]map[string]models.WatchlistItem)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read watchlist: %w", err)
	}
	if len(data) == 0 {
		s.items = make(map[string]map[string]models.WatchlistItem)
		return nil
	}

	var multi map[string][]models.WatchlistItem
	if err := json.Unmarshal(data, &multi); err == nil {
		s.items = make(map[string]map[string]models.WatchlistItem, len(multi))
		for userID, items := range multi {
			userID = strings.TrimSpace(userID)
			if userID == "" {
				continue
			}
			perUser := make(map[string]models.WatchlistItem, len(items))
			for _, item := range items {
				normalized := normalizeItem(item, s.now)
				perUser[normalized.Key()] = normalized
			}
			s.items[userID] = perUser
		}
		return nil
	}

	// Older deployments stored a single flat array without user scoping.
	var legacy []models.WatchlistItem
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("decode watchlist: %w", err)
	}

	perUser := make(map[string]models.WatchlistItem, len(legacy))
	for _, item := range legacy {
		normalized := normalizeItem(item, s.now)
		perUser[normalized.Key()] = normalized
	}
	s.items = map[string]map[string]models.WatchlistItem{
		models.DefaultUserID: perUser,
	}
	return nil
}

func (s *Service) saveLocked() error {
	byUser := make(map[string][]models.WatchlistItem, len(s.items))
	for userID, collection := range s.items {
		items := make([]models.WatchlistItem, 0, len(collection))
		for _, item := range collection {
			items = append(items, item)
		}

		sort.Slice(items, func(i, j int) bool {
			if items[i].AddedAt.Equal(items[j].AddedAt) {
				return items[i].Key() < items[j].Key()
			}
			return items[i].AddedAt.Before(items[j].AddedAt)
		})

		byUser[userID] = items
	}

	data, err := json.MarshalIndent(byUser, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := s.store.Write(storageKey, data); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	return nil
}

func (s *Service) ensureUserLocked(userID string) map[string]models.WatchlistItem {
	perUser, ok := s.items[userID]
	if !ok {
		perUser = make(map[string]models.WatchlistItem)
		s.items[userID] = perUser
	}
	return perUser
}

func normalizeItem(item models.WatchlistItem, now func() time.Time) models.WatchlistItem {
	if strings.TrimSpace(string(item.Kind)) != "" {
		item.Kind = models.ParseKind(string(item.Kind))
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = now().UTC()
	}
	return item
}
