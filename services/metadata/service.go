package metadata

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"vortex/internal/cache"
	"vortex/internal/store"
	"vortex/models"
)

const (
	posterCacheKey  = "vortexPosterCache"
	countryCacheKey = "vortexCountryCache"

	// Posters and country codes change rarely; 30 days matches how long a
	// stale poster is tolerable.
	enrichmentTTL       = 30 * 24 * time.Hour
	posterCacheMaxItems = 500
)

// Service exposes best-effort metadata enrichment backed by TMDB. Every
// lookup degrades to a zero value on failure; a missing API key disables
// the feature rather than erroring.
type Service struct {
	mu     sync.RWMutex
	client *tmdbClient
	httpc  *http.Client

	posterCache  *cache.Cache[string]
	countryCache *cache.Cache[[]string]
}

// NewService creates the metadata service with caches persisted through st.
// httpc may be nil; a default client with a timeout is used.
func NewService(apiKey, language string, st store.Store, httpc *http.Client) *Service {
	return &Service{
		client:       newTMDBClient(apiKey, language, httpc),
		httpc:        httpc,
		posterCache:  cache.New[string](st, posterCacheKey, enrichmentTTL, cache.WithMaxEntries(posterCacheMaxItems)),
		countryCache: cache.New[[]string](st, countryCacheKey, enrichmentTTL),
	}
}

// Enabled reports whether a TMDB API key is configured.
func (s *Service) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client.isConfigured()
}

// UpdateAPIKey swaps the TMDB credentials at runtime and drops the caches'
// in-memory view. Persisted entries survive and keep serving until they
// expire; poster and country data is key-independent, so that is safe.
func (s *Service) UpdateAPIKey(apiKey, language string) {
	s.mu.Lock()
	s.client = newTMDBClient(apiKey, language, s.httpc)
	s.mu.Unlock()

	s.posterCache.Reset()
	s.countryCache.Reset()
	log.Printf("[metadata] updated TMDB credentials")
}

func (s *Service) tmdb() *tmdbClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// PosterURL returns the full poster URL for a title, consulting the poster
// cache first. Absent on any failure or when no poster exists.
func (s *Service) PosterURL(ctx context.Context, kind models.Kind, tmdbID int64) (string, bool) {
	if tmdbID == 0 {
		return "", false
	}
	key := models.CacheKey(kind, tmdbID)
	if cached, ok := s.posterCache.Get(key); ok {
		return cached, cached != ""
	}

	c := s.tmdb()
	if !c.isConfigured() {
		return "", false
	}

	posterPath, err := c.fetchPosterPath(ctx, kind, tmdbID)
	if err != nil {
		log.Printf("[metadata] poster fetch failed for %s: %v", key, err)
		return "", false
	}
	posterURL := buildTMDBImageURL(posterPath, tmdbPosterSize)
	if posterURL == "" {
		return "", false
	}

	s.posterCache.Set(key, posterURL)
	return posterURL, true
}

// CountryCodes returns the hydrated country codes for a title, empty on any
// failure. Successful lookups (even empty ones) are cached to avoid
// repeated requests for titles without country data.
func (s *Service) CountryCodes(ctx context.Context, kind models.Kind, tmdbID int64) []string {
	if tmdbID == 0 {
		return nil
	}
	key := models.CacheKey(kind, tmdbID)
	if cached, ok := s.countryCache.Get(key); ok {
		return cached
	}

	c := s.tmdb()
	if !c.isConfigured() {
		return nil
	}

	codes, err := c.fetchCountryCodes(ctx, kind, tmdbID)
	if err != nil {
		log.Printf("[metadata] country fetch failed for %s: %v", key, err)
		return nil
	}
	if codes == nil {
		codes = []string{}
	}
	s.countryCache.Set(key, codes)
	return codes
}

// ExternalID resolves the canonical IMDB ID for a title, empty on failure.
func (s *Service) ExternalID(ctx context.Context, kind models.Kind, tmdbID int64) string {
	if tmdbID == 0 {
		return ""
	}
	c := s.tmdb()
	if !c.isConfigured() {
		return ""
	}
	imdbID, err := c.fetchExternalID(ctx, kind, tmdbID)
	if err != nil {
		log.Printf("[metadata] external id fetch failed for %s: %v", models.CacheKey(kind, tmdbID), err)
		return ""
	}
	return imdbID
}

// TrendingPage returns one page of TMDB's trending feed, empty on failure.
func (s *Service) TrendingPage(ctx context.Context, kind models.Kind, page int, window string) []models.Title {
	c := s.tmdb()
	if !c.isConfigured() {
		return nil
	}
	titles, err := c.fetchTrendingPage(ctx, kind, page, window)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[metadata] trending %s page %d failed: %v", kind, page, err)
		}
		return nil
	}
	return titles
}

// Recommendations returns up to 6 related titles, empty on failure.
func (s *Service) Recommendations(ctx context.Context, kind models.Kind, tmdbID int64) []models.Title {
	if tmdbID == 0 {
		return nil
	}
	c := s.tmdb()
	if !c.isConfigured() {
		return nil
	}
	titles, err := c.fetchRecommendations(ctx, kind, tmdbID)
	if err != nil {
		log.Printf("[metadata] recommendations fetch failed for %s: %v", models.CacheKey(kind, tmdbID), err)
		return nil
	}
	return titles
}
