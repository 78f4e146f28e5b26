package catalog

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vortex/internal/cache"
	"vortex/internal/store"
	"vortex/models"
	"vortex/services/listing"
	"vortex/services/metadata"
)

const (
	searchCacheKey = "vortexSearchCache"

	// Search results go stale quickly as the latest feed advances.
	searchTTL = 10 * time.Minute
)

// sectionTotals is the published extent of the listing provider's latest
// feed. The feed exposes no discovery endpoint, so these are fixed.
var sectionTotals = map[models.Kind]struct {
	Pages int
	Items int
}{
	models.KindMovie:  {Pages: 1749, Items: 88023},
	models.KindSeries: {Pages: 394, Items: 19704},
}

type listingProvider interface {
	FetchPage(ctx context.Context, kind models.Kind, page int) ([]listing.Entry, error)
}

type metadataProvider interface {
	Enabled() bool
	PosterURL(ctx context.Context, kind models.Kind, tmdbID int64) (string, bool)
	CountryCodes(ctx context.Context, kind models.Kind, tmdbID int64) []string
	ExternalID(ctx context.Context, kind models.Kind, tmdbID int64) string
	TrendingPage(ctx context.Context, kind models.Kind, page int, window string) []models.Title
	Recommendations(ctx context.Context, kind models.Kind, tmdbID int64) []models.Title
}

var (
	_ listingProvider  = (*listing.Client)(nil)
	_ metadataProvider = (*metadata.Service)(nil)
)

// Options tunes the catalog service. Zero values fall back to defaults.
type Options struct {
	PageSize           int
	HydrateConcurrency int
	TrendingMaxPages   int
	SearchPagesPerKind int
	TrendingWindow     string
	DemoMode           bool
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = 20
	}
	if o.HydrateConcurrency <= 0 {
		o.HydrateConcurrency = 8
	}
	if o.TrendingMaxPages <= 0 {
		o.TrendingMaxPages = 500
	}
	if o.SearchPagesPerKind <= 0 {
		o.SearchPagesPerKind = 5
	}
	if o.TrendingWindow == "" {
		o.TrendingWindow = "day"
	}
	return o
}

// Service assembles browsable catalog pages from the listing feed, enriched
// with TMDB metadata. All operations are best-effort and degrade to the
// bundled fallback dataset rather than surfacing provider failures.
type Service struct {
	listing  listingProvider
	metadata metadataProvider
	opts     Options

	searchCache *cache.Cache[[]models.Title]
	trending    trendingState
}

func NewService(lp listingProvider, mp metadataProvider, st store.Store, opts Options) *Service {
	return &Service{
		listing:     lp,
		metadata:    mp,
		opts:        opts.withDefaults(),
		searchCache: cache.New[[]models.Title](st, searchCacheKey, searchTTL),
	}
}

// Section returns one page of the latest feed for a kind, hydrated and
// optionally narrowed to a country. A browse page maps one to one onto a
// provider page, so the totals come from the provider's published extent.
func (s *Service) Section(ctx context.Context, kind models.Kind, page int, country string) models.Page {
	if s.opts.DemoMode {
		return s.fallbackPage(ctx, kind, page, country)
	}

	totals := sectionTotals[kind]
	if page < 1 {
		page = 1
	}
	if page > totals.Pages {
		page = totals.Pages
	}

	entries, err := s.listing.FetchPage(ctx, kind, page)
	if err != nil {
		log.Printf("[catalog] %s page %d fetch failed: %v", kind, page, err)
	}
	items := NormalizeListing(kind, entries)
	if len(items) == 0 {
		return s.fallbackPage(ctx, kind, page, country)
	}

	s.hydrate(ctx, items)
	items = FilterByCountry(items, country)

	return models.Page{
		Items:      items,
		Page:       page,
		TotalPages: totals.Pages,
		TotalItems: totals.Items,
		PageSize:   s.opts.PageSize,
	}
}

// fallbackPage serves the bundled dataset when the listing feed yields
// nothing usable. The dataset is complete, so no hydration round-trips run.
func (s *Service) fallbackPage(_ context.Context, kind models.Kind, page int, country string) models.Page {
	items := FilterByCountry(FallbackTitles(kind, false), country)
	return Paginate(items, page, s.opts.PageSize)
}

// Search fans out across the first pages of both latest feeds, caches the
// fetched pool under the lowercased term and filters it by term. Repeated
// searches within the TTL never refetch.
func (s *Service) Search(ctx context.Context, term string) []models.Title {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	key := strings.ToLower(term)

	if s.opts.DemoMode {
		return searchFallback(key)
	}

	pool, ok := s.searchCache.Get(key)
	if !ok {
		pool = s.fetchSearchPool(ctx)
		if len(pool) > 0 {
			s.searchCache.Set(key, pool)
		}
	}

	matched := make([]models.Title, 0)
	for _, t := range pool {
		if matchesTerm(t, key) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 && len(pool) == 0 {
		return searchFallback(key)
	}

	s.hydrate(ctx, matched)
	return matched
}

// fetchSearchPool gathers the first N pages of each kind concurrently.
// Failed pages are skipped; the pool is whatever arrived.
func (s *Service) fetchSearchPool(ctx context.Context) []models.Title {
	type slot struct {
		kind models.Kind
		page int
	}
	slots := make([]slot, 0, 2*s.opts.SearchPagesPerKind)
	for _, kind := range []models.Kind{models.KindMovie, models.KindSeries} {
		for p := 1; p <= s.opts.SearchPagesPerKind; p++ {
			slots = append(slots, slot{kind: kind, page: p})
		}
	}

	results := make([][]models.Title, len(slots))
	g, gctx := errgroup.WithContext(ctx)
	for i, sl := range slots {
		i, sl := i, sl
		g.Go(func() error {
			entries, err := s.listing.FetchPage(gctx, sl.kind, sl.page)
			if err != nil {
				log.Printf("[catalog] search fetch %s page %d failed: %v", sl.kind, sl.page, err)
				return nil
			}
			results[i] = NormalizeListing(sl.kind, entries)
			return nil
		})
	}
	g.Wait()

	seen := make(map[string]struct{})
	pool := make([]models.Title, 0)
	for _, batch := range results {
		for _, t := range batch {
			k := t.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			pool = append(pool, t)
		}
	}
	return pool
}

// searchFallback matches the term against the bundled dataset. Used in demo
// mode and whenever the live feeds yield no pool at all.
func searchFallback(lowerTerm string) []models.Title {
	matched := make([]models.Title, 0)
	for _, t := range FallbackTitles("", true) {
		if matchesTerm(t, lowerTerm) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matchesTerm(t models.Title, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(t.Name), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Overview), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Genre), lowerTerm) {
		return true
	}
	return t.Year != 0 && strconv.Itoa(t.Year) == lowerTerm
}

// Recommendations returns related titles for one entry, empty when the
// metadata provider is unavailable. Demo mode recommends from the bundled
// dataset without touching the network.
func (s *Service) Recommendations(ctx context.Context, kind models.Kind, tmdbID int64) []models.Title {
	if s.opts.DemoMode {
		related := make([]models.Title, 0, 6)
		for _, t := range FallbackTitles(kind, false) {
			if t.TMDBID == tmdbID {
				continue
			}
			related = append(related, t)
			if len(related) == 6 {
				break
			}
		}
		return related
	}
	return s.metadata.Recommendations(ctx, kind, tmdbID)
}
