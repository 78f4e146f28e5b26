package catalog

import (
	"context"
	"strings"
	"sync"

	"vortex/models"
)

// Trending filter values.
const (
	TrendingAll    = "all"
	TrendingMovies = "movie"
	TrendingSeries = "series"
)

// trendingState holds the incrementally loaded trending catalogs. Pages are
// appended as deeper browse pages are requested and never refetched within
// the process lifetime.
type trendingState struct {
	mu         sync.Mutex
	movies     []models.Title
	series     []models.Title
	moviePage  int
	seriesPage int
}

// Trending returns one page of the merged trending feed. Both kinds grow in
// lockstep when no kind filter is set, so the merged view stays balanced as
// the reader pages deeper. Items that resolve no IMDB ID are dropped from
// the page after hydration.
func (s *Service) Trending(ctx context.Context, filter string, page int, country string) models.Page {
	filter = normalizeTrendingFilter(filter)
	if page < 1 {
		page = 1
	}

	if s.opts.DemoMode {
		return Paginate(FilterByCountry(trendingPoolFor(filter, FallbackTitles(models.KindMovie, false), FallbackTitles(models.KindSeries, false)), country), page, s.opts.PageSize)
	}

	s.ensureTrendingLoaded(ctx, filter, page*s.opts.PageSize)

	s.trending.mu.Lock()
	pool := trendingPoolFor(filter, s.trending.movies, s.trending.series)
	s.trending.mu.Unlock()

	result := Paginate(pool, page, s.opts.PageSize)
	s.hydrate(ctx, result.Items)
	s.storeHydrated(result.Items)

	kept := make([]models.Title, 0, len(result.Items))
	for _, item := range result.Items {
		if strings.HasPrefix(item.IMDBID, "tt") {
			kept = append(kept, item)
		}
	}
	result.Items = FilterByCountry(kept, country)
	return result
}

// ensureTrendingLoaded grows the trending catalogs until the filtered view
// covers needed items or the feed is exhausted. Each round fetches the next
// page of every kind the filter allows, both kinds concurrently.
func (s *Service) ensureTrendingLoaded(ctx context.Context, filter string, needed int) {
	st := &s.trending
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.moviePage == 0 {
		st.moviePage, st.seriesPage = 1, 1
	}

	for {
		if len(trendingPoolFor(filter, st.movies, st.series)) >= needed {
			break
		}

		canMovies := filter != TrendingSeries && st.moviePage <= s.opts.TrendingMaxPages
		canSeries := filter != TrendingMovies && st.seriesPage <= s.opts.TrendingMaxPages
		if !canMovies && !canSeries {
			break
		}

		var moreMovies, moreSeries []models.Title
		var wg sync.WaitGroup
		if canMovies {
			p := st.moviePage
			st.moviePage++
			wg.Add(1)
			go func() {
				defer wg.Done()
				moreMovies = s.metadata.TrendingPage(ctx, models.KindMovie, p, s.opts.TrendingWindow)
			}()
		}
		if canSeries {
			p := st.seriesPage
			st.seriesPage++
			wg.Add(1)
			go func() {
				defer wg.Done()
				moreSeries = s.metadata.TrendingPage(ctx, models.KindSeries, p, s.opts.TrendingWindow)
			}()
		}
		wg.Wait()

		st.movies = append(st.movies, moreMovies...)
		st.series = append(st.series, moreSeries...)
		if len(moreMovies) == 0 && len(moreSeries) == 0 {
			break
		}
	}

	if len(st.movies) == 0 && len(st.series) == 0 {
		st.movies = FallbackTitles(models.KindMovie, false)
		st.series = FallbackTitles(models.KindSeries, false)
	}
}

// storeHydrated writes hydrated page items back into the retained trending
// sequences. Pagination and filtering hand out copies, so without the
// write-back every render of the same page would resolve the same posters
// and IMDB IDs again.
func (s *Service) storeHydrated(items []models.Title) {
	if len(items) == 0 {
		return
	}
	byKey := make(map[string]models.Title, len(items))
	for _, item := range items {
		byKey[item.Key()] = item
	}

	st := &s.trending
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, list := range [][]models.Title{st.movies, st.series} {
		for i := range list {
			if hydrated, ok := byKey[list[i].Key()]; ok {
				list[i] = hydrated
			}
		}
	}
}

// trendingPoolFor selects the view the filter asks for. The merged view
// keeps first-seen order across movies then series, deduplicated by key.
func trendingPoolFor(filter string, movies, series []models.Title) []models.Title {
	switch filter {
	case TrendingMovies:
		return cloneTitles(movies)
	case TrendingSeries:
		return cloneTitles(series)
	}

	seen := make(map[string]struct{}, len(movies)+len(series))
	merged := make([]models.Title, 0, len(movies)+len(series))
	for _, list := range [][]models.Title{movies, series} {
		for _, t := range list {
			k := t.Key()
			if k == "" {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, t)
		}
	}
	return merged
}

func normalizeTrendingFilter(filter string) string {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case TrendingMovies, "movies":
		return TrendingMovies
	case TrendingSeries, "tv-show", "tvshows", "tv":
		return TrendingSeries
	default:
		return TrendingAll
	}
}

func cloneTitles(items []models.Title) []models.Title {
	out := make([]models.Title, len(items))
	copy(out, items)
	return out
}
