package catalog

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"vortex/models"
)

// hydrate fills in the fields the listing feed cannot provide: real posters,
// country codes and IMDB IDs. It only touches fields that are still unset,
// so repeated hydration is idempotent, and a failed lookup simply leaves a
// field empty for the next pass.
func (s *Service) hydrate(ctx context.Context, items []models.Title) {
	if len(items) == 0 || !s.metadata.Enabled() {
		return
	}

	workers := pool.New().WithMaxGoroutines(s.opts.HydrateConcurrency)
	for i := range items {
		item := &items[i]
		if item.TMDBID == 0 || !needsHydration(item) {
			continue
		}
		workers.Go(func() {
			if IsPlaceholderPoster(item.PosterURL) {
				if posterURL, ok := s.metadata.PosterURL(ctx, item.Kind, item.TMDBID); ok {
					item.PosterURL = posterURL
				}
			}
			if len(item.CountryCodes) == 0 {
				item.CountryCodes = s.metadata.CountryCodes(ctx, item.Kind, item.TMDBID)
			}
			if item.IMDBID == "" {
				item.IMDBID = s.metadata.ExternalID(ctx, item.Kind, item.TMDBID)
			}
		})
	}
	workers.Wait()
}

func needsHydration(item *models.Title) bool {
	return IsPlaceholderPoster(item.PosterURL) || len(item.CountryCodes) == 0 || item.IMDBID == ""
}
