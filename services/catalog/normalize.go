package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"vortex/models"
	"vortex/services/listing"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// defaultYear is assumed when a listing title carries no recognizable year.
const defaultYear = 2024

// ExtractYear pulls a four-digit year out of free text, defaulting when none
// is present.
func ExtractYear(text string) int {
	if match := yearPattern.FindString(text); match != "" {
		year := 0
		for _, ch := range match {
			year = year*10 + int(ch-'0')
		}
		return year
	}
	return defaultYear
}

// placeholderPosterURL builds the deterministic placeholder assigned to
// titles before poster hydration, seeded by the stable ID.
func placeholderPosterURL(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/500/750.jpg", seed)
}

// IsPlaceholderPoster reports whether a poster URL is still the placeholder
// and therefore eligible for replacement during hydration.
func IsPlaceholderPoster(posterURL string) bool {
	return posterURL == "" || strings.Contains(posterURL, "picsum.photos")
}

// NormalizeListing maps raw listing entries onto uniform title records.
// The listing feed carries no genre or rating, so defaults are assigned
// per kind and refined later by enrichment.
func NormalizeListing(kind models.Kind, entries []listing.Entry) []models.Title {
	titles := make([]models.Title, 0, len(entries))
	for _, e := range entries {
		if e.IMDBID == "" && e.TMDBID == 0 {
			continue
		}

		id := e.IMDBID
		if id == "" {
			id = models.CacheKey(kind, e.TMDBID)
		}

		title := models.Title{
			ID:        id,
			Name:      e.Title,
			Kind:      kind,
			Genre:     defaultGenre(kind),
			Rating:    8.5,
			Year:      ExtractYear(e.Title),
			Overview:  describeEntry(kind, e),
			PosterURL: placeholderPosterURL(id),
			IMDBID:    e.IMDBID,
			TMDBID:    e.TMDBID,
			Quality:   e.Quality,
			EmbedURL:  e.EmbedURL,
		}
		titles = append(titles, title)
	}
	return titles
}

func defaultGenre(kind models.Kind) string {
	if kind == models.KindMovie {
		return "action"
	}
	return "drama"
}

func describeEntry(kind models.Kind, e listing.Entry) string {
	if kind == models.KindMovie && e.Quality != "" {
		return fmt.Sprintf("%s - Quality: %s", e.Title, e.Quality)
	}
	if kind == models.KindSeries {
		return fmt.Sprintf("%s - TV Series", e.Title)
	}
	return e.Title
}
