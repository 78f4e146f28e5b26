package models

import "strconv"

// Kind classifies a catalog title.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind normalizes loose media-type strings into a Kind.
func ParseKind(s string) Kind {
	switch s {
	case "movie", "movies", "film", "films":
		return KindMovie
	default:
		return KindSeries
	}
}

// Title is the canonical record flowing through the catalog. Records are
// value objects by convention; hydration fills Poster/CountryCodes/IMDBID
// in place and is idempotent.
type Title struct {
	ID           string   `json:"id"`
	Name         string   `json:"title"`
	Kind         Kind     `json:"kind"`
	Genre        string   `json:"genre,omitempty"`
	Rating       float64  `json:"rating,omitempty"` // 0 = unrated
	Year         int      `json:"year,omitempty"`
	Overview     string   `json:"description,omitempty"`
	PosterURL    string   `json:"posterUrl,omitempty"`
	IMDBID       string   `json:"imdbId,omitempty"`
	TMDBID       int64    `json:"tmdbId,omitempty"`
	CountryCodes []string `json:"countryCodes,omitempty"`
	Quality      string   `json:"quality,omitempty"`
	EmbedURL     string   `json:"embedUrl,omitempty"`
}

// Key returns the canonical dedupe/join key: the IMDB ID when known,
// otherwise kind plus TMDB ID.
func (t Title) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return CacheKey(t.Kind, t.TMDBID)
}

// CacheKey builds the composite key used by the poster and country caches.
func CacheKey(kind Kind, tmdbID int64) string {
	return string(kind) + ":" + strconv.FormatInt(tmdbID, 10)
}

// Page is one page of a paginated item list.
type Page struct {
	Items      []Title `json:"items"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
	TotalItems int     `json:"totalItems"`
	PageSize   int     `json:"pageSize"`
}
