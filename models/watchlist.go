package models

import "time"

// WatchlistItem represents a title saved by the user for quick access.
type WatchlistItem struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"` // movie | series
	Name      string    `json:"title"`
	Overview  string    `json:"description,omitempty"`
	Year      int       `json:"year,omitempty"`
	PosterURL string    `json:"posterUrl,omitempty"`
	TMDBID    int64     `json:"tmdbId,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// WatchlistUpsert captures data required to insert or update a watchlist item.
type WatchlistUpsert struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	Name      string `json:"title"`
	Overview  string `json:"description,omitempty"`
	Year      int    `json:"year,omitempty"`
	PosterURL string `json:"posterUrl,omitempty"`
	TMDBID    int64  `json:"tmdbId,omitempty"`
}

// Key returns a stable identifier combining kind and ID.
func (w WatchlistItem) Key() string {
	return string(w.Kind) + ":" + w.ID
}

// Key returns a stable identifier combining kind and ID.
func (w WatchlistUpsert) Key() string {
	return string(w.Kind) + ":" + w.ID
}
