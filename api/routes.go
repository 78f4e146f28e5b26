package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"vortex/handlers"
)

// handleOptions answers CORS preflight for routes without a dedicated
// Options method.
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	settingsHandler *handlers.SettingsHandler,
	catalogHandler *handlers.CatalogHandler,
	usersHandler *handlers.UsersHandler,
	watchlistHandler *handlers.WatchlistHandler,
) {
	api := r.PathPrefix("/api").Subrouter()

	// Settings
	api.HandleFunc("/settings", settingsHandler.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", settingsHandler.PutSettings).Methods(http.MethodPut)
	api.HandleFunc("/settings", settingsHandler.Options).Methods(http.MethodOptions)

	// Catalog browsing
	api.HandleFunc("/catalog/movies", catalogHandler.Movies).Methods(http.MethodGet)
	api.HandleFunc("/catalog/movies", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/tvshows", catalogHandler.Series).Methods(http.MethodGet)
	api.HandleFunc("/catalog/tvshows", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/trending", catalogHandler.Trending).Methods(http.MethodGet)
	api.HandleFunc("/catalog/trending", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/search", catalogHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/catalog/search", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/recommendations", catalogHandler.Recommendations).Methods(http.MethodGet)
	api.HandleFunc("/catalog/recommendations", catalogHandler.Options).Methods(http.MethodOptions)

	// User profiles
	api.HandleFunc("/users", usersHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/users", usersHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/users", usersHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/users/{userID}", usersHandler.Rename).Methods(http.MethodPatch)
	api.HandleFunc("/users/{userID}", usersHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/users/{userID}", usersHandler.Options).Methods(http.MethodOptions)

	// Per-user watchlist
	api.HandleFunc("/users/{userID}/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/watchlist", watchlistHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/users/{userID}/watchlist", watchlistHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/users/{userID}/watchlist/{kind}/{id}", watchlistHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/users/{userID}/watchlist/{kind}/{id}", handleOptions).Methods(http.MethodOptions)
}
