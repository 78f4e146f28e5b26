package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"vortex/models"
	"vortex/services/catalog"
)

type catalogService interface {
	Section(ctx context.Context, kind models.Kind, page int, country string) models.Page
	Trending(ctx context.Context, filter string, page int, country string) models.Page
	Search(ctx context.Context, term string) []models.Title
	Recommendations(ctx context.Context, kind models.Kind, tmdbID int64) []models.Title
}

var _ catalogService = (*catalog.Service)(nil)

type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

// Movies serves one browse page of the movie catalog.
func (h *CatalogHandler) Movies(w http.ResponseWriter, r *http.Request) {
	page := h.Service.Section(r.Context(), models.KindMovie, queryPage(r), r.URL.Query().Get("country"))
	writeJSON(w, page)
}

// Series serves one browse page of the TV catalog.
func (h *CatalogHandler) Series(w http.ResponseWriter, r *http.Request) {
	page := h.Service.Section(r.Context(), models.KindSeries, queryPage(r), r.URL.Query().Get("country"))
	writeJSON(w, page)
}

// Trending serves the merged trending feed. The filter query narrows to one
// kind; anything unrecognized means both.
func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := h.Service.Trending(r.Context(), q.Get("filter"), queryPage(r), q.Get("country"))
	writeJSON(w, page)
}

// Search serves title search results for the q parameter.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}
	items := h.Service.Search(r.Context(), term)
	if items == nil {
		items = []models.Title{}
	}
	writeJSON(w, items)
}

// Recommendations serves related titles for one entry.
func (h *CatalogHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := models.ParseKind(strings.TrimSpace(q.Get("kind")))
	tmdbID, err := strconv.ParseInt(strings.TrimSpace(q.Get("tmdbId")), 10, 64)
	if err != nil || tmdbID <= 0 {
		http.Error(w, "tmdbId parameter is required", http.StatusBadRequest)
		return
	}
	items := h.Service.Recommendations(r.Context(), kind, tmdbID)
	if items == nil {
		items = []models.Title{}
	}
	writeJSON(w, items)
}

func (h *CatalogHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
