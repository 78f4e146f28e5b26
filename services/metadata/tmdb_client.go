package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"vortex/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"
	// w500 is plenty for catalog cards (~200-300px rendered width).
	tmdbPosterSize = "w500"

	maxRecommendations = 6
)

var errNotConfigured = errors.New("tmdb api key not configured")

type tmdbClient struct {
	apiKey   string
	language string
	httpc    *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTMDBClient(apiKey, language string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:      strings.TrimSpace(apiKey),
		language:    language,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond, // TMDB has generous rate limits
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// doGET performs an HTTP GET with rate limiting and retry with exponential
// backoff on 429/5xx responses.
func (c *tmdbClient) doGET(ctx context.Context, endpoint string, v any) error {
	var lastErr error
	backoff := 300 * time.Millisecond

	for attempt := 0; attempt < 3; attempt++ {
		c.throttleMu.Lock()
		since := time.Since(c.lastRequest)
		if since < c.minInterval {
			time.Sleep(c.minInterval - since)
		}
		c.lastRequest = time.Now()
		c.throttleMu.Unlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = err
			log.Printf("[tmdb] http error (attempt %d/3): %v", attempt+1, err)
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			log.Printf("[tmdb] rate limited or server error (attempt %d/3): status %d", attempt+1, resp.StatusCode)
			lastErr = fmt.Errorf("tmdb request failed: %s", resp.Status)
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return fmt.Errorf("tmdb request failed: %s", resp.Status)
		}

		err = json.NewDecoder(resp.Body).Decode(v)
		resp.Body.Close()
		if err != nil {
			return err
		}
		return nil
	}

	return lastErr
}

// buildEndpoint joins path segments onto the TMDB base URL and appends the
// api_key plus any extra query parameters.
func (c *tmdbClient) buildEndpoint(extra url.Values, segments ...string) (string, error) {
	endpoint, err := url.JoinPath(tmdbBaseURL, segments...)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if lang := strings.TrimSpace(c.language); lang != "" {
		q.Set("language", normalizeLanguage(lang))
	}
	for key, vals := range extra {
		for _, val := range vals {
			q.Add(key, val)
		}
	}
	return endpoint + "?" + q.Encode(), nil
}

// apiMediaType maps a Kind onto TMDB's movie/tv URL segment.
func apiMediaType(kind models.Kind) string {
	if kind == models.KindMovie {
		return "movie"
	}
	return "tv"
}

type tmdbDetailsResponse struct {
	ID                  int64  `json:"id"`
	PosterPath          string `json:"poster_path"`
	ProductionCountries []struct {
		ISO31661 string `json:"iso_3166_1"`
	} `json:"production_countries"`
	OriginCountry []string `json:"origin_country"`
}

// fetchPosterPath retrieves the poster path for a title.
func (c *tmdbClient) fetchPosterPath(ctx context.Context, kind models.Kind, tmdbID int64) (string, error) {
	details, err := c.fetchDetails(ctx, kind, tmdbID)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(details.PosterPath), nil
}

// fetchCountryCodes retrieves the production countries for movies and the
// origin countries for series.
func (c *tmdbClient) fetchCountryCodes(ctx context.Context, kind models.Kind, tmdbID int64) ([]string, error) {
	details, err := c.fetchDetails(ctx, kind, tmdbID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	codes := make([]string, 0, 4)
	add := func(code string) {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return
		}
		if _, dup := seen[code]; dup {
			return
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	if kind == models.KindMovie {
		for _, pc := range details.ProductionCountries {
			add(pc.ISO31661)
		}
	} else {
		for _, oc := range details.OriginCountry {
			add(oc)
		}
	}
	return codes, nil
}

func (c *tmdbClient) fetchDetails(ctx context.Context, kind models.Kind, tmdbID int64) (*tmdbDetailsResponse, error) {
	if !c.isConfigured() {
		return nil, errNotConfigured
	}
	endpoint, err := c.buildEndpoint(nil, apiMediaType(kind), strconv.FormatInt(tmdbID, 10))
	if err != nil {
		return nil, err
	}
	var payload tmdbDetailsResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

type tmdbExternalIDsResponse struct {
	IMDBID string `json:"imdb_id"`
}

// fetchExternalID retrieves the IMDB ID for a TMDB movie or TV show.
func (c *tmdbClient) fetchExternalID(ctx context.Context, kind models.Kind, tmdbID int64) (string, error) {
	if !c.isConfigured() {
		return "", errNotConfigured
	}
	endpoint, err := c.buildEndpoint(nil, apiMediaType(kind), strconv.FormatInt(tmdbID, 10), "external_ids")
	if err != nil {
		return "", err
	}
	var payload tmdbExternalIDsResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.IMDBID), nil
}

type tmdbListResponse struct {
	Results []struct {
		ID            int64   `json:"id"`
		Name          string  `json:"name"`
		Title         string  `json:"title"`
		OriginalName  string  `json:"original_name"`
		OriginalTitle string  `json:"original_title"`
		Overview      string  `json:"overview"`
		PosterPath    string  `json:"poster_path"`
		VoteAverage   float64 `json:"vote_average"`
		FirstAirDate  string  `json:"first_air_date"`
		ReleaseDate   string  `json:"release_date"`
	} `json:"results"`
}

// fetchTrendingPage retrieves one page of TMDB's trending feed for a kind.
// window is "day" or "week"; anything else falls back to "week".
func (c *tmdbClient) fetchTrendingPage(ctx context.Context, kind models.Kind, page int, window string) ([]models.Title, error) {
	if !c.isConfigured() {
		return nil, errNotConfigured
	}
	if window != "day" && window != "week" {
		window = "week"
	}
	if page < 1 {
		page = 1
	}

	extra := url.Values{}
	extra.Set("page", strconv.Itoa(page))
	endpoint, err := c.buildEndpoint(extra, "trending", apiMediaType(kind), window)
	if err != nil {
		return nil, err
	}

	var payload tmdbListResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return c.mapListResults(kind, payload), nil
}

// fetchRecommendations retrieves up to 6 titles related to the given one.
func (c *tmdbClient) fetchRecommendations(ctx context.Context, kind models.Kind, tmdbID int64) ([]models.Title, error) {
	if !c.isConfigured() {
		return nil, errNotConfigured
	}
	endpoint, err := c.buildEndpoint(nil, apiMediaType(kind), strconv.FormatInt(tmdbID, 10), "recommendations")
	if err != nil {
		return nil, err
	}

	var payload tmdbListResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	titles := c.mapListResults(kind, payload)
	if len(titles) > maxRecommendations {
		titles = titles[:maxRecommendations]
	}
	return titles, nil
}

func (c *tmdbClient) mapListResults(kind models.Kind, payload tmdbListResponse) []models.Title {
	titles := make([]models.Title, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.ID == 0 {
			continue
		}
		title := models.Title{
			ID:       models.CacheKey(kind, r.ID),
			Name:     pickTMDBName(kind, r.Name, r.OriginalName, r.Title, r.OriginalTitle),
			Kind:     kind,
			Overview: r.Overview,
			TMDBID:   r.ID,
		}
		if r.VoteAverage > 0 {
			title.Rating = roundRating(r.VoteAverage)
		}
		if year := parseTMDBYear(r.ReleaseDate, r.FirstAirDate); year != 0 {
			title.Year = year
		}
		if poster := buildTMDBImageURL(r.PosterPath, tmdbPosterSize); poster != "" {
			title.PosterURL = poster
		}
		titles = append(titles, title)
	}
	return titles
}

func pickTMDBName(kind models.Kind, seriesName, originalName, movieTitle, originalTitle string) string {
	if kind == models.KindMovie {
		if movieTitle != "" {
			return movieTitle
		}
		if originalTitle != "" {
			return originalTitle
		}
	}
	if seriesName != "" {
		return seriesName
	}
	if originalName != "" {
		return originalName
	}
	if movieTitle != "" {
		return movieTitle
	}
	return "Untitled"
}

func parseTMDBYear(movieDate, seriesDate string) int {
	date := movieDate
	if date == "" {
		date = seriesDate
	}
	if date == "" {
		return 0
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Year()
	}
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil && y > 1000 {
			return y
		}
	}
	return 0
}

func buildTMDBImageURL(imagePath, size string) string {
	trimmed := strings.TrimSpace(imagePath)
	if trimmed == "" {
		return ""
	}
	fullPath := path.Join(size, strings.TrimPrefix(trimmed, "/"))
	return fmt.Sprintf("%s/%s", tmdbImageBaseURL, fullPath)
}

func normalizeLanguage(lang string) string {
	lang = strings.ReplaceAll(lang, "_", "-")
	if len(lang) == 2 {
		return strings.ToLower(lang) + "-US"
	}
	if len(lang) >= 5 {
		return strings.ToLower(lang[:2]) + "-" + strings.ToUpper(lang[3:])
	}
	return "en-US"
}

func roundRating(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
