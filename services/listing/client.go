package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"vortex/models"
)

const DefaultBaseURL = "https://vidsrc-embed.ru"

// ErrBaseURLRequired is returned when the client is constructed without a
// listing API base URL.
var ErrBaseURLRequired = errors.New("listing base url is required")

// Entry is one raw row from the listing API's latest feed.
type Entry struct {
	IMDBID   string `json:"imdb_id"`
	Title    string `json:"title"`
	TMDBID   int64  `json:"tmdb_id"`
	Quality  string `json:"quality"`
	EmbedURL string `json:"embed_url"`
}

type pageResponse struct {
	Result []Entry `json:"result"`
}

// Client fetches paginated catalog listings from the primary provider.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, httpc *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpc: httpc}, nil
}

// FetchPage retrieves one page of the latest feed for the given kind.
// Transient failures (transport errors, 5xx) are retried with backoff;
// client errors are returned immediately.
func (c *Client) FetchPage(ctx context.Context, kind models.Kind, page int) ([]Entry, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/%s/latest/page-%d.json", c.baseURL, pathSegment(kind), page)

	var entries []Entry
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("listing page %d failed: %s", page, resp.Status)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("listing page %d failed: %s", page, resp.Status))
			}

			var payload pageResponse
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				return retry.Unrecoverable(err)
			}
			entries = payload.Result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// pathSegment maps a kind onto the listing API's URL naming.
func pathSegment(kind models.Kind) string {
	if kind == models.KindMovie {
		return "movies"
	}
	return "tvshows"
}
