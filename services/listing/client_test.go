package listing

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"vortex/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestFetchPageDecodesResult(t *testing.T) {
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/movies/latest/page-2.json" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			body := bytes.NewBufferString(`{"result":[{"imdb_id":"tt0133093","title":"The Matrix 1999","tmdb_id":603,"quality":"HD","embed_url":"https://example.com/embed/tt0133093"}]}`)
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(body), Header: make(http.Header)}, nil
		}),
	}

	c, err := NewClient("https://listing.example", httpc)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	entries, err := c.FetchPage(context.Background(), models.KindMovie, 2)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].IMDBID != "tt0133093" || entries[0].TMDBID != 603 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestFetchPageSeriesPath(t *testing.T) {
	var requested string
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			requested = req.URL.Path
			body := bytes.NewBufferString(`{"result":[]}`)
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(body), Header: make(http.Header)}, nil
		}),
	}

	c, _ := NewClient("https://listing.example", httpc)
	if _, err := c.FetchPage(context.Background(), models.KindSeries, 1); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if requested != "/tvshows/latest/page-1.json" {
		t.Fatalf("unexpected path: %s", requested)
	}
}

func TestFetchPageClientErrorNotRetried(t *testing.T) {
	calls := 0
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(bytes.NewBufferString("")), Header: make(http.Header)}, nil
		}),
	}

	c, _ := NewClient("https://listing.example", httpc)
	if _, err := c.FetchPage(context.Background(), models.KindMovie, 999); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt for client errors, got %d", calls)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   ", nil); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
