package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kasichka/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client talks to the product catalog, a PostgREST-style API keyed by an
// apikey header. Candidate search filters on keyword array overlap.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a catalog API client.
func NewClient(apiKey, baseURL string, debug bool) *Client {
	// the hosted catalog allows ~10 requests per second per key
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
		debug:       debug,
	}
}

// catalogProduct mirrors a row of the catalog's products table.
type catalogProduct struct {
	ID             string   `json:"id"`
	NormalizedName string   `json:"normalized_name"`
	Brand          string   `json:"brand"`
	Size           *float64 `json:"size"`
	Unit           string   `json:"unit"`
	Keywords       []string `json:"keywords"`
}

// SearchCandidates fetches catalog products whose keyword arrays overlap
// the given keywords. Returns an empty slice when nothing overlaps.
func (c *Client) SearchCandidates(ctx context.Context, keywords []string, limit int) ([]domain.MatchCandidate, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/rest/v1/products", c.baseURL)
	params := url.Values{}
	params.Add("select", "id,normalized_name,brand,size,unit,keywords")
	params.Add("keywords", "ov.{"+strings.Join(keywords, ",")+"}")
	params.Add("limit", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	c.debugf("searching candidates: %s", reqURL)

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.debugf("request error (attempt %d): %v", attempt, err)
			lastErr = err
			if sleepErr := sleepBackoff(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.debugf("API error (attempt %d) - status %d, body: %s", attempt, resp.StatusCode, string(body))
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// request is malformed or unauthorized, retrying won't help
				return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if sleepErr := sleepBackoff(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		var rows []catalogProduct
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode catalog response: %w", err)
		}

		c.debugf("found %d candidates for keywords %v", len(rows), keywords)
		return mapCandidates(rows), nil
	}

	log.Printf("[CATALOG] all retries failed: %v", lastErr)
	return nil, lastErr
}

// doRequest executes an HTTP GET request with catalog auth headers.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Kasichka/1.0")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

func mapCandidates(rows []catalogProduct) []domain.MatchCandidate {
	out := make([]domain.MatchCandidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.MatchCandidate{
			ID:             r.ID,
			NormalizedName: r.NormalizedName,
			Brand:          r.Brand,
			Size:           r.Size,
			Unit:           r.Unit,
			Keywords:       r.Keywords,
		})
	}
	return out
}

// sleepBackoff waits 500ms, 1s, 2s... between retries, bailing out early
// when the context is cancelled.
func sleepBackoff(ctx context.Context, attempt int) error {
	delay := time.Duration(500*(1<<(attempt-1))) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[CATALOG] "+format, args...)
	}
}
