package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// Production endpoints of the Bundesagentur job search service.
const (
	DefaultBaseURL = "https://rest.arbeitsagentur.de/jobboerse/jobsuche-service"
	DefaultAPIKey  = "jobboerse-jobsuche"

	searchPath = "/pc/v4/app/jobs"

	callTimeout    = 25 * time.Second
	maxBodyExcerpt = 600
)

// Cache stores raw response bodies with expiry; a nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Put(ctx context.Context, key, body string, ttl time.Duration) error
}

type Client struct {
	hc      *http.Client
	base    string
	apiKey  string
	limiter *HostLimiter
	cache   Cache

	searchTTL time.Duration
	detailTTL time.Duration
}

type Options struct {
	BaseURL   string
	APIKey    string
	Limiter   *HostLimiter
	Cache     Cache
	SearchTTL time.Duration
	DetailTTL time.Duration
}

func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	key := opts.APIKey
	if key == "" {
		key = DefaultAPIKey
	}
	searchTTL := opts.SearchTTL
	if searchTTL <= 0 {
		searchTTL = 5 * time.Minute
	}
	detailTTL := opts.DetailTTL
	if detailTTL <= 0 {
		detailTTL = time.Hour
	}
	return &Client{
		hc:        &http.Client{Timeout: callTimeout},
		base:      base,
		apiKey:    key,
		limiter:   opts.Limiter,
		cache:     opts.Cache,
		searchTTL: searchTTL,
		detailTTL: detailTTL,
	}
}

// BaseURL is exposed so the normalizer can absolutize relative detail links.
func (c *Client) BaseURL() string { return c.base }

// Search performs one parameterized search call. A failed call returns zero
// records plus a descriptive error; callers collect these per profile/bucket
// and never abort on them.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]map[string]any, error) {
	u := c.base + searchPath + "?" + p.values().Encode()

	body, err := c.get(ctx, u, p.CacheKey(), c.searchTTL, "Suche")
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, errors.New("Suche: Antwort war kein gültiges JSON.")
	}
	return extractItems(data), nil
}

// FetchDetails loads one job-detail record. rawURL may be absolute or
// relative to the service base. A record without a detail URL is a normal
// case handled by the caller, not here.
func (c *Client) FetchDetails(ctx context.Context, rawURL string) (map[string]any, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return nil, errors.New("Details: keine URL")
	}
	if !strings.HasPrefix(u, "http") {
		u = c.base + u
	}

	body, err := c.get(ctx, u, "details|"+u, c.detailTTL, "Details")
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, errors.New("Details: Antwort war kein gültiges JSON.")
	}
	return data, nil
}

// get runs one cached GET. kind prefixes the error strings ("Suche" /
// "Details") so collected diagnostics name the failing call.
func (c *Client) get(ctx context.Context, u, cacheKey string, ttl time.Duration, kind string) (string, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			return body, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return "", fmt.Errorf("%s-Request-Fehler: %T: %v", kind, err, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("%s-Request-Fehler: %T: %v", kind, err, err)
	}
	req.Header.Set("User-Agent", "Jobsuche/2.9.2 (de.arbeitsagentur.jobboerse; build:1077) jobwatch")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s-Request-Fehler: %T: %v", kind, err, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%s-Request-Fehler: %T: %v", kind, err, err)
	}
	body := string(b)

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s HTTP %d: %s", kind, res.StatusCode, excerpt(body))
	}

	if c.cache != nil {
		_ = c.cache.Put(ctx, cacheKey, body, ttl)
	}
	return body, nil
}

// extractItems handles the response-shape variants the service has used over
// time.
func extractItems(data map[string]any) []map[string]any {
	if items := asItemList(data["stellenangebote"]); items != nil {
		return items
	}
	if emb, ok := data["_embedded"].(map[string]any); ok {
		if items := asItemList(emb["stellenangebote"]); items != nil {
			return items
		}
		if items := asItemList(emb["jobs"]); items != nil {
			return items
		}
	}
	if items := asItemList(data["jobs"]); items != nil {
		return items
	}
	return nil
}

func asItemList(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// excerpt bounds error bodies so diagnostics don't flood the report. The cut
// backs up to a rune boundary so a multi-byte character is never split.
func excerpt(s string) string {
	if len(s) <= maxBodyExcerpt {
		return s
	}
	cut := maxBodyExcerpt
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
