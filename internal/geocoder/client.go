package geocoder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"place-resolver/internal/models"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

const (
	defaultBaseURL         = "https://api.geocode.earth"
	defaultTimeout         = 5 * time.Second
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
	defaultCacheTTL        = 30 * 24 * time.Hour

	searchPath  = "/v1/search"
	reversePath = "/v1/reverse"
)

// Cache is the storage used to avoid repeating remote lookups.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	RetryMax        int
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	Cache           Cache
	CacheTTL        time.Duration
	HTTPClient      *http.Client
}

// Client talks to a Pelias compatible geocoding API such as geocode.earth.
//
// Lookups never fail: transport, provider and decoding errors are logged
// and reported to the caller as an empty result.
type Client struct {
	baseURL  string
	apiKey   string
	timeout  time.Duration
	http     *retryablehttp.Client
	breaker  *gobreaker.CircuitBreaker
	cache    Cache
	cacheTTL time.Duration
}

// NewClient creates a new geocoder client
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	breakerTimeout := opts.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = defaultBreakerTimeout
	}
	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	httpClient := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		httpClient.HTTPClient = opts.HTTPClient
	}
	httpClient.Logger = nil
	httpClient.RetryMax = max(opts.RetryMax, 0)
	httpClient.RetryWaitMin = 100 * time.Millisecond
	httpClient.RetryWaitMax = time.Second
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "geocoder",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		Timeout: breakerTimeout,
		IsSuccessful: func(err error) bool {
			// the caller giving up says nothing about the provider's health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("geocoder: circuit breaker state changed")
		},
	})

	return &Client{
		baseURL:  baseURL,
		apiKey:   opts.APIKey,
		timeout:  timeout,
		http:     httpClient,
		breaker:  breaker,
		cache:    opts.Cache,
		cacheTTL: cacheTTL,
	}
}

// SearchByText forward geocodes free text.
func (c *Client) SearchByText(ctx context.Context, text string) []models.RemoteFeature {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []models.RemoteFeature{}
	}
	params := url.Values{"text": []string{trimmed}}
	return c.lookup(ctx, searchPath, "geo:v1:search:"+hashKey(strings.ToLower(trimmed)), params)
}

// SearchByCoordinates reverse geocodes a point.
func (c *Client) SearchByCoordinates(ctx context.Context, lat, lon float64) []models.RemoteFeature {
	params := url.Values{
		"point.lat": []string{strconv.FormatFloat(lat, 'f', -1, 64)},
		"point.lon": []string{strconv.FormatFloat(lon, 'f', -1, 64)},
	}
	return c.lookup(ctx, reversePath, "geo:v1:reverse:"+hashKey(fmt.Sprintf("%.6f,%.6f", lat, lon)), params)
}

func (c *Client) lookup(ctx context.Context, path, cacheKey string, params url.Values) []models.RemoteFeature {
	if features, ok := c.fromCache(ctx, cacheKey); ok {
		return features
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, path, params)
	})
	if err != nil {
		log.Warn().Err(err).Str("endpoint", path).Msg("geocoder: lookup failed")
		return []models.RemoteFeature{}
	}

	features := result.([]models.RemoteFeature)
	if len(features) > 0 {
		c.toCache(ctx, cacheKey, features)
	}
	return features
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]models.RemoteFeature, error) {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder: request failed: %w", redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocoder: request returned status %d", resp.StatusCode)
	}

	var payload featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("geocoder: failed to decode response: %w", err)
	}

	return payload.toFeatures(), nil
}

func (c *Client) fromCache(ctx context.Context, key string) ([]models.RemoteFeature, bool) {
	if c.cache == nil {
		return nil, false
	}
	cached, err := c.cache.Get(ctx, key)
	if err != nil || len(cached) == 0 {
		return nil, false
	}
	var features []models.RemoteFeature
	if err := json.Unmarshal(cached, &features); err != nil || len(features) == 0 {
		return nil, false
	}
	return features, true
}

func (c *Client) toCache(ctx context.Context, key string, features []models.RemoteFeature) {
	if c.cache == nil {
		return
	}
	payload, err := json.Marshal(features)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, payload, c.cacheTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("geocoder: failed to cache lookup")
	}
}

// redact drops the query string, which carries the api key, from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, perr := url.Parse(urlErr.URL); perr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}
	}
	return err
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
