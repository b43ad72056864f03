package fflogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL           = "https://www.fflogs.com"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 2
	DefaultBurst             = 4
	DefaultCacheTTL          = 5 * time.Minute
)

// Config holds the connection settings for the FFLogs v1 API.
type Config struct {
	BaseURL string
	APIKey  string

	// Performance Settings
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration

	// CacheTTL of zero disables the response cache.
	CacheTTL time.Duration

	HTTPClient *http.Client
}

// Client talks to the FFLogs v1 REST API. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter

	cache      map[string]*cacheEntry
	cacheMutex sync.Mutex
}

var _ Source = (*Client)(nil)

// NewClient creates a client, filling unset performance settings with defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	log.Info().Str("key", truncateKey(cfg.APIKey)).Str("base_url", cfg.BaseURL).Msg("Created FFLogs API client")

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cache:      make(map[string]*cacheEntry),
	}
}

// FetchPage requests one page of events for the window.
func (c *Client) FetchPage(ctx context.Context, view View, reportCode string, window Window) (Page, error) {
	params := window.Values()
	cacheKey := fmt.Sprintf("events:%s:%s:%s", view, reportCode, params.Encode())
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.(Page), nil
	}

	endpoint := fmt.Sprintf("/v1/report/events/%s/%s", view, url.PathEscape(reportCode))
	log.Debug().Str("report", reportCode).Str("view", view.String()).
		Uint64("start", window.Start).Uint64("end", window.End).Msg("Requesting events page")

	var page Page
	if err := c.get(ctx, endpoint, reportCode, params, &page); err != nil {
		return Page{}, err
	}

	c.addToCache(cacheKey, page)
	return page, nil
}

// FetchFights requests the list of fights in a report with translated names.
func (c *Client) FetchFights(ctx context.Context, reportCode string) (*FightList, error) {
	cacheKey := "fights:" + reportCode
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.(*FightList), nil
	}

	endpoint := fmt.Sprintf("/v1/report/fights/%s", url.PathEscape(reportCode))
	log.Debug().Str("report", reportCode).Msg("Requesting fight list")

	params := url.Values{}
	params.Set("translate", "true")

	var result FightList
	if err := c.get(ctx, endpoint, reportCode, params, &result); err != nil {
		return nil, err
	}

	c.addToCache(cacheKey, &result)
	return &result, nil
}

func (c *Client) get(ctx context.Context, endpoint, reportCode string, params url.Values, result any) error {
	if reportCode == "" {
		return &RequestError{Endpoint: endpoint, Err: errors.New("empty report code")}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}

	params.Set("api_key", c.cfg.APIKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &RequestError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("FFLogs API returned non-success response")
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to decode FFLogs response")
		log.Debug().Str("body", string(body)).Msg("Undecodable response contents")
		return &DecodeError{Endpoint: endpoint, Err: err}
	}

	log.Trace().Str("endpoint", endpoint).Msg("Successfully requested data from FFLogs")
	return nil
}

func truncateKey(key string) string {
	if len(key) <= 4 {
		return "..."
	}
	return key[:4] + "..."
}
