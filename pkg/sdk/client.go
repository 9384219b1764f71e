package scenttwin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
	"github.com/kailas-cloud/scenttwin/internal/version"
)

const (
	searchPath = "/api/search"
	healthPath = "/health"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Client is the scenttwin SDK entry point. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	apiKey     string
	userAgent  string
	obs        *observer
}

// New creates a Client for the server at baseURL (scheme and host, optional path prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("scenttwin: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scenttwin: base url must be http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("scenttwin: base url has no host: %q", baseURL)
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.userAgent == "" {
		cfg.userAgent = "scenttwin-go/" + version.Version
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    u,
		httpClient: cfg.httpClient,
		apiKey:     cfg.apiKey,
		userAgent:  cfg.userAgent,
		obs:        obs,
	}, nil
}

// FindPerfumeDetailsAndDupes returns the named perfume's profile and similar alternatives.
func (c *Client) FindPerfumeDetailsAndDupes(ctx context.Context, name string) (res DetailsResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("find_details", start, err) }()

	err = c.search(ctx, name, ByName, &res)
	return res, err
}

// FindPerfumesByNotes returns perfumes matching a free-text scent description.
func (c *Client) FindPerfumesByNotes(ctx context.Context, notes string) (res NotesResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("find_by_notes", start, err) }()

	err = c.search(ctx, notes, ByNotes, &res)
	return res, err
}

// Search runs a search of the given type and returns the raw JSON answer.
func (c *Client) Search(ctx context.Context, query string, st SearchType) (raw json.RawMessage, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	err = c.search(ctx, query, st, &raw)
	return raw, err
}

// Health fetches the server health report. A degraded server answers 503
// with a report; that is returned without error.
func (c *Client) Health(ctx context.Context) (hs HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	resp, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return HealthStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthStatus{}, readAPIError(resp)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("scenttwin: decode health: %w", err)
	}
	return hs, nil
}

// search validates locally with the same rules as the server, so an
// obviously bad query never leaves the process.
func (c *Client) search(ctx context.Context, query string, st SearchType, dst any) error {
	req, err := request.New(query, st)
	if err != nil {
		return fmt.Errorf("scenttwin: %w", err)
	}

	body, err := json.Marshal(searchRequest{Query: req.Query(), SearchType: req.Mode()})
	if err != nil {
		return fmt.Errorf("scenttwin: encode request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, searchPath, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		return fmt.Errorf("scenttwin: decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	u := c.baseURL.JoinPath(path)

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, fmt.Errorf("scenttwin: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scenttwin: %s %s: %w", method, path, err)
	}
	return resp, nil
}

// readAPIError builds an APIError from a non-2xx response.
func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error != "" {
		apiErr.Message = eb.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// IsRetryable reports whether err is worth retrying later: transport
// failures and 5xx answers other than a configuration error.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrNotConfigured) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled)
}
