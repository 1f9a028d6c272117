package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the coordinates of the headless content store. Only the
// project and dataset identifiers vary between deployments; everything else
// has a working default.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string // default "2024-01-01"
	APIHost    string // default "api.sanity.io"

	// BaseURL overrides the derived https://<project>.<host>/v<version>
	// endpoint. Used by tests to point at a local fake store.
	BaseURL string

	HTTPClient *http.Client
}

func (c *Config) setDefaults() {
	if c.ProjectID == "" {
		c.ProjectID = "not-configured"
	}
	if c.Dataset == "" {
		c.Dataset = "production"
	}
	if c.APIVersion == "" {
		c.APIVersion = "2024-01-01"
	}
	if c.APIHost == "" {
		c.APIHost = "api.sanity.io"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
}

// Client issues read-only GROQ queries against the content store's HTTP
// query endpoint. Safe for concurrent use.
type Client struct {
	baseURL string
	dataset string
	http    *http.Client
}

// NewClient creates a Client for the given store coordinates.
func NewClient(cfg Config) *Client {
	cfg.setDefaults()
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.%s/v%s", cfg.ProjectID, cfg.APIHost, cfg.APIVersion)
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		dataset: cfg.Dataset,
		http:    cfg.HTTPClient,
	}
}

// queryEnvelope is the store's response wrapper around query results.
type queryEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// Query runs a GROQ query with the given parameters and decodes the result
// into out. A null result leaves out untouched, so callers should start from
// their zero value. Transport errors and non-2xx statuses are returned as
// errors; malformed result payloads are not — they decode to the zero value,
// because a misshapen document must degrade like a missing one.
func (c *Client) Query(ctx context.Context, query string, params map[string]any, out any) error {
	q := url.Values{}
	q.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		q.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("query content store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("content store returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope queryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode query response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		// Malformed result: coerce to the caller's zero value.
		return nil
	}
	return nil
}
