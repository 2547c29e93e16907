package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaterialsPath is the REST resource holding the catalog document.
const MaterialsPath = "/api/materials"

// Client talks to a remote catalog over the materials REST resource.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the server at baseURL. A nil httpClient uses a
// client with a 15 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Fetch downloads the whole catalog.
func (c *Client) Fetch(ctx context.Context) (Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+MaterialsPath, nil)
	if err != nil {
		return Catalog{}, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Catalog{}, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Catalog{}, fmt.Errorf("Lỗi mạng: %s", http.StatusText(resp.StatusCode))
	}

	var out Catalog
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return out.Clone(), nil
}

// Load implements Loader.
func (c *Client) Load(ctx context.Context) (Catalog, error) {
	return c.Fetch(ctx)
}

// Save posts cat as the full replacement document. The response body is ignored.
func (c *Client) Save(ctx context.Context, cat Catalog) error {
	body, err := json.Marshal(cat.Clone())
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+MaterialsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build catalog save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("save catalog: unexpected status %d", resp.StatusCode)
	}
	return nil
}
