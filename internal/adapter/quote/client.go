package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/martijn/todolist/internal/metrics"
)

const (
	DefaultURL     = "https://api.quotable.io/random"
	DefaultTimeout = 3 * time.Second
	Fallback       = "El éxito es la suma de pequeños esfuerzos repetidos día tras día."

	maxBodyBytes = 64 << 10
)

// Client fetches a motivational quote from a remote JSON endpoint
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a quote client bounded by timeout
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Response is the payload returned by the quote endpoint
type Response struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Fetch requests a quote and formats it as `"content" - author`
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("quote service returned status %d", resp.StatusCode)
	}

	var payload Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to parse quote: %w", err)
	}
	if payload.Content == "" {
		return "", fmt.Errorf("quote service returned an empty quote")
	}

	return fmt.Sprintf("\"%s\" - %s", payload.Content, payload.Author), nil
}

// Quote never fails: any error from Fetch is logged and replaced by Fallback
func (c *Client) Quote(ctx context.Context) string {
	text, err := c.Fetch(ctx)
	if err != nil {
		log.Printf("quote: %v (using fallback)", err)
		metrics.QuoteFallbacksTotal.Inc()
		return Fallback
	}
	return text
}
