// Package sigevent posts operational events to a SigEvent endpoint.
package sigevent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Severity is the SigEvent event type.
type Severity string

const (
	Info  Severity = "INFO"
	Error Severity = "ERROR"
)

const defaultTimeout = 10 * time.Second

// Client sends events to one SigEvent URL. The zero value is not usable;
// construct with [NewClient].
type Client struct {
	URL        string
	Source     string
	Category   string
	Provider   string
	HTTPClient *http.Client
	hostname   string
}

// NewClient returns a Client for endpoint with the standard GIBS event
// attributes.
func NewClient(endpoint string) *Client {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return &Client{
		URL:        endpoint,
		Source:     "ONEARTH",
		Category:   "VECTORGEN",
		Provider:   "GIBS",
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		hostname:   host,
	}
}

// Send posts one event. A non-2xx response is returned as an error; callers
// decide whether delivery failures matter.
func (c *Client) Send(ctx context.Context, sev Severity, message string) error {
	form := url.Values{}
	form.Set("type", string(sev))
	form.Set("description", message)
	form.Set("computer", c.hostname)
	form.Set("source", c.Source)
	form.Set("format", "TEXT")
	form.Set("category", c.Category)
	form.Set("provider", c.Provider)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sigevent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sigevent %s: %w", c.URL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sigevent %s: unexpected status %s", c.URL, resp.Status)
	}
	return nil
}
