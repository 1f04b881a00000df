// Package report fetches the monitored node's admin setup report.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkolbas/gonka-notifier/internal/core/domain"
)

// Client talks to the node's management port.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a report client for the given host and admin port.
func NewClient(host string, adminPort int, timeout time.Duration) *Client {
	return &Client{
		url: fmt.Sprintf("http://%s:%d/admin/v1/setup/report", host, adminPort),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Fetch retrieves one report snapshot. Any HTTP or parse failure is the
// cycle's failure; there are no retries here.
func (c *Client) Fetch(ctx context.Context) (*domain.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	var report domain.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}

	return &report, nil
}
