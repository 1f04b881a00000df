// Package chainapi reads epoch group data from the chain REST API.
package chainapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkolbas/gonka-notifier/internal/core/domain"
)

// Client fetches the current epoch's validator weight table.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a chain API client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
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

// FetchEpochGroupData retrieves and decodes the current epoch group data.
// The endpoint has shipped both snake_case and camelCase key spellings and
// encodes big integers as strings, so decoding goes through the tolerant
// domain.Details accessors rather than a fixed struct.
func (c *Client) FetchEpochGroupData(ctx context.Context) (*domain.EpochGroupData, error) {
	url := c.baseURL + "/current_epoch_group_data"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch epoch group data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	var raw domain.Details
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse epoch group data: %w", err)
	}

	return decodeEpochGroupData(raw), nil
}

func decodeEpochGroupData(raw domain.Details) *domain.EpochGroupData {
	block := raw
	if nested, ok := raw.Map("epoch_group_data"); ok {
		block = nested
	}

	data := &domain.EpochGroupData{}
	if epoch, ok := block.Int("epoch_index"); ok {
		data.EpochIndex = uint64(epoch)
	}
	if total, ok := block.Int("total_weight"); ok {
		data.TotalWeight = total
	}

	entries, _ := block.Slice("validation_weights")
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		details := domain.Details(m)
		vw := domain.ValidationWeight{
			MemberAddress: details.Str("member_address"),
		}
		vw.Weight, _ = details.Int("weight")
		vw.ConfirmationWeight, _ = details.Int("confirmation_weight")
		data.Weights = append(data.Weights, vw)
	}

	return data
}
