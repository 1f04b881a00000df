// Package telegram delivers alert text via the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier sends a text message to the alert channel. Delivery is
// best-effort: callers log a returned error and move on, they never
// propagate it. The Result-style signature keeps that decision at the call
// site instead of hiding failures inside the notifier.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// BotNotifier implements Notifier against the Bot API sendMessage endpoint.
type BotNotifier struct {
	apiBase    string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewBotNotifier creates a notifier for one bot and chat.
func NewBotNotifier(token, chatID string, timeout time.Duration) *BotNotifier {
	return &BotNotifier{
		apiBase: defaultAPIBase,
		token:   token,
		chatID:  chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts one message. A non-2xx response is a failure.
func (n *BotNotifier) Send(ctx context.Context, text string) error {
	payload := map[string]any{
		"chat_id": n.chatID,
		"text":    text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode)
	}
	return nil
}
