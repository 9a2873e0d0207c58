package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	slackapi "github.com/slack-go/slack"
)

// WebhookClient posts messages to a single incoming-webhook URL.
type WebhookClient struct {
	httpClient *http.Client
	url        string
}

// NewWebhookClient creates a client for url. A zero timeout uses 20s.
func NewWebhookClient(url string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &WebhookClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// Post sends text to the webhook. Any response other than 200 is an error.
func (c *WebhookClient) Post(ctx context.Context, text string) error {
	if c.url == "" {
		return fmt.Errorf("webhook url is not configured")
	}

	msg := &slackapi.WebhookMessage{Text: text}
	if err := slackapi.PostWebhookCustomHTTPContext(ctx, c.url, c.httpClient, msg); err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	return nil
}
