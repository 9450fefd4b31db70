package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned by Push when notifications are off or no webhook URL is set.
var ErrNotConfigured = errors.New("slack notifications are not configured")

// SlackConfig holds the incoming webhook settings
type SlackConfig struct {
	WebhookURL string
	Username   string // bot name shown in the channel
	Channel    string // e.g. "#flights"
	Enabled    bool
	Timeout    time.Duration
}

// SlackClient posts text to a Slack incoming webhook
type SlackClient struct {
	config     SlackConfig
	httpClient *http.Client
}

// SlackMessage is the webhook payload
type SlackMessage struct {
	Username string `json:"username"`
	Channel  string `json:"channel"`
	Text     string `json:"text"`
}

// StatusError reports a webhook response other than 200
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("slack returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("slack returned status %d: %s", e.StatusCode, e.Body)
}

// NewSlackClient creates a new Slack webhook client
func NewSlackClient(config SlackConfig) *SlackClient {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &SlackClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// IsEnabled returns whether pushes will be attempted
func (c *SlackClient) IsEnabled() bool {
	return c.config.Enabled && c.config.WebhookURL != ""
}

// Push joins lines with newlines and posts them as one message.
// Any status other than 200 is an error.
func (c *SlackClient) Push(ctx context.Context, lines []string) error {
	if !c.IsEnabled() {
		return ErrNotConfigured
	}

	msg := SlackMessage{
		Username: c.config.Username,
		Channel:  c.config.Channel,
		Text:     strings.Join(lines, "\n"),
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create slack request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return nil
}
