package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Message is a single push delivery addressed by device token.
type Message struct {
	To    string         `json:"to"`
	Sound string         `json:"sound"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

// Client exposes push delivery to the notification dispatcher.
type Client interface {
	Send(ctx context.Context, messages []Message) error
}

// HTTPClient implements Client against an Expo-compatible push gateway.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates HTTP push client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse push gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("push gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts a message batch to the gateway.
func (c *HTTPClient) Send(ctx context.Context, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		return err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/send")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("push request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("push gateway error: %s", resp.Status)
	}
	return nil
}
