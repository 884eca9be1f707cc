// Package messenger implements the outbound Messenger Send API client:
// text delivery and sender actions (mark_seen, typing_on).
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"lingobot/internal/httpx"
)

const defaultAPIBase = "https://graph.facebook.com/v21.0"

// Client talks to the Messenger Send API.
type Client struct {
	apiBase     string
	accessToken string
	client      *http.Client
	logger      *slog.Logger
}

type Config struct {
	APIBase     string
	AccessToken string
	Timeout     time.Duration
	Logger      *slog.Logger
}

func New(cfg Config) *Client {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Client{
		apiBase:     apiBase,
		accessToken: cfg.AccessToken,
		client:      httpx.NewClient(cfg.Timeout),
		logger:      cfg.Logger,
	}
}

// SendText delivers a text message to the user identified by recipientID.
func (c *Client) SendText(ctx context.Context, recipientID, text string) error {
	return c.post(ctx, map[string]any{
		"recipient": map[string]string{"id": recipientID},
		"message":   map[string]string{"text": text},
	})
}

// SendAction sends a sender action (e.g. mark_seen, typing_on).
func (c *Client) SendAction(ctx context.Context, recipientID, action string) error {
	return c.post(ctx, map[string]any{
		"recipient":     map[string]string{"id": recipientID},
		"sender_action": action,
	})
}

func (c *Client) post(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	url := c.apiBase + "/me/messages"
	buildReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
		return req, nil
	}

	resp, err := httpx.DoWithRetry(ctx, c.client, buildReq, c.logger)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("messenger API %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
