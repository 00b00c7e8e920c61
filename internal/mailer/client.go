// Package mailer sends composed mails through the configured HTTP
// relay. The relay takes a JSON payload and forwards it to the site
// owner's inbox; this process never speaks SMTP itself.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Client posts mails to the relay endpoint.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	endpoint   string // overridable in tests
}

// NewClient builds a relay client for the configured endpoint. The
// relay owns the recipient; this payload shape is its contract.
func NewClient(httpClient *http.Client, endpoint string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		endpoint:   endpoint,
	}
}

// payload is the relay's request shape.
type payload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send posts one mail to the relay. Any non-2xx status is an error;
// the caller decides whether the visitor may retry.
func (c *Client) Send(ctx context.Context, subject, body string) error {
	raw, err := json.Marshal(payload{Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("mail relay call failed",
			slog.String("error", err.Error()),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("mail relay returned error status",
			slog.Int("http_status", resp.StatusCode),
		)
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	c.logger.Info("mail dispatched through relay",
		slog.String("subject", subject),
	)
	return nil
}
