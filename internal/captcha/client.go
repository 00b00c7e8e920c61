// Package captcha verifies bot-challenge tokens against the external
// verification endpoint before a visitor mail is dispatched.
package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Client calls the token verification endpoint.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	endpoint   string // overridable in tests
}

// NewClient builds a verifier client for the configured endpoint.
func NewClient(httpClient *http.Client, endpoint string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		endpoint:   endpoint,
	}
}

// Verify checks one token. A transport or decode failure is an error;
// a clean "not a human" answer is (false, nil).
func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	raw, err := json.Marshal(map[string]string{"captchaValue": token})
	if err != nil {
		return false, fmt.Errorf("failed to encode verification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return false, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("captcha verification call failed",
			slog.String("error", err.Error()),
		)
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("captcha verifier returned error status",
			slog.Int("http_status", resp.StatusCode),
		)
		return false, fmt.Errorf("captcha verifier returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read verifier response: %w", err)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("failed to parse captcha verifier response",
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("failed to parse verifier response: %w", err)
	}

	return result.Success, nil
}
