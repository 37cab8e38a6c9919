// Package backend is the JSON-over-HTTP client for the external gym backend
// API: saved plan listings and saves, plus the thin pass-through reads and
// writes the dashboard tabs need (gym profile, attendance, membership).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gymdash/internal/common"
	"gymdash/internal/logging"
)

// Client talks to the gym backend. It carries a bearer token issued by the
// backend at login; token expiry is checked before each request so an
// expired token fails fast instead of burning a round trip on a 401.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logging.Logger
	now     func() time.Time
}

func New(baseURL, token string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

// errorEnvelope is the backend's failure shape.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do issues one request and decodes the response into out (if non-nil).
// Failures come back as errors, never panics; a non-2xx status is reported
// with the backend's error string when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.token != "" && TokenExpired(c.token, c.now()) {
		return common.ErrTokenExpired
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			return fmt.Errorf("backend returned %d: %s", resp.StatusCode, envelope.Error)
		}
		return fmt.Errorf("backend returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Login exchanges credentials for a bearer token. Used by the CLI; the
// client itself does not need to be authenticated for this call.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Error   string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.Token == "" {
		return "", fmt.Errorf("login rejected: %s", resp.Error)
	}
	return resp.Token, nil
}
