// Package gotrue provides an HTTP client for a GoTrue-compatible identity
// API, implementing the identity gateway port.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/academly/academly/internal/port/identity"
)

// Client talks to the GoTrue admin and token endpoints.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a new identity gateway client. serviceKey is the
// elevated key required for the admin user-creation endpoint.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignIn performs the password grant and returns the subject id.
// Any 4xx from the token endpoint is reported as ErrInvalidCredentials;
// the distinction between unknown email and wrong password never leaves
// the gateway.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("marshal sign in: %w", err)
	}

	status, resp, err := c.doRequest(ctx, http.MethodPost, "/token?grant_type=password", body)
	if err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	if status >= 400 && status < 500 {
		return "", identity.ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("sign in: unexpected status %d", status)
	}

	var result struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("unmarshal sign in: %w", err)
	}
	if result.User.ID == "" {
		return "", fmt.Errorf("sign in: response missing user id")
	}
	return result.User.ID, nil
}

// CreateUser provisions a confirmed identity via the admin endpoint.
// A duplicate email maps to the typed identity.ErrEmailExists sentinel
// from the error code, never from message text.
func (c *Client) CreateUser(ctx context.Context, email, password, fullName string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
		"user_metadata": map[string]string{"full_name": fullName},
	})
	if err != nil {
		return "", fmt.Errorf("marshal create user: %w", err)
	}

	status, resp, err := c.doRequest(ctx, http.MethodPost, "/admin/users", body)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	if status == http.StatusUnprocessableEntity || status == http.StatusConflict {
		var apiErr struct {
			ErrorCode string `json:"error_code"`
		}
		_ = json.Unmarshal(resp, &apiErr)
		if apiErr.ErrorCode == "email_exists" || status == http.StatusConflict {
			return "", identity.ErrEmailExists
		}
		return "", fmt.Errorf("create user: rejected with status %d", status)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", fmt.Errorf("create user: unexpected status %d", status)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("unmarshal create user: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("create user: response missing id")
	}
	return result.ID, nil
}

// SignOut revokes the principal's refresh tokens upstream.
func (c *Client) SignOut(ctx context.Context, principalID string) error {
	status, _, err := c.doRequest(ctx, http.MethodPost, "/admin/users/"+principalID+"/logout", nil)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if status >= 400 {
		return fmt.Errorf("sign out: unexpected status %d", status)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}
