package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrCredentialMissing is returned when a host never connected a Google
// Calendar account, so the identity provider holds no token pair for them.
var ErrCredentialMissing = errors.New("host has no connected calendar credential")

// Client talks to the identity provider that stores each host's delegated
// Google OAuth tokens.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOAuthToken fetches the current access/refresh token pair for a host.
func (c *Client) GetOAuthToken(ctx context.Context, subjectID string) (*OAuthToken, error) {
	url := fmt.Sprintf("%s/v1/users/%s/oauth/google", c.baseURL, subjectID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCredentialMissing
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("identity API returned non-OK status: " + resp.Status)
	}

	var token OAuthToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, ErrCredentialMissing
	}

	return &token, nil
}

// RefreshAccessToken exchanges a refresh token for a new token pair.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*OAuthToken, error) {
	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth/google/refresh", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("identity refresh API returned non-OK status: " + resp.Status)
	}

	var token OAuthToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// UpdateRefreshToken persists a host's new durable refresh token.
func (c *Client) UpdateRefreshToken(ctx context.Context, subjectID, refreshToken string) error {
	body, err := json.Marshal(updateTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/users/%s/oauth/google", c.baseURL, subjectID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.New("identity update API returned non-OK status: " + resp.Status)
	}

	return nil
}
