package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yunhang/cloudnav/internal/models"
)

// ErrUnauthorized is returned when the remote store rejects the auth token.
// Callers must distinguish it from generic failures: only a 401 invalidates
// the stored credential.
var ErrUnauthorized = errors.New("remote store rejected token")

// AuthHeader carries the write credential on save requests.
const AuthHeader = "x-auth-password"

// Client talks to the remote storage endpoint: GET for the initial load,
// POST for saves. One endpoint, whole snapshots, last writer wins.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// FetchSnapshot loads the cloud snapshot. Any outcome other than a 2xx with a
// non-empty links array returns (nil, nil): the caller uses the local cache
// instead. Remote unavailability is never fatal.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/storage", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, nil
	}
	if len(snap.Links) == 0 {
		return nil, nil
	}
	return &snap, nil
}

// PushSnapshot saves the full snapshot with the token in the auth header.
// 2xx means accepted, 401 maps to ErrUnauthorized, anything else is a
// generic failure.
func (c *Client) PushSnapshot(ctx context.Context, snap *models.Snapshot, token string) error {
	jsonBody, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/storage", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AuthHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("save failed with status %d", resp.StatusCode)
	}

	return nil
}

// Ping checks whether the remote store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}
