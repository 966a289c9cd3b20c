package webdav

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yunhang/cloudnav/internal/models"
)

// BackupFile is the fixed object name under the WebDAV base URL.
const BackupFile = "bookmarks_backup.json"

// Client writes and reads the full application backup against a WebDAV
// endpoint with HTTP Basic credentials. The server side is an external
// collaborator; only PUT and GET of one JSON object are used.
type Client struct {
	cfg        models.WebDAVConfig
	httpClient *http.Client
}

func NewClient(cfg models.WebDAVConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) url() string {
	return strings.TrimRight(c.cfg.URL, "/") + "/" + BackupFile
}

// Upload PUTs the backup blob.
func (c *Client) Upload(ctx context.Context, backup *models.Backup) error {
	data, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	return nil
}

// Download GETs the backup blob.
func (c *Client) Download(ctx context.Context) (*models.Backup, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	var backup models.Backup
	if err := json.Unmarshal(body, &backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	return &backup, nil
}
