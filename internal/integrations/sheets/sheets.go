// Package sheets mirrors saved snapshots to an external spreadsheet
// webhook. The sync is best effort: retries with backoff happen here, and
// failures are reported to the caller for logging, never escalated.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/hi4requency/fynstra/internal/config"
	"github.com/hi4requency/fynstra/internal/models"
)

// Client pushes snapshot rows to the configured webhook.
type Client struct {
	url    string
	client *retryablehttp.Client
	log    *logrus.Logger
}

// NewClient initializes a new spreadsheet sync client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 4
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 8 * time.Second
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil // logrus handles reporting at the call sites

	return &Client{
		url:    cfg.SheetsWebhook,
		client: rc,
		log:    log,
	}
}

// Enabled reports whether a webhook is configured.
func (c *Client) Enabled() bool {
	return c.url != ""
}

type row struct {
	UserID    int64                    `json:"user_id"`
	Snapshot  models.FinancialSnapshot `json:"snapshot"`
	FHI       float64                  `json:"fhi"`
	Timestamp string                   `json:"timestamp"`
}

// SaveSnapshot appends one snapshot row to the sheet.
func (c *Client) SaveSnapshot(ctx context.Context, userID int64, s models.FinancialSnapshot, fhi float64) error {
	if !c.Enabled() {
		return nil
	}

	payload, err := json.Marshal(row{
		UserID:    userID,
		Snapshot:  s,
		FHI:       fhi,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot row: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sheet sync failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sheet sync rejected: status %d", resp.StatusCode)
	}

	c.log.Debugf("Snapshot for user %d synced to sheet", userID)
	return nil
}
