// Package rail is the HTTP client for the production token-transfer
// endpoint.
package rail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"splitsum/internal/core"
)

// Client posts transfer requests to the rail's /transfers endpoint and
// treats anything but an explicit success as a failed transfer.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type transferRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
}

type transferResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// TransferFrom requests a pull of amount from payer into custody. The
// rail must answer 200 with status "ok" for the transfer to count.
func (c *Client) TransferFrom(ctx context.Context, payer string, amount core.Amount) error {
	body, err := json.Marshal(transferRequest{
		From:   core.NormalizeAddress(payer),
		Amount: amount.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal transfer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call transfer rail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("transfer rail returned %d: %s", resp.StatusCode, payload)
	}

	var tr transferResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decode transfer response: %w", err)
	}
	if tr.Status != "ok" {
		return fmt.Errorf("transfer rejected: %s", tr.Reason)
	}
	return nil
}
