package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends transactional email through a Resend-style API.
type Client struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

func NewClient(baseURL, apiKey, from string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send delivers one message. Delivery happens on the provider's side; a nil
// return means the provider accepted the message, not that it arrived.
func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, raw)
	}

	return nil
}
