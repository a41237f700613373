// Package push delivers token-addressed push notifications through FCM.
// Delivery is best-effort everywhere in this codebase: callers log failures
// and move on, an undelivered push never fails the request that caused it.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sender sends a notification to a single device token.
type Sender interface {
	Send(ctx context.Context, token, title, body string) error
}

type FCMClient struct {
	Endpoint  string
	ServerKey string
	HTTP      *http.Client
}

func NewFCM(endpoint, serverKey string) *FCMClient {
	if endpoint == "" {
		endpoint = "https://fcm.googleapis.com/fcm/send"
	}
	return &FCMClient{
		Endpoint:  endpoint,
		ServerKey: serverKey,
		HTTP:      &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *FCMClient) Send(ctx context.Context, token, title, body string) error {
	if token == "" {
		return errors.New("empty device token")
	}

	payload := map[string]any{
		"to": token,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.ServerKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("fcm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fcm status %d", resp.StatusCode)
	}
	return nil
}
