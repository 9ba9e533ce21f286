package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Andr3icutrei/tw-copy/internal/errs"
	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/sony/gobreaker"
)

// NotificationClient dispatches notifications through the notification
// service.
type NotificationClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		breaker: newBreaker("notification-service"),
	}
}

// Send posts a notification and returns the delivery record. Failures
// surface as a DependencyError carrying the cause.
func (c *NotificationClient) Send(ctx context.Context, create models.NotificationCreate) (*models.Notification, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		body, err := json.Marshal(create)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification: %w", err)
		}

		url := fmt.Sprintf("%s/v1/notifications", c.baseURL)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("notification service returned status %d", resp.StatusCode)
		}

		var notification models.Notification
		if err := json.NewDecoder(resp.Body).Decode(&notification); err != nil {
			return nil, fmt.Errorf("failed to decode notification response: %w", err)
		}
		return &notification, nil
	})
	if err != nil {
		return nil, errs.Dependency("notification", err)
	}

	return result.(*models.Notification), nil
}
