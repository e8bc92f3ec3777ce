package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Event   string `json:"event"`
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
	Status  string `json:"status"`
	Total   string `json:"total"`
}

type Notifier interface {
	NotifyOrder(ctx context.Context, event OrderEvent) error
}

// WebhookNotifier posts order events as JSON. An empty URL disables it.
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: resty.New().SetTimeout(timeout),
	}
}

func (n *WebhookNotifier) NotifyOrder(ctx context.Context, event OrderEvent) error {
	if n == nil || n.url == "" {
		return nil
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(event).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post %s webhook: %w", event.Event, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s webhook failed with status %d: %s", event.Event, resp.StatusCode(), string(resp.Body()))
	}
	return nil
}
