package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifierPostsEvent(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, time.Second)
	err := n.NotifyOrder(context.Background(), OrderEvent{
		Event:   EventOrderPlaced,
		OrderID: 12,
		UserID:  3,
		Status:  "preparing",
		Total:   "59.97",
	})
	require.NoError(t, err)
	assert.Equal(t, "order.placed", got["event"])
	assert.EqualValues(t, 12, got["order_id"])
	assert.Equal(t, "59.97", got["total"])
}

func TestWebhookNotifierReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewWebhookNotifier(server.URL, time.Second).NotifyOrder(context.Background(), OrderEvent{Event: EventOrderStatusChanged})
	assert.ErrorContains(t, err, "502")
}

func TestWebhookNotifierDisabled(t *testing.T) {
	assert.NoError(t, NewWebhookNotifier("", time.Second).NotifyOrder(context.Background(), OrderEvent{}))

	var n *WebhookNotifier
	assert.NoError(t, n.NotifyOrder(context.Background(), OrderEvent{}))
}
