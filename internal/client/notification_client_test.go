package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Andr3icutrei/tw-copy/internal/errs"
	"github.com/Andr3icutrei/tw-copy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsNotification(t *testing.T) {
	var received models.NotificationCreate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/notifications", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(models.Notification{Message: received.Body, DeliveryStatus: "SENT"})
	}))
	defer server.Close()

	c := NewNotificationClient(server.URL)

	notification, err := c.Send(context.Background(), models.NotificationCreate{
		RecipientID: "cus-1",
		Channel:     "SMS",
		Event:       "TRANSACTION_CREATED",
		Subject:     "Transaction Created",
		Body:        "Transaction from Ana Pop to Ion Dinu for amount 100 was created.",
		Priority:    "HIGH",
	})

	require.NoError(t, err)
	assert.Equal(t, "SENT", notification.DeliveryStatus)
	assert.Equal(t, "SMS", received.Channel)
	assert.Contains(t, notification.Message, "Ana Pop")
}

func TestSendServerErrorIsDependencyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewNotificationClient(server.URL)

	_, err := c.Send(context.Background(), models.NotificationCreate{RecipientID: "cus-1"})

	var depErr *errs.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "notification", depErr.Dependency)
}
