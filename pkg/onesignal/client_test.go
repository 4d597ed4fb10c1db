package onesignal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dev-arham/ecommerce-server/pkg/config"
	"github.com/dev-arham/ecommerce-server/pkg/onesignal"
)

func newTestClient(t *testing.T, handler http.Handler) *onesignal.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := onesignal.NewClient(config.OneSignalConfig{
		AppID:   "app-1",
		APIKey:  "key-1",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return client
}

func TestCreateNotification(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notifications", r.URL.Path)
		require.Equal(t, "Basic key-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "campaign-42"})
	}))

	id, err := client.CreateNotification(context.Background(), onesignal.Campaign{
		Title:      "Flash Sale",
		Message:    "Up to 50% off",
		BigPicture: "https://cdn.example.com/sale.png",
	})
	require.NoError(t, err)
	require.Equal(t, "campaign-42", id)

	require.Equal(t, "app-1", captured["app_id"])
	require.Equal(t, map[string]any{"en": "Flash Sale"}, captured["headings"])
	require.Equal(t, map[string]any{"en": "Up to 50% off"}, captured["contents"])
	require.Equal(t, []any{"All"}, captured["included_segments"])
	require.Equal(t, "https://cdn.example.com/sale.png", captured["big_picture"])
}

func TestCreateNotificationOmitsEmptyPicture(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "campaign-7"})
	}))

	_, err := client.CreateNotification(context.Background(), onesignal.Campaign{
		Title:   "Hello",
		Message: "World",
	})
	require.NoError(t, err)
	require.NotContains(t, captured, "big_picture")
}

func TestCreateNotificationValidates(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	}))

	_, err := client.CreateNotification(context.Background(), onesignal.Campaign{Title: "no message"})
	require.Error(t, err)
}

func TestViewNotification(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/notifications/campaign-42", r.URL.Path)
		require.Equal(t, "app-1", r.URL.Query().Get("app_id"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"platform_delivery_stats": map[string]any{
				"android": map[string]int{
					"successful": 120,
					"failed":     3,
					"errored":    1,
					"converted":  40,
				},
			},
		})
	}))

	stats, err := client.ViewNotification(context.Background(), "campaign-42")
	require.NoError(t, err)
	require.Equal(t, 120, stats.Successful)
	require.Equal(t, 3, stats.Failed)
	require.Equal(t, 1, stats.Errored)
	require.Equal(t, 40, stats.Converted)
}

func TestViewNotificationNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.ViewNotification(context.Background(), "missing")
	require.Error(t, err)
}
