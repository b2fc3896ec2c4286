// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lapor/internal/models"
	"github.com/tomtom215/lapor/internal/testinfra"
)

func TestNotifications_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		call   func(c *Client) models.Result[models.Envelope]
		method string
		path   string
		body   string
	}{
		{
			name:   "notify me",
			call:   func(c *Client) models.Result[models.Envelope] { return c.NotifyMe(context.Background(), "r-1") },
			method: http.MethodPost, path: "/reports/r-1/notify-me",
		},
		{
			name: "notify user",
			call: func(c *Client) models.Result[models.Envelope] {
				return c.NotifyUser(context.Background(), "r-1", "u-7")
			},
			method: http.MethodPost, path: "/reports/r-1/notify", body: `{"userId":"u-7"}`,
		},
		{
			name:   "notify all",
			call:   func(c *Client) models.Result[models.Envelope] { return c.NotifyAll(context.Background(), "r-1") },
			method: http.MethodPost, path: "/reports/r-1/notify-all",
		},
		{
			name: "notify comment owner",
			call: func(c *Client) models.Result[models.Envelope] {
				return c.NotifyCommentOwner(context.Background(), "r-1", "c-2")
			},
			method: http.MethodPost, path: "/reports/r-1/comments/c-2/notify",
		},
		{
			name: "subscribe",
			call: func(c *Client) models.Result[models.Envelope] {
				return c.SubscribePush(context.Background(), &models.PushSubscription{
					Endpoint: "https://fcm.googleapis.com/fcm/send/abc",
					Keys:     models.PushKeys{P256dh: "BNc", Auth: "tBH"},
				})
			},
			method: http.MethodPost, path: "/notifications/subscribe",
			body: `{"endpoint":"https://fcm.googleapis.com/fcm/send/abc","keys":{"p256dh":"BNc","auth":"tBH"}}`,
		},
		{
			name: "unsubscribe",
			call: func(c *Client) models.Result[models.Envelope] {
				return c.UnsubscribePush(context.Background(), "https://fcm.googleapis.com/fcm/send/abc")
			},
			method: http.MethodDelete, path: "/notifications/subscribe",
			body: `{"endpoint":"https://fcm.googleapis.com/fcm/send/abc"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := testinfra.NewStoryBackend(t)
			client, _ := newTestClient(t, backend, testinfra.DefaultToken)

			res := tt.call(client)
			if !res.OK {
				t.Fatalf("OK = false: %q", res.Message)
			}

			c, ok := backend.LastCapture()
			if !ok {
				t.Fatal("no request captured")
			}
			if c.Method != tt.method || c.Path != tt.path {
				t.Errorf("request = %s %s, want %s %s", c.Method, c.Path, tt.method, tt.path)
			}
			if c.Headers.Get("Authorization") != "Bearer "+testinfra.DefaultToken {
				t.Error("missing bearer token")
			}
			if tt.body != "" {
				assertJSONEqual(t, tt.body, string(c.Body))
			} else if len(c.Body) != 0 {
				t.Errorf("unexpected body %q", c.Body)
			}
		})
	}
}

func assertJSONEqual(t *testing.T, want, got string) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("bad want JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(got), &g); err != nil {
		t.Fatalf("bad got JSON %q: %v", got, err)
	}
	wb, _ := json.Marshal(w)
	gb, _ := json.Marshal(g)
	if string(wb) != string(gb) {
		t.Errorf("body = %s, want %s", gb, wb)
	}
}

// The notification family derives OK from the HTTP status, not the payload.
func TestNotifications_OKFromStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   map[string]any
		wantOK bool
	}{
		{"2xx with error flag", http.StatusOK, map[string]any{"error": true, "message": "already subscribed"}, true},
		{"5xx without error flag", http.StatusInternalServerError, map[string]any{"error": false, "message": "boom"}, false},
		{"404", http.StatusNotFound, map[string]any{"message": "Report not found"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := testinfra.NewStoryBackend(t)
			backend.Handle(http.MethodPost, "/reports/{id}/notify-all", func(w http.ResponseWriter, _ *http.Request) {
				testinfra.WriteJSON(w, tt.status, tt.body)
			})
			client, _ := newTestClient(t, backend, testinfra.DefaultToken)

			res := client.NotifyAll(context.Background(), "r-1")
			if res.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", res.OK, tt.wantOK)
			}
			if res.Message != tt.body["message"] {
				t.Errorf("Message = %q", res.Message)
			}
			if res.Data["message"] != tt.body["message"] {
				t.Errorf("Data not passed through: %v", res.Data)
			}
		})
	}
}

func TestNotifications_LocalRejection(t *testing.T) {
	t.Parallel()

	backend := testinfra.NewStoryBackend(t)
	client, _ := newTestClient(t, backend, testinfra.DefaultToken)
	ctx := context.Background()

	rejected := []models.Result[models.Envelope]{
		client.NotifyMe(ctx, ""),
		client.NotifyCommentOwner(ctx, "r-1", ""),
		client.SubscribePush(ctx, &models.PushSubscription{Endpoint: "not-a-url"}),
		client.UnsubscribePush(ctx, ""),
	}
	for i, res := range rejected {
		if res.OK {
			t.Errorf("case %d: OK = true, want local rejection", i)
		}
		if res.Data == nil {
			t.Errorf("case %d: Data is nil", i)
		}
	}
	if backend.Calls() != 0 {
		t.Errorf("network calls = %d, want 0", backend.Calls())
	}
}
