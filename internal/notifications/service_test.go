package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"reclip/internal/notifications"
	"reclip/internal/testsupport"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(cfg)
	err := svc.Publish(context.Background(), notifications.EventError, notifications.Payload{"error": "boom"})
	if err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsEvents(t *testing.T) {
	tests := []struct {
		name           string
		event          notifications.Event
		payload        notifications.Payload
		expectTitle    string
		expectBody     string
		expectPriority string
	}{
		{
			name:  "item published",
			event: notifications.EventItemPublished,
			payload: notifications.Payload{
				"title":        "[ASMR Clip] tapping",
				"published_id": "newvid12345",
			},
			expectTitle: "Reclip - Published",
			expectBody:  "Published: [ASMR Clip] tapping\nhttps://youtu.be/newvid12345",
		},
		{
			name:  "pass completed",
			event: notifications.EventPassCompleted,
			payload: notifications.Payload{
				"published": "2", "skipped": "5", "failed": "1", "duration": "3m20s",
			},
			expectTitle: "Reclip - Pass Complete",
			expectBody:  "Pass complete: 2 published, 5 skipped, 1 failed in 3m20s",
		},
		{
			name:           "error",
			event:          notifications.EventError,
			payload:        notifications.Payload{"scope": "vid123", "error": "upload failed"},
			expectTitle:    "Reclip - Error",
			expectBody:     "Error with vid123: upload failed",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotTitle, gotBody, gotPriority string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				gotTitle = r.Header.Get("Title")
				gotBody = string(body)
				gotPriority = r.Header.Get("Priority")
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := testsupport.NewConfig(t)
			cfg.Notifications.NtfyTopic = server.URL
			svc := notifications.NewService(cfg)

			if err := svc.Publish(context.Background(), tc.event, tc.payload); err != nil {
				t.Fatalf("Publish: %v", err)
			}
			if gotTitle != tc.expectTitle {
				t.Errorf("title = %q, want %q", gotTitle, tc.expectTitle)
			}
			if gotBody != tc.expectBody {
				t.Errorf("body = %q, want %q", gotBody, tc.expectBody)
			}
			if gotPriority != tc.expectPriority {
				t.Errorf("priority = %q, want %q", gotPriority, tc.expectPriority)
			}
		})
	}
}

func TestNtfyServicehonorsToggles(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Publishes = false
	svc := notifications.NewService(cfg)

	err := svc.Publish(context.Background(), notifications.EventItemPublished, notifications.Payload{"title": "x"})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected suppressed event, saw %d requests", requests)
	}
}

func TestNtfyServiceSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(cfg)

	if err := svc.Publish(context.Background(), notifications.EventTest, nil); err == nil {
		t.Fatal("expected error from non-2xx response")
	}
}
