package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reclip/internal/config"
)

const userAgent = "Reclip/0.1.0"

// Event identifies a notification category. Categories map to config
// toggles so operators can silence routine traffic while keeping
// error alerts.
type Event string

const (
	// EventItemPublished fires when a compilation goes live.
	EventItemPublished Event = "item_published"
	// EventPassCompleted fires after a scheduling pass drains.
	EventPassCompleted Event = "pass_completed"
	// EventError fires on pipeline and scheduler failures.
	EventError Event = "error"
	// EventTest exercises the delivery path on demand.
	EventTest Event = "test"
)

// Payload carries event fields used to build the message.
type Payload map[string]string

// Service defines the notification surface exposed to the scheduler
// and pipeline.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when a topic
// is configured, otherwise a noop implementation.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		publishes: cfg.Notifications.Publishes,
		passes:    cfg.Notifications.Passes,
		errors:    cfg.Notifications.Errors,
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	publishes bool
	passes    bool
	errors    bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, enabled := n.compose(event, payload)
	if !enabled {
		return nil
	}
	return n.send(ctx, msg)
}

func (n *ntfyService) compose(event Event, payload Payload) (message, bool) {
	get := func(key string) string {
		return strings.TrimSpace(payload[key])
	}
	switch event {
	case EventItemPublished:
		title := get("title")
		body := fmt.Sprintf("Published: %s\nhttps://youtu.be/%s", title, get("published_id"))
		return message{
			title: "Reclip - Published",
			body:  body,
			tags:  []string{"reclip", "publish", "completed"},
		}, n.publishes
	case EventPassCompleted:
		body := fmt.Sprintf("Pass complete: %s published, %s skipped, %s failed in %s",
			get("published"), get("skipped"), get("failed"), get("duration"))
		return message{
			title: "Reclip - Pass Complete",
			body:  body,
			tags:  []string{"reclip", "pass", "completed"},
		}, n.passes
	case EventError:
		body := "Error"
		if scope := get("scope"); scope != "" {
			body += " with " + scope
		}
		if detail := get("error"); detail != "" {
			body += ": " + detail
		}
		return message{
			title:    "Reclip - Error",
			body:     body,
			tags:     []string{"reclip", "error", "alert"},
			priority: "high",
		}, n.errors
	case EventTest:
		return message{
			title:    "Reclip - Test",
			body:     "Notification system test",
			tags:     []string{"reclip", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
