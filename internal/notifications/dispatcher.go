// Package notifications tells outside systems when site content changes.
// Each saved section is POSTed as a JSON notification to every configured
// webhook, for example to purge a CDN or rebuild a static export.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

// TypeSectionSaved is the only notification type sent today.
const TypeSectionSaved = "section_saved"

// Notification is the webhook payload.
type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Section   string          `json:"section"`
	Document  json.RawMessage `json:"document,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Subscriber is the part of store.Store the dispatcher listens to.
type Subscriber interface {
	Subscribe() (<-chan store.Event, func())
}

// Dispatcher delivers change notifications to webhooks.
type Dispatcher struct {
	urls   []string
	client *http.Client
	log    zerolog.Logger
}

// NewDispatcher creates a Dispatcher for the given webhook URLs.
func NewDispatcher(urls []string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		urls: urls,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run forwards every store event until ctx is done. Delivery failures are
// logged and not retried.
func (d *Dispatcher) Run(ctx context.Context, events Subscriber) {
	ch, cancel := events.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			d.Dispatch(ctx, FromEvent(ev))
		}
	}
}

// FromEvent builds the notification for a store event.
func FromEvent(ev store.Event) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Type:      TypeSectionSaved,
		Section:   ev.Section,
		Document:  ev.Snapshot,
		CreatedAt: ev.At,
	}
}

// Dispatch sends n to every webhook and returns how many accepted it.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) int {
	payload, err := json.Marshal(n)
	if err != nil {
		d.log.Error().Err(err).Msg("encoding notification")
		return 0
	}
	delivered := 0
	for _, url := range d.urls {
		if err := d.SendWebhook(ctx, url, payload); err != nil {
			d.log.Warn().Err(err).Str("webhook", url).Str("section", n.Section).Msg("webhook delivery failed")
			continue
		}
		delivered++
	}
	return delivered
}

// SendWebhook POSTs payload to the given URL.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
