// Package store is the shared view of the site's content. Viewers load
// through it and editors save through it; every successful save refetches
// the section and notifies subscribers so open pages can refresh in place.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/contentapi"
)

// subscriberBuffer is how many events a subscriber may fall behind before
// further events are dropped for it.
const subscriberBuffer = 16

// Event announces that a section changed upstream.
type Event struct {
	Section  string          `json:"section"`
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
	At       time.Time       `json:"at"`
}

// Store wraps the content API client with snapshot tracking and change
// notification.
type Store struct {
	client *contentapi.Client
	log    zerolog.Logger

	mu        sync.RWMutex
	snapshots map[string]json.RawMessage
	subs      map[int]chan Event
	nextID    int
}

// New creates a Store over client.
func New(client *contentapi.Client, log zerolog.Logger) *Store {
	return &Store{
		client:    client,
		log:       log,
		snapshots: make(map[string]json.RawMessage),
		subs:      make(map[int]chan Event),
	}
}

// Client returns the underlying API client.
func (s *Store) Client() *contentapi.Client { return s.client }

// Load fetches the current document for section and decodes it as T.
// Every call goes upstream; the raw body is kept as the latest snapshot.
func Load[T any](ctx context.Context, s *Store, section content.Section) (T, error) {
	var v T
	raw, err := s.fetchRaw(ctx, section)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &contentapi.DecodeError{Path: section.ReadPath, Err: err}
	}
	return v, nil
}

// Save PATCHes doc as the full replacement for section. If out is non-nil
// the response body is decoded into it. On success the section is refetched
// and an Event is published; on failure nothing is published.
func (s *Store) Save(ctx context.Context, section content.Section, doc, out any) error {
	if !section.Editable() {
		return fmt.Errorf("section %q is read-only", section.Key)
	}
	if err := s.client.Patch(ctx, section.WritePath, doc, out); err != nil {
		return err
	}

	ev := Event{Section: section.Key, At: time.Now()}
	raw, err := s.fetchRaw(ctx, section)
	if err != nil {
		// The write went through; subscribers refetch on their own.
		s.log.Warn().Err(err).Str("section", section.Key).Msg("refetch after save failed")
	} else {
		ev.Snapshot = raw
	}
	s.publish(ev)
	return nil
}

// Snapshot returns the last document body seen for a section key.
func (s *Store) Snapshot(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.snapshots[key]
	return raw, ok
}

// Subscribe registers for change events. The returned cancel func must be
// called to release the subscription; it closes the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) fetchRaw(ctx context.Context, section content.Section) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, section.ReadPath, &raw); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.snapshots[section.Key] = raw
	s.mu.Unlock()
	return raw, nil
}

func (s *Store) publish(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.log.Debug().Int("subscriber", id).Str("section", ev.Section).Msg("subscriber behind, dropping event")
		}
	}
}
