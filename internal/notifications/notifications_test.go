package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

type fakeEvents struct {
	ch       chan store.Event
	canceled chan struct{}
}

func (f *fakeEvents) Subscribe() (<-chan store.Event, func()) {
	return f.ch, func() { close(f.canceled) }
}

func TestDispatchCountsAccepted(t *testing.T) {
	var mu sync.Mutex
	var got []Notification
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var n Notification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			t.Errorf("decoding: %v", err)
		}
		mu.Lock()
		got = append(got, n)
		mu.Unlock()
	}))
	defer ok.Close()
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	d := NewDispatcher([]string{ok.URL, failing.URL}, zerolog.Nop())
	n := FromEvent(store.Event{Section: "carousel", Snapshot: json.RawMessage(`{"images":[]}`), At: time.Now()})
	if delivered := d.Dispatch(context.Background(), n); delivered != 1 {
		t.Errorf("delivered = %d, want 1", delivered)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].Section != "carousel" || got[0].Type != TypeSectionSaved {
		t.Errorf("received %+v", got)
	}
	if string(got[0].Document) != `{"images":[]}` {
		t.Errorf("document = %s", got[0].Document)
	}
}

func TestRunForwardsEvents(t *testing.T) {
	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n Notification
		json.NewDecoder(r.Body).Decode(&n)
		received <- n.Section
	}))
	defer srv.Close()

	events := &fakeEvents{ch: make(chan store.Event, 1), canceled: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewDispatcher([]string{srv.URL}, zerolog.Nop()).Run(ctx, events)
		close(done)
	}()

	events.ch <- store.Event{Section: "location", At: time.Now()}
	select {
	case section := <-received:
		if section != "location" {
			t.Errorf("section = %q", section)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("webhook not called")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	select {
	case <-events.canceled:
	default:
		t.Error("subscription not released")
	}
}
