package live

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

// fakeEvents hands out one channel per subscriber and records cancels.
type fakeEvents struct {
	mu       sync.Mutex
	chans    []chan store.Event
	canceled int
	subbed   chan struct{}
}

func (f *fakeEvents) Subscribe() (<-chan store.Event, func()) {
	ch := make(chan store.Event, 1)
	f.mu.Lock()
	f.chans = append(f.chans, ch)
	f.mu.Unlock()
	f.subbed <- struct{}{}
	return ch, func() {
		f.mu.Lock()
		f.canceled++
		f.mu.Unlock()
	}
}

func (f *fakeEvents) send(ev store.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.chans {
		ch <- ev
	}
}

func TestForwardsContentUpdated(t *testing.T) {
	events := &fakeEvents{subbed: make(chan struct{}, 1)}
	r := chi.NewRouter()
	NewHub(events, zerolog.Nop()).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/content"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	select {
	case <-events.subbed:
	case <-time.After(2 * time.Second):
		t.Fatal("hub never subscribed")
	}

	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	events.send(store.Event{Section: "carousel", At: at})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got message
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "content_updated" || got.Section != "carousel" || !got.At.Equal(at) {
		t.Errorf("got %+v", got)
	}
}

func TestUnsubscribesOnClose(t *testing.T) {
	events := &fakeEvents{subbed: make(chan struct{}, 1)}
	r := chi.NewRouter()
	NewHub(events, zerolog.Nop()).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/content"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	<-events.subbed
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events.mu.Lock()
		n := events.canceled
		events.mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("subscription not canceled after client closed")
}
