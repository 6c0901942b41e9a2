package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestGetCarousel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/home/carousel" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("client must not send credentials")
		}
		w.Write([]byte(`{"images":["a.jpg","b.jpg"]}`))
	})

	var cr content.Carousel
	if err := c.Get(context.Background(), "/home/carousel", &cr); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(cr.Images) != 2 || cr.Images[0] != "a.jpg" || cr.Images[1] != "b.jpg" {
		t.Errorf("images = %v", cr.Images)
	}
}

func TestPatchSendsFullDocument(t *testing.T) {
	var got content.FeaturedVideo
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/home/featured-video/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	fv := content.FeaturedVideo{
		Title:   "New title",
		Button1: content.Button{Text: "Apply", Link: "/apply"},
		Colors:  content.Colors{BgColor: "#111111", TextColor: "#eeeeee"},
	}
	if err := c.Patch(context.Background(), "/home/featured-video/", fv, nil); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got != fv {
		t.Errorf("server received %+v, want %+v", got, fv)
	}
}

func TestPatchDecodesEcho(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/home/grid-cards/" {
			t.Errorf("path = %q, want trailing slash", r.URL.Path)
		}
		io.Copy(w, r.Body)
	})

	var echoed content.GridCards
	err := c.Patch(context.Background(), "/home/grid-cards/", content.GridCards{
		Title: "Industries",
		Cards: []content.GridCard{{Title: "Oil"}},
	}, &echoed)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if echoed.Title != "Industries" || len(echoed.Cards) != 1 {
		t.Errorf("echoed = %+v", echoed)
	}
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"featured_video does not exist in the database"}`, http.StatusNotFound)
	})

	var fv content.FeaturedVideo
	err := c.Get(context.Background(), "/home/featured-video/", &fv)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
	if se.HTTPStatus() != http.StatusNotFound {
		t.Errorf("HTTPStatus() = %d", se.HTTPStatus())
	}
}

func TestStatusErrorTrimsOnRuneBoundary(t *testing.T) {
	body := "x" + strings.Repeat("é", maxErrorBody)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, body, http.StatusBadGateway)
	})

	err := c.Get(context.Background(), "/home/location/", nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if !utf8.ValidString(se.Body) {
		t.Errorf("trimmed body is not valid UTF-8: %q", se.Body[len(se.Body)-8:])
	}
	if !strings.HasSuffix(se.Body, "é...") {
		t.Errorf("body should end on a whole rune, got suffix %q", se.Body[len(se.Body)-8:])
	}
	if len(se.Body) > maxErrorBody+len("...") {
		t.Errorf("body length = %d", len(se.Body))
	}
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images": "not-a-list"}`))
	})

	var cr content.Carousel
	err := c.Get(context.Background(), "/home/carousel", &cr)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var services []content.Service
	err := New(url).Get(context.Background(), content.PathServices, &services)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestFormResponsesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/form_responses/" || r.URL.Query().Get("form_id") != "4" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		w.Write([]byte(`[{"id":1,"form_field":{"name":"Photo","field_type":"image"},"value":"p.png","submitted_at":"2024-05-01T10:00:00Z"}]`))
	})

	responses, err := c.FormResponses(context.Background(), 4)
	if err != nil {
		t.Fatalf("FormResponses: %v", err)
	}
	if len(responses) != 1 || !responses[0].IsImage() {
		t.Errorf("responses = %+v", responses)
	}
}

func TestContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ContactMessages(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}
