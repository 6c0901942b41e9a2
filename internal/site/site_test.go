package site

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/audit"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/contentapi"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/db"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

// upstream is an in-memory content API.
type upstream struct {
	mu        sync.Mutex
	docs      map[string]string
	failGet   map[string]int
	failPatch map[string]int
	patches   []string
}

func newUpstream() *upstream {
	return &upstream{
		docs: map[string]string{
			"/home/featured-video/": `{"title":"Learn to fly","description":"**Bold** start","button1":{"text":"Apply","link":"/apply"},"button2":{"text":"","link":""},"videoSrc":"","colors":{"bgColor":"#000000","textColor":"#ffffff"}}`,
			"/home/grid-cards":      `{"title":"Industries","subtitle":"Where we work","bgColor":"#ffffff","textColor":"#000000","gridCards":[{"image":"a.jpg","title":"Oil","description":"Rigs","flipBgColor":"#ffffff","flipTextColor":"#333333"}]}`,
			"/home/carousel":        `{"images":["first.jpg","second.jpg"]}`,
			"/home/location/":       `{"title":"Visit us","subtitle":"","description":"","address":"1 Main St","phone":"555","email":"hi@example.com","workingHours":"9-5","mapSrc":"","bgColor":"","textColor":""}`,
			"/about/about1/":        `{"title":"Who We Are","description":"Workforce *architects*","image1":"w.jpg","image2":"","buttonLabel":"Profile","buttonLink":"/profile.pdf","bgColor":"darkgray","textColor":"#ffffff"}`,
			"/about/about2/":        `{"title":"Our Identity","description":"","keyPoints":[{"icon":"*","title":"Trust","description":"Always"}],"buttonLabel":"","buttonLink":"","bgColor":"","textColor":""}`,
			"/about/core-values/":   `{"title":"Core Values","subtitle":"What drives us","values":[{"icon":"!","title":"Integrity","description":"Honest work","color":"#e6b800"}],"colors":{"white":"#ffffff","darkGray":"#333333"}}`,
			"/about/message/":       `{"image":"c.jpg","name":"A. Rahman","title":"Chairman","message":"Welcome.","signature":"","years_of_experience":"30+","projects_completed":500,"company_established":"1995"}`,
			"/about/team/":          `{"bgColor":"","textColor":"","teamInfo":{"headings":{"title":"Our Team","subheading":"People first"},"members":[{"name":"Sara","position":"Recruiter","imageUrl":"s.jpg","expertise":"Gulf hiring","years":12}]}}`,
			"/services/":            `[{"id":1,"title":"Pilot training","description":"Fly"},{"id":"drones","title":"Drones","description":"Hover"}]`,
			"/contact-messages/":    contactMessages(12),
			"/form_responses/":      `[{"id":1,"form_field":{"name":"Photo","field_type":"image"},"value":"p.jpg","submitted_at":"2024-03-01T10:00:00.123456"}]`,
		},
		failGet:   map[string]int{},
		failPatch: map[string]int{},
	}
}

func contactMessages(n int) string {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	msgs := make([]content.ContactMessage, n)
	for i := range msgs {
		msgs[i] = content.ContactMessage{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("sender-%02d", i+1),
			Email:       "a@example.com",
			Message:     "hello",
			SubmittedAt: content.Timestamp{Time: base.Add(time.Duration(i) * time.Hour)},
		}
	}
	data, _ := json.Marshal(msgs)
	return string(data)
}

// patchPath maps write paths onto the read paths that serve them.
var patchPath = map[string]string{
	"/home/featured-video/": "/home/featured-video/",
	"/home/grid-cards/":     "/home/grid-cards",
	"/home/carousel/":       "/home/carousel",
	"/home/location/":       "/home/location/",
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if code := u.failGet[r.URL.Path]; code != 0 {
			http.Error(w, "upstream down", code)
			return
		}
		doc, ok := u.docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, doc)
	case http.MethodPatch:
		if code := u.failPatch[r.URL.Path]; code != 0 {
			http.Error(w, "rejected", code)
			return
		}
		body, _ := io.ReadAll(r.Body)
		u.patches = append(u.patches, r.URL.Path)
		if read, ok := patchPath[r.URL.Path]; ok {
			u.docs[read] = string(body)
		}
		w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (u *upstream) setGetFailure(path string, code int) {
	u.mu.Lock()
	u.failGet[path] = code
	u.mu.Unlock()
}

func (u *upstream) setPatchFailure(path string, code int) {
	u.mu.Lock()
	u.failPatch[path] = code
	u.mu.Unlock()
}

func (u *upstream) doc(path string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.docs[path]
}

type fixture struct {
	api   *upstream
	site  http.Handler
	audit *audit.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := newUpstream()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	recorder := audit.NewStore(database)

	st := store.New(contentapi.New(srv.URL), zerolog.Nop())
	s, err := New(Config{SiteName: "Kaf Tar", PageSize: 10}, st, recorder, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return &fixture{api: api, site: r, audit: recorder}
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.site.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (f *fixture) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.site.ServeHTTP(rec, req)
	return rec
}

func TestHomeRendersAllSections(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()

	for _, want := range []string{
		`id="featured-video"`, `id="grid-cards"`, `id="carousel"`, `id="location"`, `id="services"`,
		"Learn to fly", "<strong>Bold</strong>", "Industries", "1 Main St",
		`href="/services/drones"`, `data-scroll-target="hero"`, `data-scroll-target="news"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(body, "sidebar-item absent") {
		t.Error("every home sidebar control should have a target on the page")
	}
}

func TestAboutPage(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()

	for _, want := range []string{
		`id="about1"`, `id="about2"`, `id="values"`, `id="message"`, `id="team"`,
		"Who We Are", "<em>architects</em>", `href="/profile.pdf"`,
		"Trust", "Integrity", "What drives us",
		"A. Rahman", "<dd>30+</dd>", "<dd>500</dd>",
		"People first", "Gulf hiring", "12 years",
		`data-sidebar="about"`, `data-scroll-target="team"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("about page missing %q", want)
		}
	}
	if strings.Contains(body, "sidebar-item absent") {
		t.Error("every about sidebar control should have a target on the page")
	}
}

func TestAboutSectionFailureIsolated(t *testing.T) {
	f := newFixture(t)
	f.api.setGetFailure("/about/team/", http.StatusServiceUnavailable)

	body := f.get(t, "/about").Body.String()
	if !strings.Contains(body, "Error: GET /about/team/: status 503") {
		t.Error("team error not shown")
	}
	if !strings.Contains(body, "Who We Are") {
		t.Error("a failed section must not hide the others")
	}
}

func TestCarouselSlidesInOrder(t *testing.T) {
	f := newFixture(t)
	body := f.get(t, "/").Body.String()

	first := strings.Index(body, `<li class="slide" data-index="0"><img src="first.jpg"`)
	second := strings.Index(body, `<li class="slide" data-index="1"><img src="second.jpg"`)
	if first < 0 || second < 0 {
		t.Fatalf("slides missing from page")
	}
	if first > second {
		t.Error("slides rendered out of order")
	}
	if n := strings.Count(body, `class="slide"`); n != 2 {
		t.Errorf("rendered %d slides, want 2", n)
	}
}

func TestSectionErrorShownVerbatim(t *testing.T) {
	f := newFixture(t)
	f.api.setGetFailure("/home/carousel", http.StatusInternalServerError)

	rec := f.get(t, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, other sections should still render", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Error: GET /home/carousel: status 500: upstream down") {
		t.Errorf("carousel error not shown verbatim:\n%s", body)
	}
	if !strings.Contains(body, "Learn to fly") {
		t.Error("a failed section must not hide the others")
	}
	if n := strings.Count(body, `class="state-retry"`); n != 1 {
		t.Errorf("got %d retry links, want 1 for the 500", n)
	}
}

func TestRetryLinkOnlyForTransientFailures(t *testing.T) {
	f := newFixture(t)
	f.api.setGetFailure("/home/carousel", http.StatusNotFound)

	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Error: GET /home/carousel: status 404") {
		t.Fatalf("carousel error missing:\n%s", body)
	}
	if strings.Contains(body, `class="state-retry"`) {
		t.Error("a 404 will not go away on reload")
	}

	f.api.setGetFailure("/home/location/", http.StatusBadGateway)
	body = f.get(t, "/").Body.String()
	if !strings.Contains(body, `<a href="">Try again</a>`) {
		t.Error("a 502 should offer a reload")
	}
}

func TestServiceDetail(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/services/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Pilot training") {
		t.Error("service title missing")
	}
	if !strings.Contains(rec.Body.String(), `id="service-1"`) {
		t.Error("service anchor missing")
	}
	if !strings.Contains(rec.Body.String(), `data-scroll-target="service-1"`) {
		t.Error("current service should scroll in place")
	}
	if !strings.Contains(rec.Body.String(), `href="/services/drones"`) {
		t.Error("other services should link to their pages")
	}

	rec = f.get(t, "/services/unknown")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Service not found") {
		t.Error("missing not found message")
	}
}

func TestMessagesPagination(t *testing.T) {
	f := newFixture(t)

	body := f.get(t, "/admin/messages").Body.String()
	// Newest first: sender-12 down to sender-03 on page one.
	if !strings.Contains(body, "sender-12") || !strings.Contains(body, "sender-03") {
		t.Error("page one should hold the ten newest messages")
	}
	if strings.Contains(body, "sender-02") {
		t.Error("page one should not contain sender-02")
	}
	if strings.Index(body, "sender-12") > strings.Index(body, "sender-11") {
		t.Error("messages not sorted newest first")
	}

	body = f.get(t, "/admin/messages?page=2").Body.String()
	if !strings.Contains(body, "sender-02") || !strings.Contains(body, "sender-01") {
		t.Error("page two should hold the two oldest messages")
	}

	// Out of range stays on page one.
	body = f.get(t, "/admin/messages?page=9").Body.String()
	if !strings.Contains(body, "sender-12") {
		t.Error("out of range page should not move")
	}
}

func TestMessagesEmpty(t *testing.T) {
	f := newFixture(t)
	f.api.mu.Lock()
	f.api.docs["/contact-messages/"] = `[]`
	f.api.mu.Unlock()

	body := f.get(t, "/admin/messages").Body.String()
	if !strings.Contains(body, "No messages found.") {
		t.Error("missing empty message")
	}
}

func TestMessagesCSV(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/admin/messages.csv")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 13 {
		t.Fatalf("got %d lines, want header plus 12", len(lines))
	}
	if !strings.Contains(lines[1], "sender-12") {
		t.Errorf("first row = %q, want newest", lines[1])
	}
}

func TestResponsesPage(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/admin/forms/3/responses")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, zone-less timestamps should decode", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<img class="thumb" src="p.jpg"`) {
		t.Error("image responses should render as thumbnails")
	}
	if !strings.Contains(body, `href="/admin/forms/3/responses.csv"`) {
		t.Error("missing CSV link")
	}

	if rec := f.get(t, "/admin/forms/abc/responses"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFragment(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/fragments/carousel")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<section id="carousel"`) {
		t.Errorf("fragment should be the bare section, got %q", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("fragment must not include the layout")
	}

	if rec := f.get(t, "/fragments/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestContentState(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/api/content/carousel")
	var st struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if st.Status != "success" || !strings.Contains(string(st.Data), "first.jpg") {
		t.Errorf("state = %+v", st)
	}

	f.api.setGetFailure("/home/location/", http.StatusServiceUnavailable)
	rec = f.get(t, "/api/content/location")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	var failed struct {
		Status string `json:"status"`
		Error  struct {
			Kind       string `json:"kind"`
			StatusCode int    `json:"status_code"`
		} `json:"error"`
	}
	json.Unmarshal(rec.Body.Bytes(), &failed)
	if failed.Status != "error" || failed.Error.Kind != "status" || failed.Error.StatusCode != 503 {
		t.Errorf("state = %+v", failed)
	}
}

func TestEditFormShowsFields(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/admin/edit/grid-cards")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`name="title"`, `name="gridCards.0.title"`, `value="remove_card:0"`, "Card 1"} {
		if !strings.Contains(body, want) {
			t.Errorf("editor missing %q", want)
		}
	}

	if rec := f.get(t, "/admin/edit/services"); rec.Code != http.StatusNotFound {
		t.Errorf("read-only section status = %d, want 404", rec.Code)
	}
}

func TestEditFormKeepsRawLinksAndColors(t *testing.T) {
	f := newFixture(t)

	body := f.get(t, "/admin/edit/featured-video").Body.String()
	if !strings.Contains(body, `<input type="text" name="button1.link" value="/apply">`) {
		t.Error("relative link should sit in a plain text input")
	}
	if strings.Contains(body, `type="url"`) {
		t.Error("url inputs reject relative links on submit")
	}

	body = f.get(t, "/admin/edit/location").Body.String()
	if !strings.Contains(body, `<input type="text" name="bgColor" value="">`) {
		t.Error("empty colour should stay empty in a text input")
	}
	if !strings.Contains(body, `<input type="color" class="picker" data-mirror="bgColor" value="#000000"`) {
		t.Error("colour field should offer a picker")
	}
	if strings.Contains(body, `type="color" name=`) {
		t.Error("the picker must not submit a value of its own")
	}
}

func TestEditSaveRedirects(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/admin/edit/featured-video", url.Values{
		"title":  {"Fly higher"},
		"action": {"save"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/edit/featured-video?saved=1" {
		t.Errorf("Location = %q", loc)
	}

	var saved content.FeaturedVideo
	json.Unmarshal([]byte(f.api.doc("/home/featured-video/")), &saved)
	if saved.Title != "Fly higher" || saved.Button1.Text != "Apply" {
		t.Errorf("upstream doc = %+v, want title changed and the rest kept", saved)
	}

	body := f.get(t, "/admin/edit/featured-video?saved=1").Body.String()
	if !strings.Contains(body, "Featured Video updated successfully!") {
		t.Error("missing success alert")
	}

	entries, err := f.audit.Query(context.Background(), audit.QueryFilter{Section: content.KeyFeaturedVideo})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != audit.ActionSaved {
		t.Errorf("audit entries = %+v", entries)
	}
}

func TestEditFailedSaveKeepsEdits(t *testing.T) {
	f := newFixture(t)
	f.api.setPatchFailure("/home/location/", http.StatusBadRequest)

	rec := f.post(t, "/admin/edit/location", url.Values{
		"address": {"2 Side St"},
		"action":  {"save"},
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Error("failed save must not redirect")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Failed to update location.") {
		t.Error("missing failure alert")
	}
	if !strings.Contains(body, `value="2 Side St"`) {
		t.Error("local edits were lost after a failed save")
	}

	var upstreamDoc content.Location
	json.Unmarshal([]byte(f.api.doc("/home/location/")), &upstreamDoc)
	if upstreamDoc.Address != "1 Main St" {
		t.Errorf("upstream changed to %q", upstreamDoc.Address)
	}

	entries, _ := f.audit.Query(context.Background(), audit.QueryFilter{Action: audit.ActionSaveFailed})
	if len(entries) != 1 || entries[0].StatusCode != http.StatusBadRequest {
		t.Errorf("audit entries = %+v", entries)
	}
}

func TestEditCarouselActions(t *testing.T) {
	f := newFixture(t)
	doc := `{"images":["first.jpg","second.jpg"]}`

	rec := f.post(t, "/admin/edit/carousel", url.Values{
		"doc":       {doc},
		"action":    {"add_image"},
		"new_image": {"  third.jpg  "},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="third.jpg"`) {
		t.Error("added image missing from form")
	}

	rec = f.post(t, "/admin/edit/carousel", url.Values{
		"doc":       {doc},
		"action":    {"add_image"},
		"new_image": {"   "},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please enter a valid link.") {
		t.Error("missing blank link alert")
	}

	rec = f.post(t, "/admin/edit/carousel", url.Values{
		"doc":    {doc},
		"action": {"remove_image:0"},
	})
	body := rec.Body.String()
	if strings.Contains(body, `value="first.jpg"`) || !strings.Contains(body, `value="second.jpg"`) {
		t.Error("remove_image:0 should drop only the first image")
	}

	// Local actions never reach the API.
	f.api.mu.Lock()
	patches := len(f.api.patches)
	f.api.mu.Unlock()
	if patches != 0 {
		t.Errorf("got %d PATCH requests, want 0", patches)
	}
}

func TestEditAddCardDefaults(t *testing.T) {
	f := newFixture(t)
	rec := f.post(t, "/admin/edit/grid-cards", url.Values{"action": {"add_card"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="gridCards.1.flipBgColor" value="#ffffff"`) {
		t.Error("new card should default its flip background")
	}
	if !strings.Contains(body, `name="gridCards.1.flipTextColor" value="#333333"`) {
		t.Error("new card should default its flip text color")
	}
}

type countingProgress struct {
	total, advanced int
	finished        bool
}

func (p *countingProgress) Start(total int)    { p.total = total }
func (p *countingProgress) Update(int, string) { p.advanced++ }
func (p *countingProgress) Finish()            { p.finished = true }

func TestExport(t *testing.T) {
	api := newUpstream()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	s, err := New(Config{SiteName: "Kaf Tar"}, store.New(contentapi.New(srv.URL), zerolog.Nop()), nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dir := t.TempDir()
	var p countingProgress
	n, err := s.Export(context.Background(), dir, &p)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 4 {
		t.Errorf("pages = %d, want home, about and two services", n)
	}
	if p.total != 4 || p.advanced != 4 || !p.finished {
		t.Errorf("progress = %+v", p)
	}

	for _, rel := range []string{"index.html", "about/index.html", "services/1/index.html", "services/drones/index.html", "static/style.css", "static/site.js"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	data, _ := os.ReadFile(filepath.Join(dir, "services", "drones", "index.html"))
	if !strings.Contains(string(data), "Hover") {
		t.Error("service page missing description")
	}
}
