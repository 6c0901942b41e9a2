// Package site serves the public pages and the admin editing surface. Every
// page request fetches what it shows from the content API, bounded by the
// request's context, and renders each data-bound block from its fetch state.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/audit"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/listview"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/nav"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/render"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

// Config holds site settings.
type Config struct {
	SiteName string
	PageSize int
}

// Site renders pages from the content store.
type Site struct {
	cfg      Config
	store    *store.Store
	recorder audit.Recorder
	renderer *render.Renderer
	log      zerolog.Logger
	pages    map[string]*template.Template
}

// New creates a Site. recorder may be nil, in which case edits are not
// recorded.
func New(cfg Config, st *store.Store, recorder audit.Recorder, log zerolog.Logger) (*Site, error) {
	if cfg.PageSize <= 0 {
		cfg.PageSize = listview.DefaultPageSize
	}
	s := &Site{
		cfg:      cfg,
		store:    st,
		recorder: recorder,
		renderer: render.New(),
		log:      log,
	}
	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	return s, nil
}

// RegisterRoutes mounts the public pages, the admin surface and the JSON
// content endpoint.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get("/services/{id}", s.handleService)
	r.Get("/fragments/{section}", s.handleFragment)
	r.Get("/api/content/{section}", s.handleContentState)
	r.Get("/static/style.css", serveStatic("text/css; charset=utf-8", cssContent))
	r.Get("/static/site.js", serveStatic("application/javascript; charset=utf-8", jsContent))

	r.Route("/admin", func(r chi.Router) {
		r.Get("/messages", s.handleMessages)
		r.Get("/messages.csv", s.handleMessagesCSV)
		r.Get("/forms/{formID}/responses", s.handleResponses)
		r.Get("/forms/{formID}/responses.csv", s.handleResponsesCSV)
		r.Get("/edit/{section}", s.handleEditForm)
		r.Post("/edit/{section}", s.handleEditSubmit)
	})
}

// alert is a banner shown above the page content.
type alert struct {
	Kind    string // "success" or "error"
	Message string
}

// page carries the fields the layout needs.
type page struct {
	SiteName string
	Sidebar  *nav.Sidebar
	Alert    *alert
}

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	pickerHex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func (s *Site) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": s.renderer.Markdown,
		"color": func(c string) template.CSS {
			if hexColor.MatchString(c) {
				return template.CSS(c)
			}
			return "inherit"
		},
		"pickerColor": func(c string) string {
			if pickerHex.MatchString(c) {
				return c
			}
			return "#000000"
		},
		"serviceAnchor": nav.ServiceAnchor,
		"formatTime": func(t content.Timestamp) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("Jan 2, 2006 15:04")
		},
		"inc": func(i int) int { return i + 1 },
		"dec": func(i int) int { return i - 1 },
	}
}

func (s *Site) parseTemplates() error {
	base, err := template.New("base").Funcs(s.funcs()).Parse(layoutTemplate + sectionsTemplate + pagerTemplate)
	if err != nil {
		return fmt.Errorf("parsing layout template: %w", err)
	}

	pageSources := map[string]string{
		"home":      homeTemplate,
		"about":     aboutTemplate,
		"service":   serviceTemplate,
		"messages":  messagesTemplate,
		"responses": responsesTemplate,
		"editor":    editorTemplate,
	}
	s.pages = make(map[string]*template.Template, len(pageSources))
	for name, src := range pageSources {
		t, err := template.Must(base.Clone()).Parse(src)
		if err != nil {
			return fmt.Errorf("parsing %s template: %w", name, err)
		}
		s.pages[name] = t
	}
	return nil
}

// renderPage executes a full page into a buffer first so a template error
// never leaves a half written response.
func (s *Site) renderPage(w http.ResponseWriter, status int, name string, data any) {
	s.execute(w, status, name, "layout", data)
}

func (s *Site) execute(w http.ResponseWriter, status int, name, tmpl string, data any) {
	var buf bytes.Buffer
	if err := s.renderTo(&buf, name, tmpl, data); err != nil {
		s.log.Error().Err(err).Msg("rendering page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Site) renderTo(w io.Writer, name, tmpl string, data any) error {
	t, ok := s.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := t.ExecuteTemplate(w, tmpl, data); err != nil {
		return fmt.Errorf("executing %s/%s: %w", name, tmpl, err)
	}
	return nil
}

func (s *Site) basePage() page {
	return page{SiteName: s.cfg.SiteName}
}

func serveStatic(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write([]byte(body))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pageParam reads ?page=N, defaulting to 1.
func pageParam(r *http.Request) int {
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		return n
	}
	return 1
}

func lookupSection(r *http.Request) (content.Section, bool) {
	return content.Lookup(chi.URLParam(r, "section"))
}
