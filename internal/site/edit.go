package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/editor"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/fetch"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

// actorHeader names the admin making an edit when a proxy in front of the
// site authenticates them.
const actorHeader = "X-Forwarded-User"

type group struct {
	Title        string
	Fields       []editor.Field
	RemoveAction string
	Index        int
}

type editorPage struct {
	page
	Sections []content.Section
	Section  content.Section
	Loaded   bool
	Err      *fetch.Error
	DocJSON  string
	Groups   []group
}

func editableSections() []content.Section {
	var out []content.Section
	for _, sec := range content.Sections() {
		if sec.Editable() {
			out = append(out, sec)
		}
	}
	return out
}

func (s *Site) editableSection(w http.ResponseWriter, r *http.Request) (content.Section, bool) {
	section, ok := lookupSection(r)
	if !ok || !section.Editable() {
		http.NotFound(w, r)
		return content.Section{}, false
	}
	return section, true
}

func (s *Site) handleEditForm(w http.ResponseWriter, r *http.Request) {
	section, ok := s.editableSection(w, r)
	if !ok {
		return
	}
	switch section.Key {
	case content.KeyFeaturedVideo:
		editForm[content.FeaturedVideo](s, w, r, section)
	case content.KeyGridCards:
		editForm[content.GridCards](s, w, r, section)
	case content.KeyCarousel:
		editForm[content.Carousel](s, w, r, section)
	case content.KeyLocation:
		editForm[content.Location](s, w, r, section)
	default:
		http.NotFound(w, r)
	}
}

func (s *Site) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	section, ok := s.editableSection(w, r)
	if !ok {
		return
	}
	switch section.Key {
	case content.KeyFeaturedVideo:
		editSubmit[content.FeaturedVideo](s, w, r, section)
	case content.KeyGridCards:
		editSubmit[content.GridCards](s, w, r, section)
	case content.KeyCarousel:
		editSubmit[content.Carousel](s, w, r, section)
	case content.KeyLocation:
		editSubmit[content.Location](s, w, r, section)
	default:
		http.NotFound(w, r)
	}
}

func editForm[T editor.Document](s *Site, w http.ResponseWriter, r *http.Request, section content.Section) {
	doc, err := store.Load[T](r.Context(), s.store, section)
	if err != nil {
		s.renderEditor(w, http.StatusBadGateway, editorPage{
			page:    s.basePage(),
			Section: section,
			Err:     fetch.Classify(err),
		})
		return
	}

	var a *alert
	if r.URL.Query().Get("saved") == "1" {
		a = &alert{Kind: "success", Message: editor.SuccessMessage(section.Key)}
	}
	renderDoc(s, w, http.StatusOK, section, doc, a)
}

// editSubmit applies the posted form to the local copy carried in the
// page, then runs the requested action. Only "save" talks to the API.
func editSubmit[T editor.Document](s *Site, w http.ResponseWriter, r *http.Request, section content.Section) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var doc T
	if raw := r.PostForm.Get("doc"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			http.Error(w, "invalid document: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		loaded, err := store.Load[T](r.Context(), s.store, section)
		if err != nil {
			s.renderEditor(w, http.StatusBadGateway, editorPage{
				page:    s.basePage(),
				Section: section,
				Err:     fetch.Classify(err),
			})
			return
		}
		doc = loaded
	}

	doc, err := editor.ApplyForm(doc, r.PostForm)
	if err != nil {
		renderDoc(s, w, http.StatusBadRequest, section, doc, &alert{Kind: "error", Message: err.Error()})
		return
	}

	action, idx := parseAction(r.PostForm)
	if action == "" || action == "save" {
		sess := editor.NewSession(section, doc, s.store, s.recorder, s.log)
		sess.Actor = r.Header.Get(actorHeader)
		if err := sess.Submit(r.Context()); err != nil {
			msg := editor.FailureMessage(section.Key) + " " + err.Error()
			renderDoc(s, w, http.StatusBadGateway, section, sess.Doc, &alert{Kind: "error", Message: msg})
			return
		}
		http.Redirect(w, r, "/admin/edit/"+section.Key+"?saved=1", http.StatusSeeOther)
		return
	}

	next, err := applyAction(any(doc), action, idx, r.PostForm.Get("new_image"))
	if err != nil {
		msg := err.Error()
		if errors.Is(err, editor.ErrBlankLink) {
			msg = "Please enter a valid link."
		}
		renderDoc(s, w, http.StatusBadRequest, section, doc, &alert{Kind: "error", Message: msg})
		return
	}
	renderDoc(s, w, http.StatusOK, section, next.(T), nil)
}

// parseAction splits "remove_card:2" into its name and index. An explicit
// index field wins over the suffix.
func parseAction(form map[string][]string) (string, int) {
	var action string
	if v := form["action"]; len(v) > 0 {
		action = v[0]
	}
	idx := -1
	if name, n, ok := strings.Cut(action, ":"); ok {
		action = name
		if i, err := strconv.Atoi(n); err == nil {
			idx = i
		}
	}
	if v := form["index"]; len(v) > 0 {
		if i, err := strconv.Atoi(v[0]); err == nil {
			idx = i
		}
	}
	return action, idx
}

func applyAction(doc any, action string, idx int, newImage string) (any, error) {
	switch d := doc.(type) {
	case content.GridCards:
		switch action {
		case "add_card":
			return editor.AddCard(d, editor.DefaultGridCard()), nil
		case "remove_card":
			return editor.RemoveCard(d, idx)
		}
	case content.Carousel:
		switch action {
		case "add_image":
			return editor.AddImage(d, newImage)
		case "remove_image":
			return editor.RemoveImage(d, idx)
		}
	}
	return doc, fmt.Errorf("unknown action %q", action)
}

func renderDoc[T editor.Document](s *Site, w http.ResponseWriter, status int, section content.Section, doc T, a *alert) {
	raw, err := json.Marshal(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := editorPage{
		page:    s.basePage(),
		Section: section,
		Loaded:  true,
		DocJSON: string(raw),
		Groups:  groupFields(section, editor.Fields(doc)),
	}
	data.Alert = a
	s.renderEditor(w, status, data)
}

func (s *Site) renderEditor(w http.ResponseWriter, status int, data editorPage) {
	data.Sections = editableSections()
	s.renderPage(w, status, "editor", data)
}

// groupFields puts document fields first, then one fieldset per array
// element.
func groupFields(section content.Section, fields []editor.Field) []group {
	var out []group
	byIndex := map[int]int{}
	for _, f := range fields {
		pos, ok := byIndex[f.Group]
		if !ok {
			g := group{Title: section.Title, Index: f.Group}
			switch {
			case f.Group < 0:
			case section.Key == content.KeyGridCards:
				g.Title = fmt.Sprintf("Card %d", f.Group+1)
				g.RemoveAction = "remove_card"
			case section.Key == content.KeyCarousel:
				g.Title = fmt.Sprintf("Image %d", f.Group+1)
				g.RemoveAction = "remove_image"
			}
			out = append(out, g)
			pos = len(out) - 1
			byIndex[f.Group] = pos
		}
		out[pos].Fields = append(out[pos].Fields, f)
	}
	return out
}
