package site

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/fetch"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/listview"
)

type listPage[T any] struct {
	page
	State    fetch.State[[]T]
	View     listview.View[T]
	BasePath string
}

func (s *Site) handleMessages(w http.ResponseWriter, r *http.Request) {
	state := fetch.Run(r.Context(), s.store.Client().ContactMessages)

	data := listPage[content.ContactMessage]{
		page:     s.basePage(),
		State:    state,
		BasePath: "/admin/messages",
	}
	status := http.StatusOK
	if state.Loaded() {
		data.View = listview.Build(*state.Data, s.cfg.PageSize, pageParam(r))
	} else if state.Failed() {
		status = http.StatusBadGateway
	}
	s.renderPage(w, status, "messages", data)
}

func (s *Site) handleMessagesCSV(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.store.Client().ContactMessages(r.Context())
	if err != nil {
		http.Error(w, "Error: "+err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contact-messages.csv"`)
	if err := listview.WriteMessagesCSV(w, listview.SortBySubmittedDesc(msgs)); err != nil {
		s.log.Error().Err(err).Msg("writing messages csv")
	}
}

// formID parses the {formID} route parameter.
func formID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "formID"))
	return id, err == nil && id > 0
}

func (s *Site) handleResponses(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	state := fetch.Run(r.Context(), func(ctx context.Context) ([]content.FormResponse, error) {
		return s.store.Client().FormResponses(ctx, id)
	})

	data := listPage[content.FormResponse]{
		page:     s.basePage(),
		State:    state,
		BasePath: fmt.Sprintf("/admin/forms/%d/responses", id),
	}
	status := http.StatusOK
	if state.Loaded() {
		data.View = listview.Build(*state.Data, s.cfg.PageSize, pageParam(r))
	} else if state.Failed() {
		status = http.StatusBadGateway
	}
	s.renderPage(w, status, "responses", data)
}

func (s *Site) handleResponsesCSV(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	responses, err := s.store.Client().FormResponses(r.Context(), id)
	if err != nil {
		http.Error(w, "Error: "+err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="form-%d-responses.csv"`, id))
	if err := listview.WriteResponsesCSV(w, listview.SortBySubmittedDesc(responses)); err != nil {
		s.log.Error().Err(err).Int("form_id", id).Msg("writing responses csv")
	}
}
