package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/fetch"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/nav"
)

type servicePage struct {
	page
	Services fetch.State[[]content.Service]
	Service  *content.Service
}

func (s *Site) handleService(w http.ResponseWriter, r *http.Request) {
	state := fetch.Run(r.Context(), loadFunc[[]content.Service](s, content.MustLookup(content.KeyServices)))
	data, status := s.serviceData(state, chi.URLParam(r, "id"))
	s.renderPage(w, status, "service", data)
}

// serviceData picks the service with id out of the loaded list.
func (s *Site) serviceData(state fetch.State[[]content.Service], id string) (servicePage, int) {
	data := servicePage{page: s.basePage(), Services: state}
	status := http.StatusOK
	switch {
	case state.Failed():
		status = http.StatusBadGateway
	case state.Loaded():
		services := *state.Data
		sidebar := nav.ServicesSidebar(services)
		if svc, ok := content.FindService(services, id); ok {
			data.Service = &svc
			sidebar = sidebar.ForPage([]string{nav.ServiceAnchor(svc)})
		} else {
			status = http.StatusNotFound
		}
		data.Sidebar = &sidebar
	}
	return data, status
}
