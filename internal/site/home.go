package site

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/fetch"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/nav"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

type homePage struct {
	page
	FeaturedVideo fetch.State[content.FeaturedVideo]
	GridCards     fetch.State[content.GridCards]
	Carousel      fetch.State[content.Carousel]
	Location      fetch.State[content.Location]
	Services      fetch.State[[]content.Service]
}

// sectionResource binds a section load to a fetch scope.
func sectionResource[T any](s *Site, key string) *fetch.Resource[T] {
	section := content.MustLookup(key)
	return fetch.NewResource(func(ctx context.Context) (T, error) {
		return store.Load[T](ctx, s.store, section)
	})
}

// homeSectionIDs are the element ids the home page renders. The featured
// video and grid cards sit inside the "hero" and "news" wrappers.
var homeSectionIDs = []string{
	"hero",
	"news",
	content.KeyFeaturedVideo,
	content.KeyGridCards,
	content.KeyServices,
	content.KeyCarousel,
	content.KeyLocation,
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "home", s.homeData(r.Context()))
}

// homeData loads every home section concurrently and waits for all of them.
// The resources are closed before returning, so nothing outlives ctx.
func (s *Site) homeData(ctx context.Context) homePage {
	fv := sectionResource[content.FeaturedVideo](s, content.KeyFeaturedVideo)
	gc := sectionResource[content.GridCards](s, content.KeyGridCards)
	cr := sectionResource[content.Carousel](s, content.KeyCarousel)
	loc := sectionResource[content.Location](s, content.KeyLocation)
	svc := sectionResource[[]content.Service](s, content.KeyServices)
	defer func() {
		fv.Close()
		gc.Close()
		cr.Close()
		loc.Close()
		svc.Close()
	}()

	for _, done := range []<-chan struct{}{
		fv.Start(ctx), gc.Start(ctx), cr.Start(ctx), loc.Start(ctx), svc.Start(ctx),
	} {
		<-done
	}

	sidebar := nav.HomeSidebar().ForPage(homeSectionIDs)
	data := homePage{
		page:          s.basePage(),
		FeaturedVideo: fv.State(),
		GridCards:     gc.State(),
		Carousel:      cr.State(),
		Location:      loc.State(),
		Services:      svc.State(),
	}
	data.Sidebar = &sidebar
	return data
}

// handleFragment renders one home section on its own for live refresh.
func (s *Site) handleFragment(w http.ResponseWriter, r *http.Request) {
	section, ok := lookupSection(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	var state any
	switch section.Key {
	case content.KeyFeaturedVideo:
		state = fetch.Run(ctx, loadFunc[content.FeaturedVideo](s, section))
	case content.KeyGridCards:
		state = fetch.Run(ctx, loadFunc[content.GridCards](s, section))
	case content.KeyCarousel:
		state = fetch.Run(ctx, loadFunc[content.Carousel](s, section))
	case content.KeyLocation:
		state = fetch.Run(ctx, loadFunc[content.Location](s, section))
	case content.KeyServices:
		state = fetch.Run(ctx, loadFunc[[]content.Service](s, section))
	default:
		http.NotFound(w, r)
		return
	}

	s.execute(w, http.StatusOK, "home", "section-"+section.Key, state)
}

// handleContentState reports a section's fetch state as JSON.
func (s *Site) handleContentState(w http.ResponseWriter, r *http.Request) {
	section, ok := lookupSection(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown section"})
		return
	}

	state := fetch.Run(r.Context(), loadFunc[json.RawMessage](s, section))
	status := http.StatusOK
	if state.Failed() {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, state)
}

func loadFunc[T any](s *Site, section content.Section) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return store.Load[T](ctx, s.store, section)
	}
}
