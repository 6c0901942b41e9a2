package site

import (
	"context"
	"net/http"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/fetch"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/nav"
)

type aboutPage struct {
	page
	About1  fetch.State[content.About1]
	About2  fetch.State[content.About2]
	Values  fetch.State[content.CoreValues]
	Message fetch.State[content.ChairmanMessage]
	Team    fetch.State[content.Team]
}

var aboutSectionIDs = []string{"about1", "about2", "values", "message", "team"}

func (s *Site) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "about", s.aboutData(r.Context()))
}

// aboutData loads the about sections concurrently, like homeData.
func (s *Site) aboutData(ctx context.Context) aboutPage {
	a1 := sectionResource[content.About1](s, content.KeyAbout1)
	a2 := sectionResource[content.About2](s, content.KeyAbout2)
	cv := sectionResource[content.CoreValues](s, content.KeyCoreValues)
	msg := sectionResource[content.ChairmanMessage](s, content.KeyMessage)
	team := sectionResource[content.Team](s, content.KeyTeam)
	defer func() {
		a1.Close()
		a2.Close()
		cv.Close()
		msg.Close()
		team.Close()
	}()

	for _, done := range []<-chan struct{}{
		a1.Start(ctx), a2.Start(ctx), cv.Start(ctx), msg.Start(ctx), team.Start(ctx),
	} {
		<-done
	}

	sidebar := nav.AboutSidebar().ForPage(aboutSectionIDs)
	data := aboutPage{
		page:    s.basePage(),
		About1:  a1.State(),
		About2:  a2.State(),
		Values:  cv.State(),
		Message: msg.State(),
		Team:    team.State(),
	}
	data.Sidebar = &sidebar
	return data
}
