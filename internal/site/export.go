package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/fetch"
)

// Progress receives one Update per exported page.
type Progress interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// Export renders the public pages into dir as a static snapshot: the home
// and about pages, one page per service and the stylesheet and script they
// load.
// Sections that fail to load are written in their error state. It returns
// the number of HTML pages written.
func (s *Site) Export(ctx context.Context, dir string, p Progress) (int, error) {
	if err := os.MkdirAll(filepath.Join(dir, "static"), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(dir, "static", "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(dir, "static", "site.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	home := s.homeData(ctx)
	about := s.aboutData(ctx)
	for key, err := range map[string]*fetch.Error{
		content.KeyFeaturedVideo: home.FeaturedVideo.Err,
		content.KeyGridCards:     home.GridCards.Err,
		content.KeyCarousel:      home.Carousel.Err,
		content.KeyLocation:      home.Location.Err,
		content.KeyServices:      home.Services.Err,
		content.KeyAbout1:        about.About1.Err,
		content.KeyAbout2:        about.About2.Err,
		content.KeyCoreValues:    about.Values.Err,
		content.KeyMessage:       about.Message.Err,
		content.KeyTeam:          about.Team.Err,
	} {
		if err != nil {
			s.log.Warn().Str("section", key).Str("error", err.Message).Msg("exporting section in error state")
		}
	}
	var services []content.Service
	if home.Services.Loaded() {
		services = *home.Services.Data
	}

	p.Start(2 + len(services))
	defer p.Finish()

	if err := s.writePage(filepath.Join(dir, "index.html"), "home", home); err != nil {
		return 0, err
	}
	pages := 1
	p.Update(pages, "index.html")

	aboutRel := filepath.Join("about", "index.html")
	if err := s.writePage(filepath.Join(dir, aboutRel), "about", about); err != nil {
		return pages, err
	}
	pages++
	p.Update(pages, aboutRel)

	for _, svc := range services {
		data, _ := s.serviceData(home.Services, string(svc.ID))
		rel := filepath.Join("services", filepath.Base(string(svc.ID)), "index.html")
		if err := s.writePage(filepath.Join(dir, rel), "service", data); err != nil {
			return pages, err
		}
		pages++
		p.Update(pages, rel)
	}
	return pages, nil
}

func (s *Site) writePage(path, name string, data any) error {
	var buf bytes.Buffer
	if err := s.renderTo(&buf, name, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
