// Package nav describes the scroll-to-section sidebars. A sidebar item only
// names an element id; activating it scrolls that element into view, and
// does nothing when the current page has no such element.
package nav

import (
	"net/url"
	"strings"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

// Item is one sidebar control.
type Item struct {
	ID      string
	Label   string
	Href    string // set for items that link to another page instead of scrolling
	Present bool   // target exists on the current page
}

// Sidebar is an ordered set of items.
type Sidebar struct {
	Name  string
	Items []Item
}

// HomeSidebar is the sidebar of the home page. It lists only blocks the
// home page renders.
func HomeSidebar() Sidebar {
	return Sidebar{Name: "home", Items: []Item{
		{ID: "hero", Label: "Home"},
		{ID: "services", Label: "Services"},
		{ID: "news", Label: "Industries"},
		{ID: "location", Label: "Location"},
	}}
}

// AboutSidebar is the sidebar of the about page.
func AboutSidebar() Sidebar {
	return Sidebar{Name: "about", Items: []Item{
		{ID: "about1", Label: "About Us"},
		{ID: "about2", Label: "Our Identity"},
		{ID: "values", Label: "Core Values"},
		{ID: "message", Label: "Chairman's Message"},
		{ID: "team", Label: "Our Team"},
	}}
}

// ServicesSidebar has one item per service. Each item scrolls to the
// service when it is on the page and otherwise links to its detail page.
func ServicesSidebar(services []content.Service) Sidebar {
	sb := Sidebar{Name: "services", Items: make([]Item, 0, len(services))}
	for _, s := range services {
		sb.Items = append(sb.Items, Item{
			ID:    ServiceAnchor(s),
			Label: s.Title,
			Href:  "/services/" + url.PathEscape(string(s.ID)),
		})
	}
	return sb
}

// ServiceAnchor is the element id a service is rendered under.
func ServiceAnchor(s content.Service) string {
	return "service-" + strings.ToLower(strings.TrimSpace(string(s.ID)))
}

// Resolve returns id when it is one of present. Otherwise navigation is a
// no-op and ok is false.
func Resolve(id string, present []string) (anchor string, ok bool) {
	for _, p := range present {
		if p == id {
			return id, true
		}
	}
	return "", false
}

// ForPage returns a copy of sb with Present set on items whose target is
// among the page's element ids.
func (sb Sidebar) ForPage(present []string) Sidebar {
	out := Sidebar{Name: sb.Name, Items: make([]Item, len(sb.Items))}
	for i, it := range sb.Items {
		_, it.Present = Resolve(it.ID, present)
		out.Items[i] = it
	}
	return out
}
