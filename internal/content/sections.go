package content

import "sort"

// Section is one content endpoint of the site: a document read whole and
// replaced whole. ReadPath and WritePath differ for some sections because the
// API routes them with and without a trailing slash.
type Section struct {
	Key       string // stable identifier used in admin and fragment URLs
	Title     string // human readable name
	ReadPath  string
	WritePath string // empty when the section is read-only
	Anchor    string // DOM id of the rendered section on its page
}

// Editable reports whether the section accepts PATCH.
func (s Section) Editable() bool { return s.WritePath != "" }

// Section keys.
const (
	KeyFeaturedVideo = "featured-video"
	KeyGridCards     = "grid-cards"
	KeyCarousel      = "carousel"
	KeyLocation      = "location"
	KeyServices      = "services"

	KeyAbout1     = "about1"
	KeyAbout2     = "about2"
	KeyCoreValues = "core-values"
	KeyMessage    = "message"
	KeyTeam       = "team"
)

// Collection endpoints.
const (
	PathServices        = "/services/"
	PathContactMessages = "/contact-messages/"
	PathFormResponses   = "/form_responses/"
)

var sections = map[string]Section{
	KeyFeaturedVideo: {
		Key:       KeyFeaturedVideo,
		Title:     "Featured Video",
		ReadPath:  "/home/featured-video/",
		WritePath: "/home/featured-video/",
		Anchor:    "featured-video",
	},
	KeyGridCards: {
		Key:       KeyGridCards,
		Title:     "Grid Cards",
		ReadPath:  "/home/grid-cards",
		WritePath: "/home/grid-cards/",
		Anchor:    "grid-cards",
	},
	KeyCarousel: {
		Key:       KeyCarousel,
		Title:     "Carousel",
		ReadPath:  "/home/carousel",
		WritePath: "/home/carousel/",
		Anchor:    "carousel",
	},
	KeyLocation: {
		Key:       KeyLocation,
		Title:     "Location",
		ReadPath:  "/home/location/",
		WritePath: "/home/location/",
		Anchor:    "location",
	},
	KeyServices: {
		Key:      KeyServices,
		Title:    "Services",
		ReadPath: PathServices,
		Anchor:   "services",
	},

	// About page sections are read-only here; they are managed in the
	// backend admin.
	KeyAbout1: {
		Key:      KeyAbout1,
		Title:    "About Us",
		ReadPath: "/about/about1/",
		Anchor:   "about1",
	},
	KeyAbout2: {
		Key:      KeyAbout2,
		Title:    "Our Identity",
		ReadPath: "/about/about2/",
		Anchor:   "about2",
	},
	KeyCoreValues: {
		Key:      KeyCoreValues,
		Title:    "Core Values",
		ReadPath: "/about/core-values/",
		Anchor:   "values",
	},
	KeyMessage: {
		Key:      KeyMessage,
		Title:    "Chairman's Message",
		ReadPath: "/about/message/",
		Anchor:   "message",
	},
	KeyTeam: {
		Key:      KeyTeam,
		Title:    "Our Team",
		ReadPath: "/about/team/",
		Anchor:   "team",
	},
}

// Lookup returns the section registered under key.
func Lookup(key string) (Section, bool) {
	s, ok := sections[key]
	return s, ok
}

// MustLookup is Lookup for keys known at compile time.
func MustLookup(key string) Section {
	s, ok := sections[key]
	if !ok {
		panic("content: unknown section " + key)
	}
	return s
}

// Sections returns every registered section sorted by key.
func Sections() []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// NewDocument returns a zero document of the type served by the section,
// suitable as a JSON/YAML decode target.
func NewDocument(key string) (any, bool) {
	switch key {
	case KeyFeaturedVideo:
		return &FeaturedVideo{}, true
	case KeyGridCards:
		return &GridCards{}, true
	case KeyCarousel:
		return &Carousel{}, true
	case KeyLocation:
		return &Location{}, true
	case KeyServices:
		return &[]Service{}, true
	case KeyAbout1:
		return &About1{}, true
	case KeyAbout2:
		return &About2{}, true
	case KeyCoreValues:
		return &CoreValues{}, true
	case KeyMessage:
		return &ChairmanMessage{}, true
	case KeyTeam:
		return &Team{}, true
	}
	return nil, false
}
