package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Button is a call-to-action link rendered in the featured video block.
type Button struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// Colors holds the hex colours of a section.
type Colors struct {
	BgColor   string `json:"bgColor" yaml:"bgColor"`
	TextColor string `json:"textColor" yaml:"textColor"`
}

// FeaturedVideo is the document served at /home/featured-video/.
type FeaturedVideo struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Button1     Button `json:"button1" yaml:"button1"`
	Button2     Button `json:"button2" yaml:"button2"`
	VideoSrc    string `json:"videoSrc" yaml:"videoSrc"`
	Colors      Colors `json:"colors" yaml:"colors"`
}

// GridCard is one flip card in the grid cards section.
type GridCard struct {
	Image         string `json:"image" yaml:"image"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description" yaml:"description"`
	FlipBgColor   string `json:"flipBgColor" yaml:"flipBgColor"`
	FlipTextColor string `json:"flipTextColor" yaml:"flipTextColor"`
}

// GridCards is the document served at /home/grid-cards.
type GridCards struct {
	Title     string     `json:"title" yaml:"title"`
	Subtitle  string     `json:"subtitle" yaml:"subtitle"`
	BgColor   string     `json:"bgColor" yaml:"bgColor"`
	TextColor string     `json:"textColor" yaml:"textColor"`
	Cards     []GridCard `json:"gridCards" yaml:"gridCards"`
}

// Location is the document served at /home/location/.
type Location struct {
	Title        string `json:"title" yaml:"title"`
	Subtitle     string `json:"subtitle" yaml:"subtitle"`
	Description  string `json:"description" yaml:"description"`
	Address      string `json:"address" yaml:"address"`
	Phone        string `json:"phone" yaml:"phone"`
	Email        string `json:"email" yaml:"email"`
	WorkingHours string `json:"workingHours" yaml:"workingHours"`
	MapSrc       string `json:"mapSrc" yaml:"mapSrc"`
	BgColor      string `json:"bgColor" yaml:"bgColor"`
	TextColor    string `json:"textColor" yaml:"textColor"`
}

// Carousel is the document served at /home/carousel.
type Carousel struct {
	Images []string `json:"images" yaml:"images"`
}

// About1 is the "who we are" block served at /about/about1/.
type About1 struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image1      string `json:"image1" yaml:"image1"`
	Image2      string `json:"image2" yaml:"image2"`
	ButtonLabel string `json:"buttonLabel" yaml:"buttonLabel"`
	ButtonLink  string `json:"buttonLink" yaml:"buttonLink"`
	BgColor     string `json:"bgColor" yaml:"bgColor"`
	TextColor   string `json:"textColor" yaml:"textColor"`
}

// KeyPoint is one highlighted point of About2.
type KeyPoint struct {
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// About2 is the identity block served at /about/about2/.
type About2 struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	KeyPoints   []KeyPoint `json:"keyPoints" yaml:"keyPoints"`
	ButtonLabel string     `json:"buttonLabel" yaml:"buttonLabel"`
	ButtonLink  string     `json:"buttonLink" yaml:"buttonLink"`
	BgColor     string     `json:"bgColor" yaml:"bgColor"`
	TextColor   string     `json:"textColor" yaml:"textColor"`
}

// CoreValue is one card of the core values block.
type CoreValue struct {
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
}

// CoreValues is the document served at /about/core-values/. Colors is a
// named palette (white, darkGray, primary...) the block is painted with.
type CoreValues struct {
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle" yaml:"subtitle"`
	Values   []CoreValue       `json:"values" yaml:"values"`
	Colors   map[string]string `json:"colors" yaml:"colors"`
}

// ChairmanMessage is the document served at /about/message/.
type ChairmanMessage struct {
	Image              string `json:"image" yaml:"image"`
	Name               string `json:"name" yaml:"name"`
	Title              string `json:"title" yaml:"title"`
	Message            string `json:"message" yaml:"message"`
	Signature          string `json:"signature" yaml:"signature"`
	YearsOfExperience  Stat   `json:"years_of_experience" yaml:"years_of_experience"`
	ProjectsCompleted  Stat   `json:"projects_completed" yaml:"projects_completed"`
	CompanyEstablished Stat   `json:"company_established" yaml:"company_established"`
}

// TeamMember is one person in the team block.
type TeamMember struct {
	Name      string `json:"name" yaml:"name"`
	Position  string `json:"position" yaml:"position"`
	ImageURL  string `json:"imageUrl" yaml:"imageUrl"`
	Expertise string `json:"expertise" yaml:"expertise"`
	Years     Stat   `json:"years" yaml:"years"`
}

// TeamInfo holds the team headings and members.
type TeamInfo struct {
	Headings struct {
		Title      string `json:"title" yaml:"title"`
		Subheading string `json:"subheading" yaml:"subheading"`
	} `json:"headings" yaml:"headings"`
	Members []TeamMember `json:"members" yaml:"members"`
}

// Team is the document served at /about/team/.
type Team struct {
	BgColor   string   `json:"bgColor" yaml:"bgColor"`
	TextColor string   `json:"textColor" yaml:"textColor"`
	TeamInfo  TeamInfo `json:"teamInfo" yaml:"teamInfo"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt Timestamp `json:"submitted_at"`
}

// FormField describes the field a FormResponse answers.
type FormField struct {
	Name      string `json:"name"`
	FieldType string `json:"field_type"`
}

// FormResponse is a single answered field of a submitted form.
type FormResponse struct {
	ID          int64     `json:"id"`
	FormField   FormField `json:"form_field"`
	Value       string    `json:"value"`
	SubmittedAt Timestamp `json:"submitted_at"`
}

// IsImage reports whether the response value is an image URL.
func (r FormResponse) IsImage() bool { return r.FormField.FieldType == "image" }

// Service is one entry of the /services/ collection.
type Service struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ID is an identifier the API may send as either a JSON string or a number.
// It is always compared in its string form.
type ID string

// UnmarshalJSON accepts "abc", 12 and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	v, err := stringOrNumber(data)
	if err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(v)
	return nil
}

// MarshalJSON writes numeric ids back as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// naiveLayout is what Django emits for datetimes stored without a zone.
const naiveLayout = "2006-01-02T15:04:05.999999"

// Timestamp is a submission time. The API sends RFC 3339 when the backend is
// zone aware and a bare local datetime otherwise; bare values are read as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts RFC 3339, the naive Django form and null.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(naiveLayout, s)
	}
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

// Stat is a display figure such as "30+" or 1995. Editors store either form.
type Stat string

// UnmarshalJSON accepts strings, numbers and null.
func (st *Stat) UnmarshalJSON(data []byte) error {
	v, err := stringOrNumber(data)
	if err != nil {
		return fmt.Errorf("stat must be a string or number: %w", err)
	}
	*st = Stat(v)
	return nil
}

// stringOrNumber returns the text of a JSON string or number. null is "".
func stringOrNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// FindService returns the service whose id matches, or false.
func FindService(services []Service, id string) (Service, bool) {
	for _, s := range services {
		if string(s.ID) == id {
			return s, true
		}
	}
	return Service{}, false
}
