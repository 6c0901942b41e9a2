// Package editor holds the local editable copy of a content document and the
// mutations an admin can apply to it before saving.
//
// Every mutation takes a document by value and returns a new one; fields the
// mutation does not address are left exactly as they were.
package editor

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrBlankLink       = errors.New("please enter a valid link")
)

// Document is any content document the editor can change.
type Document interface {
	content.FeaturedVideo | content.GridCards | content.Carousel | content.Location
}

// Kind tells the form how to render a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindURL      Kind = "url"
	KindColor    Kind = "color"
)

type field[T any] struct {
	path  string
	label string
	kind  Kind
	get   func(*T) *string
}

var featuredVideoFields = []field[content.FeaturedVideo]{
	{"title", "Title", KindText, func(d *content.FeaturedVideo) *string { return &d.Title }},
	{"description", "Description", KindTextarea, func(d *content.FeaturedVideo) *string { return &d.Description }},
	{"button1.text", "Button 1 Text", KindText, func(d *content.FeaturedVideo) *string { return &d.Button1.Text }},
	{"button1.link", "Button 1 Link", KindURL, func(d *content.FeaturedVideo) *string { return &d.Button1.Link }},
	{"button2.text", "Button 2 Text", KindText, func(d *content.FeaturedVideo) *string { return &d.Button2.Text }},
	{"button2.link", "Button 2 Link", KindURL, func(d *content.FeaturedVideo) *string { return &d.Button2.Link }},
	{"videoSrc", "Video Source", KindURL, func(d *content.FeaturedVideo) *string { return &d.VideoSrc }},
	{"colors.bgColor", "Background Color", KindColor, func(d *content.FeaturedVideo) *string { return &d.Colors.BgColor }},
	{"colors.textColor", "Text Color", KindColor, func(d *content.FeaturedVideo) *string { return &d.Colors.TextColor }},
}

var locationFields = []field[content.Location]{
	{"title", "Title", KindText, func(d *content.Location) *string { return &d.Title }},
	{"subtitle", "Subtitle", KindText, func(d *content.Location) *string { return &d.Subtitle }},
	{"description", "Description", KindTextarea, func(d *content.Location) *string { return &d.Description }},
	{"address", "Address", KindText, func(d *content.Location) *string { return &d.Address }},
	{"phone", "Phone", KindText, func(d *content.Location) *string { return &d.Phone }},
	{"email", "Email", KindText, func(d *content.Location) *string { return &d.Email }},
	{"workingHours", "Working Hours", KindText, func(d *content.Location) *string { return &d.WorkingHours }},
	{"mapSrc", "Map Embed URL", KindURL, func(d *content.Location) *string { return &d.MapSrc }},
	{"bgColor", "Background Color", KindColor, func(d *content.Location) *string { return &d.BgColor }},
	{"textColor", "Text Color", KindColor, func(d *content.Location) *string { return &d.TextColor }},
}

var gridCardsFields = []field[content.GridCards]{
	{"title", "Title", KindText, func(d *content.GridCards) *string { return &d.Title }},
	{"subtitle", "Subtitle", KindText, func(d *content.GridCards) *string { return &d.Subtitle }},
	{"bgColor", "Background Color", KindColor, func(d *content.GridCards) *string { return &d.BgColor }},
	{"textColor", "Text Color", KindColor, func(d *content.GridCards) *string { return &d.TextColor }},
}

var gridCardFields = []field[content.GridCard]{
	{"image", "Image URL", KindURL, func(c *content.GridCard) *string { return &c.Image }},
	{"title", "Title", KindText, func(c *content.GridCard) *string { return &c.Title }},
	{"description", "Description", KindTextarea, func(c *content.GridCard) *string { return &c.Description }},
	{"flipBgColor", "Flip Background", KindColor, func(c *content.GridCard) *string { return &c.FlipBgColor }},
	{"flipTextColor", "Flip Text Color", KindColor, func(c *content.GridCard) *string { return &c.FlipTextColor }},
}

func lookup[T any](fields []field[T], path string) (field[T], bool) {
	for _, f := range fields {
		if f.path == path {
			return f, true
		}
	}
	return field[T]{}, false
}

// SetField returns a copy of doc with the field at path set to value.
//
// Paths are a top-level field ("title"), a field one level down
// ("button1.text", "colors.bgColor") or an element of an array
// ("gridCards.2.title", "images.0").
func SetField[T Document](doc T, path, value string) (T, error) {
	var err error
	switch d := any(&doc).(type) {
	case *content.FeaturedVideo:
		err = setFlat(featuredVideoFields, d, path, value)
	case *content.Location:
		err = setFlat(locationFields, d, path, value)
	case *content.GridCards:
		err = setGridCards(d, path, value)
	case *content.Carousel:
		err = setCarousel(d, path, value)
	}
	return doc, err
}

func setFlat[T any](fields []field[T], d *T, path, value string) error {
	f, ok := lookup(fields, path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	*f.get(d) = value
	return nil
}

func setGridCards(d *content.GridCards, path, value string) error {
	rest, ok := strings.CutPrefix(path, "gridCards.")
	if !ok {
		return setFlat(gridCardsFields, d, path, value)
	}
	idx, name, ok := strings.Cut(rest, ".")
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	i, err := index(idx, len(d.Cards))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f, ok := lookup(gridCardFields, name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	// Copy before writing so the caller's slice is untouched.
	d.Cards = slices.Clone(d.Cards)
	*f.get(&d.Cards[i]) = value
	return nil
}

func setCarousel(d *content.Carousel, path, value string) error {
	idx, ok := strings.CutPrefix(path, "images.")
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	i, err := index(idx, len(d.Images))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	d.Images = slices.Clone(d.Images)
	d.Images[i] = value
	return nil
}

func index(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an index", ErrUnknownField, s)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, n)
	}
	return i, nil
}

// DefaultGridCard is appended by "Add Card".
func DefaultGridCard() content.GridCard {
	return content.GridCard{FlipBgColor: "#ffffff", FlipTextColor: "#333333"}
}

// AddCard appends card after the existing cards.
func AddCard(doc content.GridCards, card content.GridCard) content.GridCards {
	doc.Cards = append(slices.Clone(doc.Cards), card)
	return doc
}

// RemoveCard deletes the card at i; later cards move down by one.
func RemoveCard(doc content.GridCards, i int) (content.GridCards, error) {
	if i < 0 || i >= len(doc.Cards) {
		return doc, fmt.Errorf("removing card %d of %d: %w", i, len(doc.Cards), ErrIndexOutOfRange)
	}
	doc.Cards = slices.Delete(slices.Clone(doc.Cards), i, i+1)
	return doc, nil
}

// AddImage appends a trimmed image link. Blank links are rejected.
func AddImage(doc content.Carousel, link string) (content.Carousel, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return doc, ErrBlankLink
	}
	doc.Images = append(slices.Clone(doc.Images), link)
	return doc, nil
}

// RemoveImage deletes the image at i.
func RemoveImage(doc content.Carousel, i int) (content.Carousel, error) {
	if i < 0 || i >= len(doc.Images) {
		return doc, fmt.Errorf("removing image %d of %d: %w", i, len(doc.Images), ErrIndexOutOfRange)
	}
	doc.Images = slices.Delete(slices.Clone(doc.Images), i, i+1)
	return doc, nil
}
