package editor

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

// Field is one input of an editor form.
type Field struct {
	Path  string
	Label string
	Kind  Kind
	Value string
	Group int // -1 for document fields, otherwise the array index
}

// Fields lists every editable field of doc in display order, including one
// entry per array element.
func Fields[T Document](doc T) []Field {
	switch d := any(&doc).(type) {
	case *content.FeaturedVideo:
		return flatFields(featuredVideoFields, d)
	case *content.Location:
		return flatFields(locationFields, d)
	case *content.GridCards:
		out := flatFields(gridCardsFields, d)
		for i := range d.Cards {
			for _, f := range gridCardFields {
				out = append(out, Field{
					Path:  "gridCards." + strconv.Itoa(i) + "." + f.path,
					Label: f.label,
					Kind:  f.kind,
					Value: *f.get(&d.Cards[i]),
					Group: i,
				})
			}
		}
		return out
	case *content.Carousel:
		out := make([]Field, 0, len(d.Images))
		for i, img := range d.Images {
			out = append(out, Field{
				Path:  "images." + strconv.Itoa(i),
				Label: fmt.Sprintf("Image %d", i+1),
				Kind:  KindURL,
				Value: img,
				Group: i,
			})
		}
		return out
	}
	return nil
}

func flatFields[T any](fields []field[T], d *T) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, Field{Path: f.path, Label: f.label, Kind: f.kind, Value: *f.get(d), Group: -1})
	}
	return out
}

// ApplyForm sets every field of doc that has a value in values, walking the
// fields in display order. Keys that are not field paths are ignored.
func ApplyForm[T Document](doc T, values url.Values) (T, error) {
	for _, f := range Fields(doc) {
		v, ok := values[f.Path]
		if !ok || len(v) == 0 {
			continue
		}
		var err error
		if doc, err = SetField(doc, f.Path, v[0]); err != nil {
			return doc, err
		}
	}
	return doc, nil
}
