package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/audit"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

// Saver writes a whole document back to its section.
type Saver interface {
	Save(ctx context.Context, section content.Section, doc, out any) error
}

type messages struct{ ok, failed string }

var sectionMessages = map[string]messages{
	content.KeyFeaturedVideo: {"Featured Video updated successfully!", "Failed to update featured video."},
	content.KeyGridCards:     {"Changes saved successfully!", "Failed to save changes. Please try again."},
	content.KeyCarousel:      {"Updated Carousel Images", "Failed to update carousel images."},
	content.KeyLocation:      {"Data updated successfully", "Failed to update location."},
}

// SuccessMessage is shown after a section saves.
func SuccessMessage(key string) string {
	if m, ok := sectionMessages[key]; ok {
		return m.ok
	}
	return "Saved."
}

// FailureMessage is shown when a save is rejected.
func FailureMessage(key string) string {
	if m, ok := sectionMessages[key]; ok {
		return m.failed
	}
	return "Save failed."
}

// Session is one admin's editable copy of a section. Doc is the local copy;
// a failed Submit leaves it as it was.
type Session[T Document] struct {
	Section content.Section
	Doc     T
	Actor   string

	saver    Saver
	recorder audit.Recorder
	log      zerolog.Logger
}

// NewSession starts editing doc. recorder may be nil.
func NewSession[T Document](section content.Section, doc T, saver Saver, recorder audit.Recorder, log zerolog.Logger) *Session[T] {
	return &Session[T]{
		Section:  section,
		Doc:      doc,
		saver:    saver,
		recorder: recorder,
		log:      log.With().Str("section", section.Key).Logger(),
	}
}

// statusCoder matches upstream errors carrying an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// Submit PATCHes the whole local copy. Nothing is retried and nothing is
// rolled back.
func (s *Session[T]) Submit(ctx context.Context) error {
	// Grid cards echo the saved document; decoding it checks its shape.
	var out any
	if s.Section.Key == content.KeyGridCards {
		out = new(content.GridCards)
	}

	err := s.saver.Save(ctx, s.Section, s.Doc, out)
	s.record(ctx, err)
	if err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return fmt.Errorf("saving %s: %w", s.Section.Key, err)
	}
	s.log.Info().Msg("section saved")
	return nil
}

func (s *Session[T]) record(ctx context.Context, saveErr error) {
	if s.recorder == nil {
		return
	}
	doc, err := json.Marshal(s.Doc)
	if err != nil {
		s.log.Warn().Err(err).Msg("encoding document for edit history")
		doc = []byte("{}")
	}
	entry := audit.Entry{
		Actor:    s.Actor,
		Section:  s.Section.Key,
		Action:   audit.ActionSaved,
		Document: string(doc),
	}
	if saveErr != nil {
		entry.Action = audit.ActionSaveFailed
		entry.Message = saveErr.Error()
		var sc statusCoder
		if errors.As(saveErr, &sc) {
			entry.StatusCode = sc.HTTPStatus()
		}
	}
	// Losing a history row must not fail the save itself.
	if err := s.recorder.Log(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Warn().Err(err).Msg("recording edit history")
	}
}
