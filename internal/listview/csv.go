package listview

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/content"
)

// WriteMessagesCSV writes contact messages, newest first, with a header row.
func WriteMessagesCSV(w io.Writer, msgs []content.ContactMessage) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "email", "message", "submitted_at"}); err != nil {
		return err
	}
	for _, m := range SortBySubmittedDesc(msgs) {
		if err := cw.Write([]string{
			strconv.FormatInt(m.ID, 10),
			m.Name,
			m.Email,
			m.Message,
			m.SubmittedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResponsesCSV writes form responses, newest first, with a header row.
func WriteResponsesCSV(w io.Writer, responses []content.FormResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "field", "field_type", "value", "submitted_at"}); err != nil {
		return err
	}
	for _, r := range SortBySubmittedDesc(responses) {
		if err := cw.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.FormField.Name,
			r.FormField.FieldType,
			r.Value,
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
