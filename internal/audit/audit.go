// Package audit records every attempt to save a content section so editors
// can see who changed what and which saves the content API rejected.
package audit

import (
	"context"
	"time"
)

// Action is the outcome of a save attempt.
type Action string

const (
	ActionSaved      Action = "saved"
	ActionSaveFailed Action = "save_failed"
)

// Entry is a single edit history record.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Actor      string    `json:"actor"`
	Section    string    `json:"section"`
	Action     Action    `json:"action"`
	StatusCode int       `json:"status_code,omitempty"`
	Message    string    `json:"message,omitempty"`
	Document   string    `json:"document"`
}

// Recorder is what the editor needs from the edit history.
type Recorder interface {
	Log(ctx context.Context, entry Entry) error
}
