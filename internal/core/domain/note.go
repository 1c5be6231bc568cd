package domain

import "time"

// NoteTimestampLayout is ISO-8601 UTC with millisecond precision.
const NoteTimestampLayout = "2006-01-02T15:04:05.000Z"

// Note is a free-text research note. ID is the creation time in unix
// milliseconds and is unique within the collection.
type Note struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// FormatNoteTimestamp renders t in the stored note timestamp layout.
func FormatNoteTimestamp(t time.Time) string {
	return t.UTC().Format(NoteTimestampLayout)
}
