package booking

import (
	"strings"
	"time"
)

// NoteEntry is one record in a booking's trainer notes. Entries are only
// ever appended.
type NoteEntry struct {
	At      time.Time `json:"at"`
	ActorID string    `json:"actorId"`
	Action  Action    `json:"action"`
	Summary string    `json:"summary"`
	Message string    `json:"message,omitempty"`
	Details []string  `json:"details,omitempty"`
}

// String renders the entry as a timestamped text block.
func (e NoteEntry) String() string {
	var sb strings.Builder
	sb.WriteString(e.At.UTC().Format(time.RFC3339))
	sb.WriteString(": ")
	sb.WriteString(e.Summary)
	for _, d := range e.Details {
		sb.WriteString("\n")
		sb.WriteString(d)
	}
	if e.Message != "" {
		if len(e.Details) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("\nMessage: ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

type Notes []NoteEntry

// Append returns a new log with e at the end. The receiver is not modified.
func (n Notes) Append(e NoteEntry) Notes {
	out := make(Notes, len(n), len(n)+1)
	copy(out, n)
	return append(out, e)
}

// String renders the whole log, one block per entry separated by a blank line.
func (n Notes) String() string {
	blocks := make([]string, len(n))
	for i, e := range n {
		blocks[i] = e.String()
	}
	return strings.Join(blocks, "\n\n")
}
