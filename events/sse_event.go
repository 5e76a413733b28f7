package events

import (
	"fmt"
	"io"
	"strings"
)

// SSEEvent represents a Server-Sent Event.
// Event maps to the "event:" field and Data to one or more "data:" lines.
type SSEEvent struct {
	ID    string
	Event string
	Data  string
}

// NewSSEEvent creates a new SSEEvent of the given type.
func NewSSEEvent(event, data string) SSEEvent {
	return SSEEvent{Event: event, Data: data}
}

// WriteTo encodes e in the text/event-stream format.
func (e SSEEvent) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	if e.ID != "" {
		fmt.Fprintf(&b, "id: %s\n", e.ID)
	}
	if e.Event != "" {
		fmt.Fprintf(&b, "event: %s\n", e.Event)
	}
	// Multi-line payloads need one data: line per line.
	for _, line := range strings.Split(e.Data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
