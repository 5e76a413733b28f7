package events

import (
	"context"
	"io"
	"net/http"
	"time"
)

// HeartbeatInterval is how often an idle stream receives a comment line to keep
// proxies from closing it.
const HeartbeatInterval = 25 * time.Second

// ServeTopic streams events published on topic to the client until the request
// context ends, the broadcaster closes, or MaxStreamDuration elapses. The stream
// starts with an "open" event. It owns its lifetime: the route must not sit behind a
// middleware that writes its own response on timeout.
func (b *Broadcaster) ServeTopic(w http.ResponseWriter, r *http.Request, topic string) {
	maxDuration := b.MaxStreamDuration
	if maxDuration <= 0 {
		maxDuration = DefaultMaxStreamDuration
	}
	ctx, cancel := context.WithTimeout(r.Context(), maxDuration)
	defer cancel()

	rc := http.NewResponseController(w)
	// Lift the server-wide write timeout for this connection. Writers without deadline
	// support (httptest) report ErrNotSupported, which is fine.
	_ = rc.SetWriteDeadline(time.Now().Add(maxDuration + HeartbeatInterval))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	clientID, ch := b.Subscribe(topic)
	defer b.Unsubscribe(clientID)

	if _, err := NewSSEEvent("open", clientID).WriteTo(w); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		return
	}

	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if _, err := ev.WriteTo(w); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
