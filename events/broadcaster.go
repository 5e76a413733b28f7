// Package events fans out real-time notifications to Server-Sent Events subscribers.
// Subscribers listen on a topic (for comments, the post id). Publishing never blocks:
// a subscriber whose buffer is full misses the event.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// clientBuffer is the number of undelivered events a subscriber may hold.
const clientBuffer = 32

// DefaultMaxStreamDuration bounds a stream when MaxStreamDuration is not set.
const DefaultMaxStreamDuration = 30 * time.Minute

type clientInfo struct {
	topic      string
	sseChannel chan SSEEvent
}

// Broadcaster manages SSE clients and message broadcasting.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[string]*clientInfo
	// topics indexes client ids by topic.
	topics map[string]map[string]struct{}
	log    logrus.FieldLogger

	// MaxStreamDuration ends a stream after this long; clients reconnect.
	MaxStreamDuration time.Duration
}

// NewBroadcaster creates and returns a new Broadcaster instance.
func NewBroadcaster(log logrus.FieldLogger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[string]*clientInfo),
		topics:  make(map[string]map[string]struct{}),
		log:     log,

		MaxStreamDuration: DefaultMaxStreamDuration,
	}
}

// Subscribe registers a new client on topic and returns its ID and event channel.
// The channel is closed by Unsubscribe.
func (b *Broadcaster) Subscribe(topic string) (string, <-chan SSEEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clientID := uuid.New().String()
	ci := &clientInfo{topic: topic, sseChannel: make(chan SSEEvent, clientBuffer)}
	b.clients[clientID] = ci
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[string]struct{})
	}
	b.topics[topic][clientID] = struct{}{}

	b.log.WithFields(logrus.Fields{"client_id": clientID, "topic": topic}).Debug("sse client subscribed")
	return clientID, ci.sseChannel
}

// Unsubscribe removes a client and closes its channel. Unknown ids are ignored.
func (b *Broadcaster) Unsubscribe(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ci, ok := b.clients[clientID]
	if !ok {
		return
	}
	close(ci.sseChannel)
	delete(b.clients, clientID)
	if subs := b.topics[ci.topic]; subs != nil {
		delete(subs, clientID)
		if len(subs) == 0 {
			delete(b.topics, ci.topic)
		}
	}
	b.log.WithField("client_id", clientID).Debug("sse client removed")
}

// Publish sends event to every subscriber of topic and reports how many received it.
func (b *Broadcaster) Publish(topic string, event SSEEvent) int {
	// The read lock is held while sending so Unsubscribe cannot close a channel mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for clientID := range b.topics[topic] {
		select {
		case b.clients[clientID].sseChannel <- event:
			delivered++
		default:
			b.log.WithFields(logrus.Fields{"client_id": clientID, "topic": topic}).Warn("sse client buffer full, dropping event")
		}
	}
	return delivered
}

// Subscribers returns the number of clients listening on topic.
func (b *Broadcaster) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

// Close disconnects every subscriber. Open streams see their channel closed and
// return, which lets a graceful server shutdown finish.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ci := range b.clients {
		close(ci.sseChannel)
	}
	b.log.WithField("clients", len(b.clients)).Info("sse broadcaster closed")
	b.clients = make(map[string]*clientInfo)
	b.topics = make(map[string]map[string]struct{})
}
