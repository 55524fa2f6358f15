// Package notify provides an in-process publish/subscribe bus for
// session-related signals. The CMS client publishes TopicAuthError when any
// request comes back 401; an explicit logout publishes TopicSessionEnded.
// Subscribers (the session manager, UI adapters) react without the publisher
// knowing about them.
package notify

import (
	"sync"
	"time"
)

const (
	// TopicAuthError is published by the HTTP layer when the content API
	// rejects a request with 401.
	TopicAuthError = "auth.error"
	// TopicSessionEnded is published on explicit logout.
	TopicSessionEnded = "session.ended"
)

// Event describes a published signal.
type Event struct {
	Topic string
	At    time.Time
}

// Handler receives events for a subscribed topic. Handlers run synchronously
// on the publisher's goroutine and must not block.
type Handler func(Event)

// Bus is a topic-keyed registry of handlers. The zero value is not usable;
// construct with NewBus.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]Handler)}
}

// Subscribe registers fn for topic and returns a cancel function that
// removes the subscription.
func (b *Bus) Subscribe(topic string, fn Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	b.subs[topic][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish delivers the event to every handler subscribed to topic.
func (b *Bus) Publish(topic string) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	ev := Event{Topic: topic, At: time.Now().UTC()}
	for _, fn := range handlers {
		fn(ev)
	}
}
