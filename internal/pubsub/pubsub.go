package pubsub

import (
	"sync"

	"github.com/adityarawat/manch-ui/internal/logger"
)

// Event is a single pubsub event delivered to stream subscribers
type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Upstream is an interface for upstream publishers (e.g., NATS)
type Upstream interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// PubSub implements a simple publish-subscribe system for in-process fan-out
type PubSub struct {
	mu          sync.RWMutex
	subscribers []chan Event
	upstream    Upstream
}

// New creates a new PubSub instance without an upstream
func New() *PubSub {
	return &PubSub{
		subscribers: []chan Event{},
	}
}

// NewWithUpstream creates a PubSub that bridges to an upstream publisher.
// Publish sends events to the upstream, which broadcasts to every instance;
// events arriving from the upstream are forwarded to local subscribers.
func NewWithUpstream(upstream Upstream) *PubSub {
	ps := &PubSub{
		subscribers: []chan Event{},
		upstream:    upstream,
	}

	go func() {
		ch := upstream.Subscribe()
		logger.Debug("PubSub: subscribed to upstream, waiting for events")
		for event := range ch {
			logger.Debug("PubSub: forwarding upstream event to local", "type", event.Type)
			ps.publishLocal(event)
		}
		logger.Debug("PubSub: upstream channel closed")
	}()

	return ps
}

// Subscribe adds a new subscriber and returns a channel for receiving events
func (ps *PubSub) Subscribe() chan Event {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan Event, 10)
	ps.subscribers = append(ps.subscribers, ch)
	logger.Debug("PubSub: new subscriber added", "totalSubscribers", len(ps.subscribers))
	return ch
}

// Unsubscribe removes a subscriber and closes its channel
func (ps *PubSub) Unsubscribe(ch chan Event) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i, sub := range ps.subscribers {
		if sub == ch {
			close(ch)
			ps.subscribers = append(ps.subscribers[:i], ps.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers. With an upstream configured the
// event goes to the upstream first, which broadcasts it back to all instances
// including this one.
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		logger.Debug("PubSub: forwarding to upstream", "type", event.Type)
		ps.upstream.Publish(event)
	} else {
		ps.publishLocal(event)
	}
}

func (ps *PubSub) publishLocal(event Event) {
	ps.mu.RLock()
	subs := make([]chan Event, len(ps.subscribers))
	copy(subs, ps.subscribers)
	ps.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
			// Skip if channel is full
		}
	}
}
