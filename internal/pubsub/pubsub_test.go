package pubsub

import (
	"sync"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	ps := New()
	if ps == nil {
		t.Fatal("New() returned nil")
	}
	if ps.subscribers == nil {
		t.Error("subscribers slice should be initialized")
	}
	if ps.upstream != nil {
		t.Error("upstream should be nil for basic PubSub")
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	ps := New()

	ch1 := ps.Subscribe()
	ch2 := ps.Subscribe()
	if ch1 == nil || ch2 == nil {
		t.Fatal("Subscribe() returned nil channel")
	}

	ps.mu.RLock()
	count := len(ps.subscribers)
	ps.mu.RUnlock()
	if count != 2 {
		t.Errorf("expected 2 subscribers, got %d", count)
	}

	ps.Unsubscribe(ch1)

	ps.mu.RLock()
	count = len(ps.subscribers)
	ps.mu.RUnlock()
	if count != 1 {
		t.Errorf("expected 1 subscriber after unsubscribe, got %d", count)
	}

	// The removed channel must be closed
	select {
	case _, ok := <-ch1:
		if ok {
			t.Error("channel should be closed after unsubscribe")
		}
	default:
		t.Error("channel should be closed and readable")
	}
}

func TestPublishFanOut(t *testing.T) {
	ps := New()

	ch1 := ps.Subscribe()
	ch2 := ps.Subscribe()

	ps.Publish(Event{Type: "inquiry:new", Payload: map[string]interface{}{"experienceId": "3"}})

	for i, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Type != "inquiry:new" {
				t.Errorf("subscriber %d: type = %q, want inquiry:new", i+1, ev.Type)
			}
			if ev.Payload["experienceId"] != "3" {
				t.Errorf("subscriber %d: payload = %v", i+1, ev.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d did not receive event", i+1)
		}
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	ps := New()

	// Should not panic
	ps.Publish(Event{Type: "popularity:update"})
}

func TestPublishSkipsFullChannel(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()

	// Fill the buffered channel beyond capacity; Publish must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			ps.Publish(Event{Type: "game:answer"})
		}
		close(done)
	}()

	select {
	case <-done:
		// ok
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber channel")
	}

	// Drain whatever was buffered
	for len(ch) > 0 {
		<-ch
	}
}

func TestConcurrentPublishSubscribe(t *testing.T) {
	ps := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := ps.Subscribe()
			ps.Publish(Event{Type: "game:select"})
			ps.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	ps.mu.RLock()
	count := len(ps.subscribers)
	ps.mu.RUnlock()
	if count != 0 {
		t.Errorf("expected 0 subscribers after all unsubscribed, got %d", count)
	}
}

func TestMockNATSRoundTrip(t *testing.T) {
	mock, err := NewMockNATSPubSub("nats://unused:4222", "manch.events")
	if err != nil {
		t.Fatalf("NewMockNATSPubSub() failed: %v", err)
	}
	defer mock.Close()

	ps := NewWithUpstream(mock)
	ch := ps.Subscribe()

	ps.Publish(Event{Type: "inquiry:new"})

	select {
	case ev := <-ch:
		if ev.Type != "inquiry:new" {
			t.Errorf("type = %q, want inquiry:new", ev.Type)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("event was not forwarded through the upstream bridge")
	}

	if mock.GetMessageCount() != 1 {
		t.Errorf("stored messages = %d, want 1", mock.GetMessageCount())
	}
}

func TestMockNATSReplay(t *testing.T) {
	mock, _ := NewMockNATSPubSub("", "manch.events")
	defer mock.Close()

	for i := 0; i < 5; i++ {
		mock.Publish(Event{Type: "popularity:update"})
	}

	ch := make(chan Event, 10)
	mock.ReplayMessages(ch, 3)

	if got := len(ch); got != 3 {
		t.Errorf("replayed %d messages, want 3", got)
	}
}
