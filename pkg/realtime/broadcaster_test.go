package realtime

import (
	"testing"
)

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster returned nil")
	}
}

func TestBroadcaster_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Name: "state"})
	got := <-ch
	if got.Name != "state" {
		t.Errorf("got event %q, want %q", got.Name, "state")
	}
}

func TestBroadcaster_PublishCarriesPayload(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Name: "outcome", Payload: 42})
	got := <-ch
	if v, ok := got.Payload.(int); !ok || v != 42 {
		t.Errorf("payload %v, want 42", got.Payload)
	}
}

func TestBroadcaster_PublishDeliversToMultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish(Event{Name: "state"})
	if got := <-ch1; got.Name != "state" {
		t.Errorf("ch1 got %q, want state", got.Name)
	}
	if got := <-ch2; got.Name != "state" {
		t.Errorf("ch2 got %q, want state", got.Name)
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	_, open := <-ch
	if open {
		t.Error("channel should be closed after Unsubscribe")
	}
}

func TestBroadcaster_CloseEndsSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Close()
	if _, open := <-ch; open {
		t.Error("channel should be closed after Close")
	}
	// Unsubscribe after Close must not double-close.
	b.Unsubscribe(ch)

	late := b.Subscribe()
	if _, open := <-late; open {
		t.Error("subscribing to a closed broadcaster should yield a closed channel")
	}
}
