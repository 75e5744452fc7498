package server

import (
	"encoding/json"
	"testing"
)

func TestBrokerScopesByRecipient(t *testing.T) {
	b := NewBroker()

	alice := b.Subscribe("g1", "alice")
	bob := b.Subscribe("g1", "bob")
	other := b.Subscribe("g2", "alice")
	defer b.Unsubscribe("g1", "alice", alice)
	defer b.Unsubscribe("g1", "bob", bob)
	defer b.Unsubscribe("g2", "alice", other)

	b.Publish("g1", Event{PlayerID: "alice", Event: "state", Payload: "secret"})

	select {
	case data := <-alice:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.PlayerID != "alice" || ev.Event != "state" {
			t.Errorf("event = %+v, want alice/state", ev)
		}
	default:
		t.Fatal("recipient did not receive the event")
	}

	select {
	case <-bob:
		t.Fatal("event leaked to another player")
	default:
	}
	select {
	case <-other:
		t.Fatal("event leaked to another game")
	default:
	}
}

func TestBrokerDropsWhenSubscriberStalls(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("g1", "alice")
	defer b.Unsubscribe("g1", "alice", ch)

	// Fill the buffer and then some. Publish must never block.
	for range 40 {
		b.Publish("g1", Event{PlayerID: "alice", Event: "state"})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want full buffer of %d", got, cap(ch))
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("g1", "alice")
	b.Unsubscribe("g1", "alice", ch)

	b.Publish("g1", Event{PlayerID: "alice", Event: "state"})
	if got := len(ch); got != 0 {
		t.Errorf("received %d events after unsubscribe", got)
	}
}
