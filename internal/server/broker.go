package server

import (
	"encoding/json"
	"sync"
)

// Event is the envelope pushed to clients over SSE and the websocket
// channel. PlayerID names the recipient: the broker only delivers an event
// to that player's subscriptions, which is what keeps hands and checklists
// confidential per recipient.
type Event struct {
	PlayerID string `json:"playerId"`
	Event    string `json:"event"`
	Payload  any    `json:"payload"`
}

// Broker is an in-process pub/sub for game events, keyed by game and
// recipient player.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

func subKey(gameID, playerID string) string {
	return gameID + "/" + playerID
}

// Subscribe returns a channel receiving the JSON-encoded events addressed
// to the given player in the given game.
func (b *Broker) Subscribe(gameID, playerID string) chan []byte {
	ch := make(chan []byte, 16)
	key := subKey(gameID, playerID)
	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[chan []byte]struct{})
	}
	b.subs[key][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the player's subscribers.
func (b *Broker) Unsubscribe(gameID, playerID string, ch chan []byte) {
	key := subKey(gameID, playerID)
	b.mu.Lock()
	delete(b.subs[key], ch)
	if len(b.subs[key]) == 0 {
		delete(b.subs, key)
	}
	b.mu.Unlock()
}

// Publish delivers an event to every subscription of its recipient.
func (b *Broker) Publish(gameID string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[subKey(gameID, event.PlayerID)] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
