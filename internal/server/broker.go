package server

import (
	"encoding/json"
	"sync"
)

// ChangeEvent notifies an open dashboard that an entity collection
// changed so it can refresh. This is a single-workspace UI feed, not a
// multi-user sync channel.
type ChangeEvent struct {
	Entity string `json:"entity"` // lists, trips, comments, ...
	Action string `json:"action"` // created, updated, deleted
	ID     string `json:"id,omitempty"`
}

// Broker is an in-process pub/sub for change events, keyed by workspace.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded change events
// for the given workspace.
func (b *Broker) Subscribe(workspace string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[workspace] == nil {
		b.subs[workspace] = make(map[chan []byte]struct{})
	}
	b.subs[workspace][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the workspace's subscribers.
func (b *Broker) Unsubscribe(workspace string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[workspace], ch)
	if len(b.subs[workspace]) == 0 {
		delete(b.subs, workspace)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given workspace.
func (b *Broker) Publish(workspace string, event ChangeEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[workspace] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
