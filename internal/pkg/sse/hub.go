package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers of one import
type Event struct {
	ImportID string
	Event    string
	Data     interface{}
}

// Hub fans import progress out to SSE subscribers, keyed by import ID.
// A subscriber attaches before uploading and detaches when the stream
// request ends; publishing to an import nobody watches is a no-op.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for an import and returns the event
// channel and a cleanup function.
func (h *Hub) Subscribe(importID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[importID] == nil {
		h.subscribers[importID] = make(map[chan Event]struct{})
	}
	h.subscribers[importID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[importID], ch)
		close(ch)
		if len(h.subscribers[importID]) == 0 {
			delete(h.subscribers, importID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of one import
func (h *Hub) Publish(importID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[importID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for an import
func (h *Hub) SubscriberCount(importID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[importID]; ok {
		return len(subs)
	}
	return 0
}
