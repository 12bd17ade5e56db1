// Package spectate streams live game snapshots to remote viewers over
// HTTP and WebSocket.
package spectate

import (
	"sync"

	"github.com/vovakirdan/noseas/internal/games/noseas"
)

// subscriberBuffer is the per-viewer queue length. A viewer that falls this
// far behind misses frames.
const subscriberBuffer = 16

// Hub fans snapshots out to subscribers. Publish never blocks.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan noseas.Snapshot
	latest      *noseas.Snapshot
	dropped     uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan noseas.Snapshot),
	}
}

// Subscribe registers id and returns its frame channel. Subscribing an id
// twice closes the older channel.
func (h *Hub) Subscribe(id string) <-chan noseas.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subscribers[id]; ok {
		close(old)
	}
	ch := make(chan noseas.Snapshot, subscriberBuffer)
	h.subscribers[id] = ch
	return ch
}

// Unsubscribe removes id and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Publish records snap as the latest frame and offers it to every
// subscriber. Full subscribers drop the frame.
func (h *Hub) Publish(snap noseas.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = &snap
	for _, ch := range h.subscribers {
		select {
		case ch <- snap:
		default:
			h.dropped++
		}
	}
}

// Latest returns the most recent snapshot, if any was published.
func (h *Hub) Latest() (noseas.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.latest == nil {
		return noseas.Snapshot{}, false
	}
	return *h.latest, true
}

// SubscriberCount returns the number of connected viewers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped returns how many frames were discarded for slow viewers.
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}
