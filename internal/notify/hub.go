package notify

import (
	"sync"
	"time"
)

// Toast is a transient, auto-dismissing notification pushed to whichever
// sessions are listening at the moment it is published. Nothing is stored or
// replayed.
type Toast struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Hub fans toasts out to all current subscribers. Sends never block: a
// subscriber that cannot keep up loses toasts instead of stalling the
// publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Toast]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Toast]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called on
// teardown; it is idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan Toast, func()) {
	ch := make(chan Toast, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (h *Hub) Publish(t Toast) {
	if t.At.IsZero() {
		t.At = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- t:
		default:
		}
	}
}

// Success publishes a success-level toast. This is the only level the AI
// generator emits; its failures stay in the logs.
func (h *Hub) Success(message string) {
	h.Publish(Toast{Level: "success", Message: message})
}
