package app

import (
	"sync"

	"panelscope/ports"
)

// Collection names published on store writes.
const (
	CollectionBookmarks = "bookmarks"
	CollectionPresets   = "presets"
)

// Hub is the in-process change notifier: stores publish on write,
// interested views subscribe. Slow subscribers drop notifications instead
// of blocking writers; a change notice carries no payload, so a dropped one
// is recovered by the next Load anyway.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan ports.Change]bool
}

// NewHub creates an empty notifier hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan ports.Change]bool)}
}

func (h *Hub) Publish(change ports.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

func (h *Hub) Subscribe() (<-chan ports.Change, func()) {
	ch := make(chan ports.Change, 16)

	h.mu.Lock()
	h.subs[ch] = true
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if h.subs[ch] {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}
