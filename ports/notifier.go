package ports

// Change announces that a persisted collection was written.
type Change struct {
	Collection string `json:"collection"` // "bookmarks" or "presets"
}

// Notifier is the explicit change-notification channel between stores and
// their consumers: stores publish on write, views subscribe instead of
// polling. Polling remains available as a fallback for engines without
// cross-process notifications (see app.Watcher).
type Notifier interface {
	// Publish announces a write to the named collection. Never blocks on
	// slow subscribers.
	Publish(change Change)

	// Subscribe returns a channel of future changes and a cancel func that
	// releases the subscription.
	Subscribe() (<-chan Change, func())
}
