package app

import (
	"context"
	"crypto/sha256"
	"time"

	"go.uber.org/zap"

	"panelscope/ports"
)

// Watcher is the polling fallback for change detection. The primary path is
// publish-on-write through the Hub; that only covers writes made by this
// process. When the KV engine is shared (another instance writing the same
// file or redis keys), the watcher re-reads the blobs on a fixed interval
// and publishes when a digest changes.
//
// This is an explicit, configured choice, not an implicit timer buried in a
// view component.
type Watcher struct {
	store    ports.KV
	notifier ports.Notifier
	interval time.Duration
	log      *zap.Logger

	digests map[string][32]byte
}

// Watched collection keys, mapped to the collection name they announce.
var watchedKeys = map[string]string{
	BookmarkKey: CollectionBookmarks,
	PresetKey:   CollectionPresets,
}

// NewWatcher creates a watcher polling at the given interval.
func NewWatcher(store ports.KV, notifier ports.Notifier, interval time.Duration, log *zap.Logger) *Watcher {
	return &Watcher{
		store:    store,
		notifier: notifier,
		interval: interval,
		log:      log,
		digests:  make(map[string][32]byte),
	}
}

// Run polls until ctx is cancelled. The first pass seeds the digests
// without publishing, so startup does not announce a phantom change.
func (w *Watcher) Run(ctx context.Context) error {
	w.sweep(ctx, false)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx, true)
		}
	}
}

func (w *Watcher) sweep(ctx context.Context, announce bool) {
	for key, collection := range watchedKeys {
		blob, ok, err := w.store.Get(ctx, key)
		if err != nil {
			w.log.Warn("watcher read failed", zap.String("key", key), zap.Error(err))
			continue
		}
		var digest [32]byte
		if ok {
			digest = sha256.Sum256(blob)
		}
		if prev := w.digests[key]; prev != digest {
			w.digests[key] = digest
			if announce {
				w.notifier.Publish(ports.Change{Collection: collection})
			}
		}
	}
}
