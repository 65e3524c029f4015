package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelscope/adapters/kv"
	"panelscope/internal/logger"
	"panelscope/ports"
)

func TestWatcherDetectsExternalWrite(t *testing.T) {
	engine := kv.NewMemory()
	hub := NewHub()
	watcher := NewWatcher(engine, hub, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, unsub := hub.Subscribe()
	defer unsub()

	go watcher.Run(ctx)
	time.Sleep(30 * time.Millisecond) // let the seed pass complete

	// Simulate another process writing the bookmark blob directly.
	require.NoError(t, engine.Set(context.Background(), BookmarkKey, []byte(`[{"panelId":"p1"}]`)))

	select {
	case change := <-ch:
		assert.Equal(t, CollectionBookmarks, change.Collection)
	case <-time.After(time.Second):
		t.Fatal("watcher did not announce the external write")
	}
}

func TestWatcherSeedDoesNotAnnounce(t *testing.T) {
	engine := kv.NewMemory()
	require.NoError(t, engine.Set(context.Background(), PresetKey, []byte(`[]`)))

	hub := NewHub()
	watcher := NewWatcher(engine, hub, 10*time.Millisecond, logger.Nop())

	ch, unsub := hub.Subscribe()
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	go watcher.Run(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case change := <-ch:
		t.Fatalf("startup must not announce pre-existing blobs, got %v", change)
	default:
	}
}

func TestWatcherRunReturnsCanceledOnShutdown(t *testing.T) {
	// Callers running the watcher in an errgroup treat context.Canceled as
	// a clean exit; Run must not wrap or replace it.
	watcher := NewWatcher(kv.NewMemory(), NewHub(), 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	// Publish far past the channel buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(ports.Change{Collection: CollectionPresets})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	assert.NotEmpty(t, ch)
}

func TestHubCancelIsIdempotent(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	cancel()
	cancel() // second cancel must not panic on a closed channel

	hub.Publish(ports.Change{Collection: CollectionBookmarks}) // no live subscribers
}
