package ports

import (
	"context"

	"panelscope/domain/bookmark"
	"panelscope/domain/core"
	"panelscope/domain/preset"
)

// BookmarkStore is the bookmark collection contract. Every operation is a
// complete synchronous read-modify-write of the blob; Load after any write
// reflects that write exactly. Load and write failures degrade to "looks
// empty" / "state unchanged" and are logged, never returned to the UI path.
type BookmarkStore interface {
	// Load returns the current collection, newest-first. Absent or corrupt
	// blobs yield an empty list.
	Load(ctx context.Context) []bookmark.Bookmark

	// Add upserts by panel id and re-sorts newest-first, returning the
	// resulting collection.
	Add(ctx context.Context, b bookmark.Bookmark) []bookmark.Bookmark

	// Remove drops the bookmark for the given panel, returning the
	// resulting collection. Unknown ids are a no-op.
	Remove(ctx context.Context, panelID core.PanelID) []bookmark.Bookmark

	// ClearAll deletes the entire blob.
	ClearAll(ctx context.Context)
}

// PresetStore is the filter-preset collection contract.
type PresetStore interface {
	// Load returns the collection in stored order (newest prepended on add).
	Load(ctx context.Context) []preset.Preset

	// Add assigns a fresh id and timestamp, prepends the preset, and
	// returns the stored record.
	Add(ctx context.Context, name string, filters preset.Filters, scope preset.Scope) preset.Preset

	// Update merges partial fields into the preset with the given id and
	// refreshes its timestamp. Returns a NOT_FOUND error when the id is
	// absent; nothing panics.
	Update(ctx context.Context, id core.PresetID, u preset.Update) (preset.Preset, error)

	// Remove drops the preset with the given id, returning the resulting
	// collection. Unknown ids are a no-op.
	Remove(ctx context.Context, id core.PresetID) []preset.Preset

	// GetByScope returns presets with the given scope, timestamp-descending.
	GetByScope(ctx context.Context, scope preset.Scope) []preset.Preset
}
