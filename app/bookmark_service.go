package app

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"panelscope/domain/bookmark"
	"panelscope/domain/core"
	"panelscope/ports"
)

// BookmarkKey is the fixed KV key of the bookmark collection blob.
const BookmarkKey = "panel_bookmarks"

// BookmarkService owns the bookmark collection. Every operation is a full
// synchronous read-modify-write of the blob, so a Load after any write
// reflects it exactly; concurrent callers interleave at whole-collection
// granularity (last writer wins, accepted limitation).
//
// Storage failures never reach the caller: a failed read reads as empty, a
// failed write leaves the caller's in-memory view ahead of storage until the
// next successful write. Both are logged.
type BookmarkService struct {
	store    ports.KV
	notifier ports.Notifier
	log      *zap.Logger
}

// NewBookmarkService creates the bookmark store service. notifier may be
// nil when no one listens for changes.
func NewBookmarkService(store ports.KV, notifier ports.Notifier, log *zap.Logger) *BookmarkService {
	return &BookmarkService{store: store, notifier: notifier, log: log}
}

// Load returns the current collection. Absent or corrupt blobs yield an
// empty list; the failure is logged for diagnostics only.
func (s *BookmarkService) Load(ctx context.Context) []bookmark.Bookmark {
	blob, ok, err := s.store.Get(ctx, BookmarkKey)
	if err != nil {
		s.log.Warn("bookmark load failed, treating as empty", zap.Error(err))
		return []bookmark.Bookmark{}
	}
	if !ok {
		return []bookmark.Bookmark{}
	}

	var list []bookmark.Bookmark
	if err := json.Unmarshal(blob, &list); err != nil {
		s.log.Warn("bookmark blob is corrupt, treating as empty", zap.Error(err))
		return []bookmark.Bookmark{}
	}
	return list
}

// Save overwrites the collection blob. Failures are logged, not returned.
func (s *BookmarkService) Save(ctx context.Context, list []bookmark.Bookmark) {
	blob, err := json.Marshal(list)
	if err != nil {
		s.log.Error("bookmark serialization failed", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, BookmarkKey, blob); err != nil {
		s.log.Error("bookmark save failed", zap.Error(err))
		return
	}
	s.publish()
}

// Add upserts by panel id: an existing bookmark for the same panel is
// replaced in place, and the collection is re-sorted newest-first.
func (s *BookmarkService) Add(ctx context.Context, b bookmark.Bookmark) []bookmark.Bookmark {
	if b.Timestamp.IsZero() {
		b.Timestamp = core.Now()
	}
	list := bookmark.Upsert(s.Load(ctx), b)
	s.Save(ctx, list)
	return list
}

// Remove drops the bookmark for the given panel. Unknown ids are a no-op.
func (s *BookmarkService) Remove(ctx context.Context, panelID core.PanelID) []bookmark.Bookmark {
	list := bookmark.Remove(s.Load(ctx), panelID)
	s.Save(ctx, list)
	return list
}

// ClearAll deletes the entire blob.
func (s *BookmarkService) ClearAll(ctx context.Context) {
	if err := s.store.Delete(ctx, BookmarkKey); err != nil {
		s.log.Error("bookmark clear failed", zap.Error(err))
		return
	}
	s.publish()
}

func (s *BookmarkService) publish() {
	if s.notifier != nil {
		s.notifier.Publish(ports.Change{Collection: CollectionBookmarks})
	}
}
