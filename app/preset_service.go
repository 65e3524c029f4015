package app

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"panelscope/domain/core"
	"panelscope/domain/preset"
	"panelscope/internal/errors"
	"panelscope/ports"
)

// PresetKey is the fixed KV key of the filter-preset collection blob.
const PresetKey = "filter_presets"

// PresetService owns the filter-preset collection. Same storage semantics
// as BookmarkService: whole-blob read-modify-write, failures degrade to
// "looks empty" or "state unchanged" and are logged.
type PresetService struct {
	store    ports.KV
	notifier ports.Notifier
	log      *zap.Logger
}

// NewPresetService creates the preset store service.
func NewPresetService(store ports.KV, notifier ports.Notifier, log *zap.Logger) *PresetService {
	return &PresetService{store: store, notifier: notifier, log: log}
}

// Load returns the collection in stored order: newest entries were
// prepended on add, so no re-sort happens here.
func (s *PresetService) Load(ctx context.Context) []preset.Preset {
	blob, ok, err := s.store.Get(ctx, PresetKey)
	if err != nil {
		s.log.Warn("preset load failed, treating as empty", zap.Error(err))
		return []preset.Preset{}
	}
	if !ok {
		return []preset.Preset{}
	}

	var list []preset.Preset
	if err := json.Unmarshal(blob, &list); err != nil {
		s.log.Warn("preset blob is corrupt, treating as empty", zap.Error(err))
		return []preset.Preset{}
	}
	return list
}

// Save overwrites the collection blob. Failures are logged, not returned.
func (s *PresetService) Save(ctx context.Context, list []preset.Preset) {
	blob, err := json.Marshal(list)
	if err != nil {
		s.log.Error("preset serialization failed", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, PresetKey, blob); err != nil {
		s.log.Error("preset save failed", zap.Error(err))
		return
	}
	s.publish()
}

// Add assigns a fresh id and timestamp and prepends the preset; existing
// entries keep their order.
func (s *PresetService) Add(ctx context.Context, name string, filters preset.Filters, scope preset.Scope) preset.Preset {
	now := core.Now()
	p := preset.Preset{
		ID:        core.NewPresetID(now),
		Name:      name,
		Filters:   filters,
		Timestamp: now,
		Scope:     scope,
	}

	list := append([]preset.Preset{p}, s.Load(ctx)...)
	s.Save(ctx, list)
	return p
}

// Update merges partial fields into the preset with the given id and
// refreshes its timestamp. Returns a NOT_FOUND error when the id is absent.
func (s *PresetService) Update(ctx context.Context, id core.PresetID, u preset.Update) (preset.Preset, error) {
	list := s.Load(ctx)
	for i, p := range list {
		if p.ID != id {
			continue
		}
		updated := u.Apply(p)
		updated.Timestamp = core.Now()
		list[i] = updated
		s.Save(ctx, list)
		return updated, nil
	}
	return preset.Preset{}, errors.NotFound("preset " + id.String())
}

// Remove drops the preset with the given id, returning the resulting
// collection. Unknown ids are a no-op.
func (s *PresetService) Remove(ctx context.Context, id core.PresetID) []preset.Preset {
	list := s.Load(ctx)
	out := make([]preset.Preset, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.Save(ctx, out)
	return out
}

// GetByScope returns presets with the given scope, timestamp-descending.
func (s *PresetService) GetByScope(ctx context.Context, scope preset.Scope) []preset.Preset {
	return preset.FilterByScope(s.Load(ctx), scope)
}

func (s *PresetService) publish() {
	if s.notifier != nil {
		s.notifier.Publish(ports.Change{Collection: CollectionPresets})
	}
}
