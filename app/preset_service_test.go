package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelscope/adapters/kv"
	"panelscope/domain/preset"
	"panelscope/internal/errors"
	"panelscope/internal/logger"
)

func newPresetService() *PresetService {
	return NewPresetService(kv.NewMemory(), NewHub(), logger.Nop())
}

func TestPresetAdd_AssignsIDAndPrepends(t *testing.T) {
	svc := newPresetService()
	ctx := context.Background()

	first := svc.Add(ctx, "첫번째", preset.Filters{Regions: []string{"서울"}}, preset.ScopePersonal)
	second := svc.Add(ctx, "두번째", preset.Filters{QuickpollOnly: true}, preset.ScopeTeam)

	assert.True(t, strings.HasPrefix(first.ID.String(), "preset-"))
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Timestamp.IsZero())

	got := svc.Load(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest preset is prepended")
	assert.Equal(t, first.ID, got[1].ID)
}

func TestPresetLoadSaveRoundTrip(t *testing.T) {
	svc := newPresetService()
	ctx := context.Background()

	age := [2]int{20, 39}
	svc.Add(ctx, "타겟", preset.Filters{
		Genders:        []string{"F"},
		AgeRange:       &age,
		IncomeBrackets: []string{"400-600"},
		Interests:      []string{"뷰티", "여행"},
		Extra:          map[string]any{"panel_grade": "gold"},
	}, preset.ScopePersonal)

	got := svc.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"F"}, got[0].Filters.Genders)
	assert.Equal(t, &age, got[0].Filters.AgeRange)
	assert.Equal(t, "gold", got[0].Filters.Extra["panel_grade"],
		"unknown filter dimensions round-trip through Extra")
}

func TestPresetUpdate(t *testing.T) {
	svc := newPresetService()
	ctx := context.Background()

	p := svc.Add(ctx, "원래 이름", preset.Filters{}, preset.ScopePersonal)
	before := p.Timestamp
	time.Sleep(2 * time.Millisecond) // timestamps are millisecond-grained

	name := "바뀐 이름"
	scope := preset.ScopeTeam
	updated, err := svc.Update(ctx, p.ID, preset.Update{Name: &name, Scope: &scope})
	require.NoError(t, err)

	assert.Equal(t, "바뀐 이름", updated.Name)
	assert.Equal(t, preset.ScopeTeam, updated.Scope)
	assert.True(t, updated.Timestamp.After(before), "update refreshes the timestamp")

	got := svc.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, updated, got[0], "load after update reflects the update exactly")
}

func TestPresetUpdate_NotFound(t *testing.T) {
	svc := newPresetService()

	_, err := svc.Update(context.Background(), "preset-0-missing", preset.Update{})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "missing id is a NOT_FOUND signal, not a panic")
}

func TestPresetRemove(t *testing.T) {
	svc := newPresetService()
	ctx := context.Background()

	p := svc.Add(ctx, "삭제 대상", preset.Filters{}, preset.ScopePersonal)
	keep := svc.Add(ctx, "유지", preset.Filters{}, preset.ScopePersonal)

	got := svc.Remove(ctx, p.ID)
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)

	got = svc.Remove(ctx, "preset-0-ghost") // unknown id is a no-op
	require.Len(t, got, 1)
}

func TestPresetGetByScope(t *testing.T) {
	svc := newPresetService()
	ctx := context.Background()

	svc.Add(ctx, "개인1", preset.Filters{}, preset.ScopePersonal)
	svc.Add(ctx, "팀1", preset.Filters{}, preset.ScopeTeam)
	svc.Add(ctx, "개인2", preset.Filters{}, preset.ScopePersonal)

	personal := svc.GetByScope(ctx, preset.ScopePersonal)
	require.Len(t, personal, 2, "result size equals personal-scope count")
	for _, p := range personal {
		assert.Equal(t, preset.ScopePersonal, p.Scope)
	}
	for i := 1; i < len(personal); i++ {
		assert.True(t, !personal[i].Timestamp.After(personal[i-1].Timestamp),
			"scope query is timestamp-descending")
	}
}
