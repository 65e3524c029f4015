package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelscope/adapters/kv"
	"panelscope/app"
	"panelscope/domain/compare"
	"panelscope/domain/preset"
	"panelscope/internal/logger"
)

func newTestApp() *App {
	hub := app.NewHub()
	engine := kv.NewMemory()
	log := logger.Nop()
	return NewApp(Deps{
		Charts:    app.NewChartService(),
		Bookmarks: app.NewBookmarkService(engine, hub, log),
		Presets:   app.NewPresetService(engine, hub, log),
		Notifier:  hub,
		Log:       log,
	})
}

func doJSON(t *testing.T, a *App, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestChartEndpoint(t *testing.T) {
	a := newTestApp()
	absDiff := 30.0
	body := chartRequestBody{Records: []compare.Record{
		{Feature: "A", Type: compare.TypeBinary, GroupARatio: 0.1, GroupBRatio: 0.4,
			LiftPct: 300, PValue: 0.01, Significant: true, AbsDiffPct: &absDiff},
		{Feature: "B", Type: compare.TypeBinary, GroupARatio: 0.5, GroupBRatio: 0.52,
			LiftPct: 4, PValue: 0.8},
	}}

	rec := doJSON(t, a, http.MethodPost, "/api/charts/heatmap", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp chartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "A", resp.Records[0].Feature.String())
}

func TestChartEndpoint_UnknownKind(t *testing.T) {
	a := newTestApp()
	rec := doJSON(t, a, http.MethodPost, "/api/charts/pie", chartRequestBody{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartEndpoint_FeatureOverride(t *testing.T) {
	a := newTestApp()
	absDiff := 1.0
	body := chartRequestBody{Records: []compare.Record{
		{Feature: "weak", Type: compare.TypeBinary, AbsDiffPct: &absDiff},
	}}

	rec := doJSON(t, a, http.MethodPost, "/api/charts/heatmap?features=weak", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count, "explicit selection bypasses thresholds")
}

func TestBookmarkEndpoints(t *testing.T) {
	a := newTestApp()

	rec := doJSON(t, a, http.MethodPost, "/api/bookmarks", map[string]interface{}{
		"panelId": "p1", "title": "서울 2030",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, a, http.MethodGet, "/api/bookmarks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "p1")

	rec = doJSON(t, a, http.MethodDelete, "/api/bookmarks/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = doJSON(t, a, http.MethodDelete, "/api/bookmarks", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBookmarkEndpoint_MissingPanelID(t *testing.T) {
	a := newTestApp()
	rec := doJSON(t, a, http.MethodPost, "/api/bookmarks", map[string]interface{}{"title": "no id"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPresetEndpoints(t *testing.T) {
	a := newTestApp()

	rec := doJSON(t, a, http.MethodPost, "/api/presets", map[string]interface{}{
		"name":    "타겟",
		"scope":   "개인",
		"filters": map[string]interface{}{"regions": []string{"서울"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created preset.Preset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.ID.String(), "preset-"))

	rec = doJSON(t, a, http.MethodPatch, "/api/presets/"+created.ID.String(),
		map[string]interface{}{"name": "바뀐 타겟"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "바뀐 타겟")

	rec = doJSON(t, a, http.MethodGet, "/api/presets?scope=개인", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []preset.Preset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	rec = doJSON(t, a, http.MethodGet, "/api/presets?scope=팀", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = doJSON(t, a, http.MethodDelete, "/api/presets/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPresetUpdate_NotFound(t *testing.T) {
	a := newTestApp()
	rec := doJSON(t, a, http.MethodPatch, "/api/presets/preset-0-ghost",
		map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPresetEndpoint_BadScope(t *testing.T) {
	a := newTestApp()
	rec := doJSON(t, a, http.MethodPost, "/api/presets", map[string]interface{}{
		"name": "x", "scope": "everyone",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, a, http.MethodGet, "/api/presets?scope=everyone", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsEndpoint(t *testing.T) {
	a := newTestApp()
	d := 0.9
	data := compare.ClusterComparisonData{
		GroupA: compare.ClusterGroup{ID: 0, Label: "전체"},
		GroupB: compare.ClusterGroup{ID: 1},
		Comparison: []compare.Record{
			{Feature: "media_time_sns", Type: compare.TypeContinuous,
				CohensD: &d, PValue: 0.001, Significant: true},
		},
	}

	rec := doJSON(t, a, http.MethodPost, "/api/insights", data)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp insightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Markdown, "전체 vs Cluster 1")
	assert.Contains(t, resp.HTML, "<h2")
}

func TestExportEndpoint(t *testing.T) {
	a := newTestApp()
	data := compare.ClusterComparisonData{
		GroupA: compare.ClusterGroup{ID: 0, Count: 10},
		GroupB: compare.ClusterGroup{ID: 2, Count: 5},
	}

	rec := doJSON(t, a, http.MethodPost, "/api/export", data)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		fmt.Sprintf("attachment; filename=%q", "comparison_0_vs_2.xlsx"),
		rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func TestHealthz(t *testing.T) {
	a := newTestApp()
	rec := doJSON(t, a, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
