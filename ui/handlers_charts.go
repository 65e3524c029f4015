package ui

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"panelscope/app"
	"panelscope/domain/compare"
	"panelscope/domain/core"
)

// chartRequestBody accepts either a full comparison aggregate or a bare
// record list; the aggregate wins when both are present.
type chartRequestBody struct {
	Data    *compare.ClusterComparisonData `json:"data,omitempty"`
	Records []compare.Record               `json:"records,omitempty"`
}

type chartResponse struct {
	Records []compare.Record `json:"records"`
	Count   int              `json:"count"`
}

// handlePrepareChart runs the preparation pipeline for one chart kind.
// Query knobs: max (radar feature cap), meaningful (default true),
// features (comma-separated explicit selection, replaces the pipeline).
func (a *App) handlePrepareChart(w http.ResponseWriter, r *http.Request) {
	var body chartRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	records := body.Records
	if body.Data != nil {
		records = body.Data.Comparison
	}

	req := app.ChartRequest{
		Kind:           app.ChartKind(chi.URLParam(r, "kind")),
		OnlyMeaningful: true,
	}
	q := r.URL.Query()
	if v := q.Get("meaningful"); v != "" {
		req.OnlyMeaningful = v != "false" && v != "0"
	}
	if v := q.Get("max"); v != "" {
		max, err := strconv.Atoi(v)
		if err != nil || max < 0 {
			respondBadRequest(w, "max must be a non-negative integer")
			return
		}
		req.MaxFeatures = max
	}
	if v := q.Get("features"); v != "" {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				req.Features = append(req.Features, core.FeatureKey(f))
			}
		}
	}

	prepared, err := a.charts.Prepare(records, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chartResponse{Records: prepared, Count: len(prepared)})
}
