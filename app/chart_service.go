package app

import (
	"panelscope/domain/compare"
	"panelscope/domain/core"
	"panelscope/internal/errors"
)

// ChartKind names the four chart renderers.
type ChartKind string

const (
	ChartRadar      ChartKind = "radar"
	ChartHeatmap    ChartKind = "heatmap"
	ChartStackedBar ChartKind = "stacked_bar"
	ChartIndexDot   ChartKind = "index_dot"
)

// ChartRequest carries the per-request knobs on top of the comparison list.
type ChartRequest struct {
	Kind           ChartKind
	MaxFeatures    int  // radar only; 0 means the default
	OnlyMeaningful bool // radar and heatmap

	// Features is the explicit user selection. When non-empty it fully
	// replaces the chart's filter and ordering: records are returned in
	// this order, unknown features silently skipped.
	Features []core.FeatureKey
}

// ChartService dispatches a comparison list to the right preparation
// pipeline. Stateless; it exists so the HTTP layer and the exporter share
// one dispatch point and the user-override path.
type ChartService struct{}

// NewChartService creates the dispatcher.
func NewChartService() *ChartService {
	return &ChartService{}
}

// Prepare returns the ordered subset for the requested chart kind.
func (s *ChartService) Prepare(records []compare.Record, req ChartRequest) ([]compare.Record, error) {
	if len(req.Features) > 0 {
		return SelectFeatures(records, req.Features), nil
	}

	switch req.Kind {
	case ChartRadar:
		return compare.PrepareRadarData(records, req.MaxFeatures, req.OnlyMeaningful), nil
	case ChartHeatmap:
		return compare.PrepareBinaryHeatmapData(records, req.OnlyMeaningful), nil
	case ChartStackedBar:
		return compare.PrepareStackedBarData(records), nil
	case ChartIndexDot:
		return compare.PrepareIndexDotData(records), nil
	}
	return nil, errors.InvalidInput("unknown chart kind: " + string(req.Kind))
}

// SelectFeatures maps an explicit user-selected feature list to full
// records in the user's chosen order. Features without a matching record
// are skipped; no thresholds or curated sets apply.
func SelectFeatures(records []compare.Record, features []core.FeatureKey) []compare.Record {
	byFeature := make(map[core.FeatureKey]compare.Record, len(records))
	for _, r := range records {
		if _, seen := byFeature[r.Feature]; !seen {
			byFeature[r.Feature] = r
		}
	}

	out := make([]compare.Record, 0, len(features))
	for _, f := range features {
		if r, ok := byFeature[f]; ok {
			out = append(out, r)
		}
	}
	return out
}
