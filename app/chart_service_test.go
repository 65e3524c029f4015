package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelscope/domain/compare"
	"panelscope/domain/core"
	"panelscope/internal/errors"
)

func pct(v float64) *float64 { return &v }

func binRecord(feature string, absDiffPct float64) compare.Record {
	return compare.Record{
		Feature:     core.FeatureKey(feature),
		Type:        compare.TypeBinary,
		GroupARatio: 0.2,
		GroupBRatio: 0.2 + absDiffPct/100,
		AbsDiffPct:  pct(absDiffPct),
		LiftPct:     absDiffPct * 3,
		PValue:      0.01,
		Significant: true,
	}
}

func TestChartService_Dispatch(t *testing.T) {
	svc := NewChartService()
	records := []compare.Record{binRecord("a", 20), binRecord("b", 10)}

	tests := []struct {
		kind ChartKind
		want int
	}{
		{ChartRadar, 2},
		{ChartHeatmap, 2},
		{ChartStackedBar, 0}, // no categorical records supplied
		{ChartIndexDot, 0},   // neither feature is index-dot eligible
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := svc.Prepare(records, ChartRequest{Kind: tt.kind, OnlyMeaningful: true})
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestChartService_UnknownKind(t *testing.T) {
	svc := NewChartService()
	_, err := svc.Prepare(nil, ChartRequest{Kind: "pie"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestChartService_UserOverrideReplacesPipeline(t *testing.T) {
	svc := NewChartService()
	records := []compare.Record{
		binRecord("strong", 40),
		binRecord("weak", 1), // fails every threshold
		binRecord("middle", 10),
	}

	got, err := svc.Prepare(records, ChartRequest{
		Kind:           ChartHeatmap,
		OnlyMeaningful: true,
		Features:       []core.FeatureKey{"weak", "strong", "missing"},
	})
	require.NoError(t, err)

	// Override bypasses thresholds and ordering entirely: user order wins,
	// unknown features are skipped.
	require.Len(t, got, 2)
	assert.Equal(t, core.FeatureKey("weak"), got[0].Feature)
	assert.Equal(t, core.FeatureKey("strong"), got[1].Feature)
}

func TestSelectFeatures_EmptySelection(t *testing.T) {
	assert.Empty(t, SelectFeatures([]compare.Record{binRecord("a", 5)}, nil))
}
