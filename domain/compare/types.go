package compare

import (
	"fmt"
	"math"

	"panelscope/domain/core"
)

// RecordType discriminates the three comparison variants. Consumers must
// check Type before reading variant-specific fields; a record with an
// unknown tag falls out of every chart filter.
type RecordType string

const (
	TypeContinuous  RecordType = "continuous"
	TypeBinary      RecordType = "binary"
	TypeCategorical RecordType = "categorical"
)

// Warning flags attached upstream to individual records.
const (
	WarningLowSample = "low_sample"
)

// Record is one measured variable's contrast between group A and group B.
// It is a tagged union: Type selects which field group is populated.
//
// INVARIANTS:
// - Continuous/binary records always carry Difference, LiftPct, PValue.
// - Significant is derived upstream as PValue < 0.05.
// - The same Feature must not appear twice in one comparison list; the
//   pipeline dedupes keep-first if it does.
type Record struct {
	Feature       core.FeatureKey `json:"feature"`
	Type          RecordType      `json:"type"`
	FeatureNameKR string          `json:"feature_name_kr,omitempty"`
	WarningFlags  []string        `json:"warning_flags,omitempty"`

	// Continuous + binary shared
	Difference  float64 `json:"difference,omitempty"`
	LiftPct     float64 `json:"lift_pct,omitempty"`
	PValue      float64 `json:"p_value,omitempty"`
	Significant bool    `json:"significant,omitempty"`

	// Continuous only. Means are on the normalized scale; Original* keep the
	// unnormalized values for display.
	GroupAMean         float64  `json:"group_a_mean,omitempty"`
	GroupBMean         float64  `json:"group_b_mean,omitempty"`
	CohensD            *float64 `json:"cohens_d,omitempty"`
	OriginalGroupAMean *float64 `json:"original_group_a_mean,omitempty"`
	OriginalGroupBMean *float64 `json:"original_group_b_mean,omitempty"`
	OriginalDifference *float64 `json:"original_difference,omitempty"`

	// Binary only. Ratios are in [0,1]; AbsDiffPct is the percentage-point
	// gap; IndexA/IndexB are penetration indexes against the overall
	// baseline (100 = parity).
	GroupARatio float64  `json:"group_a_ratio,omitempty"`
	GroupBRatio float64  `json:"group_b_ratio,omitempty"`
	AbsDiffPct  *float64 `json:"abs_diff_pct,omitempty"`
	IndexA      *float64 `json:"index_a,omitempty"`
	IndexB      *float64 `json:"index_b,omitempty"`

	// Categorical only. Category label -> proportion, summing to ~1.0 per
	// group (not enforced).
	GroupADistribution map[string]float64 `json:"group_a_distribution,omitempty"`
	GroupBDistribution map[string]float64 `json:"group_b_distribution,omitempty"`
}

// EffectD returns |Cohen's d|, or 0 when the effect size is absent.
func (r Record) EffectD() float64 {
	if r.CohensD == nil {
		return 0
	}
	return math.Abs(*r.CohensD)
}

// AbsDiff returns |abs_diff_pct|, falling back to the ratio gap in
// percentage points when the precomputed field is absent.
func (r Record) AbsDiff() float64 {
	if r.AbsDiffPct != nil {
		return math.Abs(*r.AbsDiffPct)
	}
	return math.Abs(r.GroupARatio-r.GroupBRatio) * 100
}

// DisplayName returns the Korean display override when present, otherwise
// the raw feature key.
func (r Record) DisplayName() string {
	if r.FeatureNameKR != "" {
		return r.FeatureNameKR
	}
	return r.Feature.String()
}

// HasWarning reports whether the record carries the given warning flag.
func (r Record) HasWarning(flag string) bool {
	for _, f := range r.WarningFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// ClusterGroup describes one side of a pairing. A negative ID denotes the
// noise/unassigned group.
type ClusterGroup struct {
	ID         int     `json:"id"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label,omitempty"`
}

// DisplayLabel returns the human label, defaulting to "Cluster {id}".
func (g ClusterGroup) DisplayLabel() string {
	if g.Label != "" {
		return g.Label
	}
	return fmt.Sprintf("Cluster %d", g.ID)
}

// IsNoise reports whether the group holds unassigned members.
func (g ClusterGroup) IsNoise() bool {
	return g.ID < 0
}

// Highlights holds the precomputed top-N subsets supplied by the caller.
// The pipeline never derives these.
type Highlights struct {
	NumTop    []Record `json:"num_top,omitempty"`
	BinCatTop []Record `json:"bin_cat_top,omitempty"`
}

// Opportunity is one intent-vs-action gap item, independent of the chart
// pipeline.
type Opportunity struct {
	Feature     core.FeatureKey `json:"feature"`
	Label       string          `json:"label,omitempty"`
	IntentRatio float64         `json:"intent_ratio"`
	ActionRatio float64         `json:"action_ratio"`
	GapPct      float64         `json:"gap_pct"`
}

// ClusterComparisonData is the aggregate handed over whole by the analytics
// producer: the full universe of measured variables for one pairing.
type ClusterComparisonData struct {
	GroupA        ClusterGroup  `json:"group_a"`
	GroupB        ClusterGroup  `json:"group_b"`
	Comparison    []Record      `json:"comparison"`
	Highlights    Highlights    `json:"highlights"`
	Opportunities []Opportunity `json:"opportunities,omitempty"`
}
