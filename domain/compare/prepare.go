package compare

import (
	"sort"

	"panelscope/domain/core"
)

// Chart preparation: each function takes the full comparison list and
// returns the ordered, filtered subset for one chart renderer. All four are
// pure: no I/O, no mutation of the input slice, empty in -> empty out.

// Output caps and significance thresholds per chart kind.
const (
	DefaultRadarMaxFeatures = 8
	HeatmapMaxRows          = 12
	StackedBarMaxCharts     = 4

	radarMinCohensD    = 0.3
	radarMinAbsDiffPct = 5
	radarMinLiftPct    = 20

	heatmapMinAbsDiffPct = 3
	heatmapMinLiftPct    = 15

	indexDotMinCohensD    = 0.3
	indexDotMinAbsDiffPct = 5
	indexDotMinLiftPct    = 30
)

// PrepareRadarData selects up to maxFeatures continuous/binary records for
// the radar chart. Curated radar features that survive filtering come first,
// in the curated order; the remainder is filled by importance. When no
// curated feature survives, the whole survivor set is importance-ranked.
func PrepareRadarData(records []Record, maxFeatures int, onlyMeaningful bool) []Record {
	if maxFeatures <= 0 {
		maxFeatures = DefaultRadarMaxFeatures
	}

	survivors := filterByType(records, TypeContinuous, TypeBinary)
	if onlyMeaningful {
		survivors = filterRecords(survivors, radarMeaningful)
	}

	return curatedFirst(survivors, PreferredRadarFeatures, radarFeatureSet, maxFeatures, radarImportanceLess)
}

// PrepareBinaryHeatmapData selects up to 12 binary records for the heatmap,
// same curated-first pattern as the radar with |abs diff pct| importance.
func PrepareBinaryHeatmapData(records []Record, onlyMeaningful bool) []Record {
	survivors := filterByType(records, TypeBinary)
	if onlyMeaningful {
		survivors = filterRecords(survivors, heatmapMeaningful)
	}

	return curatedFirst(survivors, PreferredHeatmapFeatures, heatmapFeatureSet, HeatmapMaxRows, absDiffLess)
}

// PrepareStackedBarData selects up to 4 categorical records. Distributions
// carry no numeric importance metric, so the non-curated fallback order is
// input order.
func PrepareStackedBarData(records []Record) []Record {
	survivors := filterByType(records, TypeCategorical)
	return curatedFirst(survivors, PreferredStackedBarFeatures, stackedBarFeatureSet, StackedBarMaxCharts, nil)
}

// PrepareIndexDotData selects records for the index-dot plot. Membership in
// the eligible set is a hard filter here, not a preference: anything outside
// it is dropped regardless of significance. Survivors are ordered by
// |abs diff pct| (binary pairs) or |Cohen's d| (continuous pairs); a binary
// and a continuous record keep their input order relative to each other.
// No count cap.
func PrepareIndexDotData(records []Record) []Record {
	eligible := make([]Record, 0, len(records))
	for _, r := range dedupeKeepFirst(records) {
		if !indexDotFeatureSet[r.Feature] {
			continue
		}
		switch r.Type {
		case TypeBinary:
			if r.AbsDiff() >= indexDotMinAbsDiffPct || abs(r.LiftPct) >= indexDotMinLiftPct {
				eligible = append(eligible, r)
			}
		case TypeContinuous:
			if r.EffectD() >= indexDotMinCohensD {
				eligible = append(eligible, r)
			}
		}
	}

	sortWithinType(eligible, TypeBinary, absDiffLess)
	sortWithinType(eligible, TypeContinuous, func(a, b Record) bool {
		return a.EffectD() > b.EffectD()
	})
	return eligible
}

// sortWithinType reorders the records of one type among themselves, leaving
// every other record in place: the sorted records are written back into the
// slots that type occupied in the input.
func sortWithinType(records []Record, t RecordType, less func(a, b Record) bool) {
	var slots []int
	for i, r := range records {
		if r.Type == t {
			slots = append(slots, i)
		}
	}
	subset := make([]Record, len(slots))
	for k, i := range slots {
		subset[k] = records[i]
	}
	sort.SliceStable(subset, func(i, j int) bool { return less(subset[i], subset[j]) })
	for k, i := range slots {
		records[i] = subset[k]
	}
}

// radarMeaningful keeps records with a visible contrast: a non-trivial
// standardized effect or any nonzero normalized difference for continuous
// variables, a >=5pp gap or >=20% lift for binary ones.
func radarMeaningful(r Record) bool {
	switch r.Type {
	case TypeContinuous:
		return r.EffectD() >= radarMinCohensD || r.Difference != 0
	case TypeBinary:
		return r.AbsDiff() >= radarMinAbsDiffPct || abs(r.LiftPct) >= radarMinLiftPct
	}
	return false
}

// heatmapMeaningful is looser than the radar filter: the heatmap shows many
// cells, so smaller gaps stay visible.
func heatmapMeaningful(r Record) bool {
	return r.AbsDiff() >= heatmapMinAbsDiffPct || abs(r.LiftPct) >= heatmapMinLiftPct
}

// radarImportanceLess orders by importance descending: continuous by
// |Cohen's d|, binary by |abs diff pct|. Across types continuous sorts
// before binary; the two scales are not comparable, so this is a tie-break
// rule rather than a magnitude comparison.
func radarImportanceLess(a, b Record) bool {
	if a.Type != b.Type {
		return a.Type == TypeContinuous
	}
	if a.Type == TypeContinuous {
		return a.EffectD() > b.EffectD()
	}
	return a.AbsDiff() > b.AbsDiff()
}

func absDiffLess(a, b Record) bool {
	return a.AbsDiff() > b.AbsDiff()
}

// curatedFirst implements the shared selection pattern: curated survivors in
// the curated list's declared order, then the non-curated survivors by
// importance (or input order when less is nil), truncated to max. A curated
// feature with no matching record is silently skipped.
func curatedFirst(survivors []Record, curated []core.FeatureKey, curatedSet map[core.FeatureKey]bool, max int, less func(a, b Record) bool) []Record {
	survivors = dedupeKeepFirst(survivors)

	byFeature := make(map[core.FeatureKey]Record, len(survivors))
	for _, r := range survivors {
		byFeature[r.Feature] = r
	}

	picked := make([]Record, 0, max)
	for _, key := range curated {
		if r, ok := byFeature[key]; ok {
			picked = append(picked, r)
		}
	}

	rest := make([]Record, 0, len(survivors))
	for _, r := range survivors {
		if !curatedSet[r.Feature] {
			rest = append(rest, r)
		}
	}
	if less != nil {
		sort.SliceStable(rest, func(i, j int) bool { return less(rest[i], rest[j]) })
	}

	if len(picked) == 0 {
		picked = rest
	} else {
		for _, r := range rest {
			if len(picked) >= max {
				break
			}
			picked = append(picked, r)
		}
	}

	if len(picked) > max {
		picked = picked[:max]
	}
	return picked
}

// dedupeKeepFirst drops repeat occurrences of a feature, keeping the first.
// Upstream guarantees uniqueness; this pins the behavior down when it is
// violated so curated ordering stays deterministic.
func dedupeKeepFirst(records []Record) []Record {
	seen := make(map[core.FeatureKey]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if seen[r.Feature] {
			continue
		}
		seen[r.Feature] = true
		out = append(out, r)
	}
	return out
}

func filterByType(records []Record, types ...RecordType) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		for _, t := range types {
			if r.Type == t {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func filterRecords(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
