package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"panelscope/domain/compare"
	"panelscope/domain/core"
)

// Builder turns raw per-group samples into the comparison records the chart
// pipeline consumes. This is the analytics producer the UI layer treats as
// an external collaborator: means, Welch t-tests, two-proportion z-tests,
// Cohen's d, lift and penetration indexes are all computed here, once per
// record.
type Builder struct {
	// Alpha is the significance level; zero means 0.05.
	Alpha float64
	// LowSampleN flags records where either group is smaller; zero means 30.
	LowSampleN int
}

const (
	defaultAlpha      = 0.05
	defaultLowSampleN = 30
)

func (b Builder) alpha() float64 {
	if b.Alpha > 0 {
		return b.Alpha
	}
	return defaultAlpha
}

func (b Builder) lowSampleN() int {
	if b.LowSampleN > 0 {
		return b.LowSampleN
	}
	return defaultLowSampleN
}

// ContinuousInput is one numeric variable's raw samples per group.
type ContinuousInput struct {
	Feature core.FeatureKey
	NameKR  string
	GroupA  []float64
	GroupB  []float64
}

// BinaryInput is one yes/no variable's counts per group. BaselineRatio is
// the overall population ratio the penetration indexes compare against;
// zero leaves the indexes unset.
type BinaryInput struct {
	Feature       core.FeatureKey
	NameKR        string
	PositiveA     int
	TotalA        int
	PositiveB     int
	TotalB        int
	BaselineRatio float64
}

// CategoricalInput is one categorical variable's per-category counts.
type CategoricalInput struct {
	Feature core.FeatureKey
	NameKR  string
	CountsA map[string]int
	CountsB map[string]int
}

// Continuous builds a continuous comparison record. Group means are
// reported on a normalized scale (z-scored against the combined sample) so
// radar axes are comparable; the unnormalized values are kept in the
// Original* fields for display.
func (b Builder) Continuous(in ContinuousInput) compare.Record {
	meanA, _ := stats.Mean(in.GroupA)
	meanB, _ := stats.Mean(in.GroupB)
	sdA, _ := stats.StandardDeviationSample(in.GroupA)
	sdB, _ := stats.StandardDeviationSample(in.GroupB)
	nA, nB := float64(len(in.GroupA)), float64(len(in.GroupB))

	combined := append(append([]float64{}, in.GroupA...), in.GroupB...)
	combinedMean, _ := stats.Mean(combined)
	combinedSD, _ := stats.StandardDeviationSample(combined)

	normA := normalize(meanA, combinedMean, combinedSD)
	normB := normalize(meanB, combinedMean, combinedSD)

	p := welchP(meanA, meanB, sdA, sdB, nA, nB)
	d := cohensD(meanA, meanB, sdA, sdB, nA, nB)
	origDiff := meanA - meanB

	rec := compare.Record{
		Feature:            in.Feature,
		Type:               compare.TypeContinuous,
		FeatureNameKR:      in.NameKR,
		GroupAMean:         normA,
		GroupBMean:         normB,
		Difference:         normA - normB,
		LiftPct:            liftPct(meanA, meanB),
		PValue:             p,
		Significant:        p < b.alpha(),
		CohensD:            &d,
		OriginalGroupAMean: &meanA,
		OriginalGroupBMean: &meanB,
		OriginalDifference: &origDiff,
	}
	b.flagLowSample(&rec, len(in.GroupA), len(in.GroupB))
	return rec
}

// Binary builds a binary comparison record from per-group counts.
func (b Builder) Binary(in BinaryInput) compare.Record {
	ratioA := ratio(in.PositiveA, in.TotalA)
	ratioB := ratio(in.PositiveB, in.TotalB)
	absDiffPct := math.Abs(ratioA-ratioB) * 100

	p := twoProportionP(in.PositiveA, in.TotalA, in.PositiveB, in.TotalB)

	rec := compare.Record{
		Feature:       in.Feature,
		Type:          compare.TypeBinary,
		FeatureNameKR: in.NameKR,
		GroupARatio:   ratioA,
		GroupBRatio:   ratioB,
		Difference:    ratioA - ratioB,
		LiftPct:       liftPct(ratioA, ratioB),
		PValue:        p,
		Significant:   p < b.alpha(),
		AbsDiffPct:    &absDiffPct,
	}
	if in.BaselineRatio > 0 {
		idxA := compare.PenetrationIndex(ratioA, in.BaselineRatio)
		idxB := compare.PenetrationIndex(ratioB, in.BaselineRatio)
		rec.IndexA = &idxA
		rec.IndexB = &idxB
	}
	b.flagLowSample(&rec, in.TotalA, in.TotalB)
	return rec
}

// Categorical builds a categorical comparison record; counts become
// per-group proportions.
func (b Builder) Categorical(in CategoricalInput) compare.Record {
	rec := compare.Record{
		Feature:            in.Feature,
		Type:               compare.TypeCategorical,
		FeatureNameKR:      in.NameKR,
		GroupADistribution: proportions(in.CountsA),
		GroupBDistribution: proportions(in.CountsB),
	}
	b.flagLowSample(&rec, totalCount(in.CountsA), totalCount(in.CountsB))
	return rec
}

func (b Builder) flagLowSample(rec *compare.Record, nA, nB int) {
	if nA < b.lowSampleN() || nB < b.lowSampleN() {
		rec.WarningFlags = append(rec.WarningFlags, compare.WarningLowSample)
	}
}

// welchP is the two-sided Welch t-test p-value with Welch-Satterthwaite
// degrees of freedom.
func welchP(meanA, meanB, sdA, sdB, nA, nB float64) float64 {
	if nA < 2 || nB < 2 {
		return 1
	}
	varA, varB := sdA*sdA/nA, sdB*sdB/nB
	se := math.Sqrt(varA + varB)
	if se == 0 {
		if meanA == meanB {
			return 1
		}
		return 0
	}
	t := (meanA - meanB) / se
	df := (varA + varB) * (varA + varB) / (varA*varA/(nA-1) + varB*varB/(nB-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - dist.CDF(math.Abs(t)))
}

// twoProportionP is the two-sided pooled two-proportion z-test p-value.
func twoProportionP(posA, nA, posB, nB int) float64 {
	if nA == 0 || nB == 0 {
		return 1
	}
	pA, pB := ratio(posA, nA), ratio(posB, nB)
	pooled := float64(posA+posB) / float64(nA+nB)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(nA) + 1/float64(nB)))
	if se == 0 {
		if pA == pB {
			return 1
		}
		return 0
	}
	z := (pA - pB) / se
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	return 2 * (1 - norm.CDF(math.Abs(z)))
}

// cohensD uses the pooled standard deviation.
func cohensD(meanA, meanB, sdA, sdB, nA, nB float64) float64 {
	if nA < 2 || nB < 2 {
		return 0
	}
	pooled := math.Sqrt(((nA-1)*sdA*sdA + (nB-1)*sdB*sdB) / (nA + nB - 2))
	if pooled == 0 {
		return 0
	}
	return (meanA - meanB) / pooled
}

// liftPct is the percentage change of B relative to A.
func liftPct(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	return (b - a) / a * 100
}

func normalize(v, mean, sd float64) float64 {
	if sd == 0 {
		return 0
	}
	return (v - mean) / sd
}

func ratio(pos, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(pos) / float64(total)
}

func proportions(counts map[string]int) map[string]float64 {
	total := totalCount(counts)
	out := make(map[string]float64, len(counts))
	for label, c := range counts {
		if total > 0 {
			out[label] = float64(c) / float64(total)
		} else {
			out[label] = 0
		}
	}
	return out
}

func totalCount(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
