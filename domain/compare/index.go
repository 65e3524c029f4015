package compare

// Penetration index: a group ratio relative to the overall baseline ratio,
// scaled so 100 means exact parity with the population.
const (
	HighIndexThreshold = 120
	LowIndexThreshold  = 80
)

// PenetrationIndex computes (ratio / baseline) * 100. A zero or negative
// baseline means the variable is absent from the population; the index is
// reported as 0 rather than blowing up.
func PenetrationIndex(ratio, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return ratio / baseline * 100
}

// IsHighIndex reports whether the index crosses the over-representation
// visual threshold.
func IsHighIndex(index float64) bool {
	return index >= HighIndexThreshold
}

// IsLowIndex reports whether the index crosses the under-representation
// visual threshold.
func IsLowIndex(index float64) bool {
	return index <= LowIndexThreshold
}
