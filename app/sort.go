package app

import (
	"sort"

	"panelscope/domain/compare"
)

func sortByEffect(records []compare.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EffectD() > records[j].EffectD()
	})
}

func sortByAbsDiff(records []compare.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AbsDiff() > records[j].AbsDiff()
	})
}
