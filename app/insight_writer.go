package app

import (
	"fmt"
	"strings"

	"panelscope/domain/compare"
)

// InsightWriter renders a markdown summary of a cluster comparison: the
// strongest contrasts per variable type plus penetration callouts. The UI
// layer renders the markdown to HTML; this writer only decides what is
// worth saying.
type InsightWriter struct {
	// MaxPerSection bounds each bullet list; zero means the default.
	MaxPerSection int
}

const defaultInsightsPerSection = 5

// Write produces the markdown summary for one pairing.
func (w InsightWriter) Write(data compare.ClusterComparisonData) string {
	max := w.MaxPerSection
	if max <= 0 {
		max = defaultInsightsPerSection
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s vs %s\n\n", data.GroupA.DisplayLabel(), data.GroupB.DisplayLabel())
	fmt.Fprintf(&b, "%s: %d명 (%.1f%%) · %s: %d명 (%.1f%%)\n",
		data.GroupA.DisplayLabel(), data.GroupA.Count, data.GroupA.Percentage,
		data.GroupB.DisplayLabel(), data.GroupB.Count, data.GroupB.Percentage)

	continuous := topContinuous(data.Comparison, max)
	if len(continuous) > 0 {
		b.WriteString("\n### 주요 차이 (연속형)\n\n")
		for _, r := range continuous {
			fmt.Fprintf(&b, "- **%s**: d=%.2f, lift %+.1f%%", r.DisplayName(), r.EffectD(), r.LiftPct)
			if r.HasWarning(compare.WarningLowSample) {
				b.WriteString(" _(표본 주의)_")
			}
			b.WriteString("\n")
		}
	}

	binary := topBinary(data.Comparison, max)
	if len(binary) > 0 {
		b.WriteString("\n### 주요 차이 (이진형)\n\n")
		for _, r := range binary {
			fmt.Fprintf(&b, "- **%s**: %.1f%%p 차이", r.DisplayName(), r.AbsDiff())
			if r.IndexB != nil {
				idx := *r.IndexB
				switch {
				case compare.IsHighIndex(idx):
					fmt.Fprintf(&b, ", 지수 %.0f (과대 대표)", idx)
				case compare.IsLowIndex(idx):
					fmt.Fprintf(&b, ", 지수 %.0f (과소 대표)", idx)
				}
			}
			b.WriteString("\n")
		}
	}

	if len(data.Opportunities) > 0 {
		b.WriteString("\n### 의향-행동 격차\n\n")
		for i, o := range data.Opportunities {
			if i >= max {
				break
			}
			label := o.Label
			if label == "" {
				label = o.Feature.String()
			}
			fmt.Fprintf(&b, "- **%s**: 의향 %.0f%% vs 행동 %.0f%% (격차 %.0f%%p)\n",
				label, o.IntentRatio*100, o.ActionRatio*100, o.GapPct)
		}
	}

	return b.String()
}

func topContinuous(records []compare.Record, max int) []compare.Record {
	var out []compare.Record
	for _, r := range records {
		if r.Type == compare.TypeContinuous && r.Significant {
			out = append(out, r)
		}
	}
	sortByEffect(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func topBinary(records []compare.Record, max int) []compare.Record {
	var out []compare.Record
	for _, r := range records {
		if r.Type == compare.TypeBinary && r.Significant {
			out = append(out, r)
		}
	}
	sortByAbsDiff(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}
