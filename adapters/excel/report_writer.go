package excel

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"panelscope/domain/compare"
)

// ReportWriter exports one cluster comparison as an xlsx workbook with a
// summary sheet plus one sheet per record type. Values are written
// unrounded; display formatting is the spreadsheet's problem.
type ReportWriter struct{}

// Write renders the workbook and streams it to w.
func (ReportWriter) Write(w io.Writer, data compare.ClusterComparisonData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, data); err != nil {
		return err
	}
	if err := writeContinuousSheet(f, data.Comparison); err != nil {
		return err
	}
	if err := writeBinarySheet(f, data.Comparison); err != nil {
		return err
	}
	if err := writeCategoricalSheet(f, data.Comparison); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, data compare.ClusterComparisonData) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Group", "Label", "Count", "Percentage"},
		{"A", data.GroupA.DisplayLabel(), data.GroupA.Count, data.GroupA.Percentage},
		{"B", data.GroupB.DisplayLabel(), data.GroupB.Count, data.GroupB.Percentage},
	}
	return writeRows(f, sheet, rows)
}

func writeContinuousSheet(f *excelize.File, records []compare.Record) error {
	const sheet = "Continuous"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{{
		"Feature", "Name", "Mean A", "Mean B", "Difference",
		"Lift %", "Cohen's d", "p-value", "Significant",
	}}
	for _, r := range records {
		if r.Type != compare.TypeContinuous {
			continue
		}
		meanA, meanB := r.GroupAMean, r.GroupBMean
		if r.OriginalGroupAMean != nil {
			meanA = *r.OriginalGroupAMean
		}
		if r.OriginalGroupBMean != nil {
			meanB = *r.OriginalGroupBMean
		}
		var d interface{}
		if r.CohensD != nil {
			d = *r.CohensD
		}
		rows = append(rows, []interface{}{
			r.Feature.String(), r.DisplayName(), meanA, meanB, r.Difference,
			r.LiftPct, d, r.PValue, r.Significant,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeBinarySheet(f *excelize.File, records []compare.Record) error {
	const sheet = "Binary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{{
		"Feature", "Name", "Ratio A", "Ratio B", "Diff %p",
		"Lift %", "Index A", "Index B", "p-value", "Significant",
	}}
	for _, r := range records {
		if r.Type != compare.TypeBinary {
			continue
		}
		var idxA, idxB interface{}
		if r.IndexA != nil {
			idxA = *r.IndexA
		}
		if r.IndexB != nil {
			idxB = *r.IndexB
		}
		rows = append(rows, []interface{}{
			r.Feature.String(), r.DisplayName(), r.GroupARatio, r.GroupBRatio,
			r.AbsDiff(), r.LiftPct, idxA, idxB, r.PValue, r.Significant,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeCategoricalSheet(f *excelize.File, records []compare.Record) error {
	const sheet = "Categorical"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{{"Feature", "Name", "Category", "Group A", "Group B"}}
	for _, r := range records {
		if r.Type != compare.TypeCategorical {
			continue
		}
		for _, cat := range sortedCategories(r) {
			rows = append(rows, []interface{}{
				r.Feature.String(), r.DisplayName(), cat,
				r.GroupADistribution[cat], r.GroupBDistribution[cat],
			})
		}
	}
	return writeRows(f, sheet, rows)
}

// sortedCategories unions both groups' category labels so a category
// present on only one side still gets a row.
func sortedCategories(r compare.Record) []string {
	seen := make(map[string]bool)
	for cat := range r.GroupADistribution {
		seen[cat] = true
	}
	for cat := range r.GroupBDistribution {
		seen[cat] = true
	}
	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
