package importexport

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/analytics"
)

// ReportRenderer is the contract external formatting layers (PDF, spreadsheet)
// implement. Renderers are pure consumers: they receive computed report data
// and produce bytes, no store access.
type ReportRenderer interface {
	RenderProjectSummary(summary *analytics.ProjectSummary) ([]byte, error)
	RenderDailyCostReport(report *analytics.DailyCostReport) ([]byte, error)
}

// CSVRenderer is the in-repo reference implementation of ReportRenderer.
type CSVRenderer struct{}

func (CSVRenderer) RenderProjectSummary(summary *analytics.ProjectSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Department", "Budget", "Spent", "Remaining", "VariancePercent"}); err != nil {
		return nil, err
	}
	for _, d := range summary.Departments {
		record := []string{
			d.Name,
			d.Budget.StringFixed(2),
			d.Spent.StringFixed(2),
			d.Remaining.StringFixed(2),
			strconv.FormatFloat(d.VariancePercent, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	total := []string{
		"TOTAL",
		summary.TotalBudget.StringFixed(2),
		summary.TotalSpent.StringFixed(2),
		summary.RemainingBudget.StringFixed(2),
		strconv.FormatFloat(summary.VariancePercent, 'f', 2, 64),
	}
	if err := w.Write(total); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (CSVRenderer) RenderDailyCostReport(report *analytics.DailyCostReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Department", "Amount"}); err != nil {
		return nil, err
	}
	for _, d := range report.ByDepartment {
		if err := w.Write([]string{report.Date, d.Name, d.Amount.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{report.Date, "Petty Cash", report.PettyCashDebits.StringFixed(2)}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{report.Date, "TOTAL", report.Total.StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
