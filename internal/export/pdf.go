// Package export renders reports and estimates to printable PDF documents.
// Callers pass a destination path; nothing here feeds back into the engine.
package export

import (
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"fachowiec/backend/internal/model"
)

// ReportPDF writes a time report as an A4 document: period header, one table
// row per sub-period bucket (or per entry for daily reports) and the totals.
func ReportPDF(path string, report *model.Report) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	registerHeader(m, "Time Report", fmt.Sprintf("%s - %s (%s)", report.StartDate, report.EndDate, report.Kind))

	if len(report.Breakdown) > 0 {
		keys := make([]string, 0, len(report.Breakdown))
		for key := range report.Breakdown {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		contents := make([][]string, 0, len(keys))
		for _, key := range keys {
			bucket := report.Breakdown[key]
			contents = append(contents, []string{
				key,
				fmt.Sprintf("%d", bucket.Count),
				formatDuration(bucket.Seconds),
			})
		}
		table(m, []string{"Period", "Entries", "Time"}, contents)
	} else {
		contents := make([][]string, 0, len(report.Entries))
		for _, entry := range report.Entries {
			contents = append(contents, []string{
				entry.StartTime.Format("2006-01-02 15:04"),
				entry.JobID,
				formatDuration(entry.Duration),
			})
		}
		table(m, []string{"Started", "Job", "Time"}, contents)
	}

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(
				fmt.Sprintf("Total: %s over %d entries on %d jobs", formatDuration(report.TotalSeconds), report.EntryCount, report.JobCount),
				props.Text{Top: 4, Style: consts.Bold, Size: 11},
			)
		})
	})

	return m.OutputFileAndClose(path)
}

// EstimatePDF writes a quote: client header, line items and the VAT summary.
func EstimatePDF(path string, estimate *model.Estimate) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	title := estimate.Title
	if title == "" {
		title = fmt.Sprintf("Quote #%s", estimate.ID)
	}
	registerHeader(m, title, fmt.Sprintf("Status: %s", estimate.Status))

	contents := make([][]string, 0, len(estimate.Items))
	for _, item := range estimate.Items {
		contents = append(contents, []string{
			item.Description,
			fmt.Sprintf("%.2f", item.Quantity),
			fmt.Sprintf("%.2f", item.Rate),
			fmt.Sprintf("%.2f", item.Quantity*item.Rate),
		})
	}
	table(m, []string{"Item", "Qty", "Rate", "Amount"}, contents)

	for _, line := range []struct {
		label string
		value float64
	}{
		{"Subtotal", estimate.Subtotal},
		{fmt.Sprintf("VAT %.0f%%", estimate.TaxRate), estimate.Tax},
		{"Total", estimate.Total},
	} {
		label, value := line.label, line.value
		m.Row(8, func() {
			m.Col(9, func() {
				m.Text(label, props.Text{Top: 2, Align: consts.Right, Size: 10})
			})
			m.Col(3, func() {
				m.Text(fmt.Sprintf("%.2f", value), props.Text{Top: 2, Align: consts.Right, Style: consts.Bold, Size: 10})
			})
		})
	}

	return m.OutputFileAndClose(path)
}

func registerHeader(m pdf.Maroto, title, subtitle string) {
	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(subtitle, props.Text{
					Top:   3,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})
}

func table(m pdf.Maroto, headers []string, contents [][]string) {
	m.TableList(headers, contents, props.TableList{
		HeaderProp: props.TableListContent{
			Size: 10,
		},
		ContentProp: props.TableListContent{
			Size: 9,
		},
		Align:              consts.Left,
		HeaderContentSpace: 1,
		Line:               true,
	})
}

func formatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
