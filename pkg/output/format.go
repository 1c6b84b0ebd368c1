// Package output provides utilities for formatting and displaying calculator
// reports.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/nivesh-tools/nivesh-calc/internal/report"
)

// PrettyFormat writes a human-readable rather than machine-readable rendering
// of the reports.
func PrettyFormat(w io.Writer, reports []report.Report) {
	for i, r := range reports {
		fmt.Fprintf(w, "--- Results for plan %s (%s) ---\n", r.Name, r.Kind)

		labelWidth := 0
		for _, line := range r.Lines {
			if len(line.Label) > labelWidth {
				labelWidth = len(line.Label)
			}
		}
		for _, line := range r.Lines {
			fmt.Fprintf(w, "%-*s : %s\n", labelWidth, line.Label, line.Value)
		}

		if r.Breakdown != nil {
			fmt.Fprintf(w, "\n")
			writeTable(w, r.Breakdown)
		}

		if i < len(reports)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

func writeTable(w io.Writer, table *report.Table) {
	widths := make([]int, len(table.Headers))
	for i, header := range table.Headers {
		widths[i] = len(header)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	cells := make([]string, len(table.Headers))
	for i, header := range table.Headers {
		cells[i] = fmt.Sprintf("%-*s", widths[i], header)
	}
	fmt.Fprintf(w, "%s\n", strings.Join(cells, " | "))

	for i, width := range widths {
		cells[i] = strings.Repeat("_", width)
	}
	fmt.Fprintf(w, "%s\n", strings.Join(cells, " | "))

	for _, row := range table.Rows {
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintf(w, "%s\n", strings.Join(cells, " | "))
	}
}

// CsvFormat writes the reports in comma-separated value format: one summary
// block for all plans, then one block per breakdown table.
func CsvFormat(w io.Writer, reports []report.Report) {
	fmt.Fprintf(w, `"plan","kind","field","value"`)
	fmt.Fprintf(w, "\n")
	for _, r := range reports {
		for _, line := range r.Lines {
			fmt.Fprintf(w, `"%s","%s","%s","%s"`, r.Name, r.Kind, line.Label, line.Value)
			fmt.Fprintf(w, "\n")
		}
	}

	for _, r := range reports {
		if r.Breakdown == nil {
			continue
		}
		fmt.Fprintf(w, `"plan","kind"`)
		for _, header := range r.Breakdown.Headers {
			fmt.Fprintf(w, `,"%s"`, header)
		}
		fmt.Fprintf(w, "\n")
		for _, row := range r.Breakdown.Rows {
			fmt.Fprintf(w, `"%s","%s"`, r.Name, r.Kind)
			for _, cell := range row {
				fmt.Fprintf(w, `,"%s"`, cell)
			}
			fmt.Fprintf(w, "\n")
		}
	}
}
