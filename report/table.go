package report

import (
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders a console summary for one dataset. The arrhythmia
// verdict is highlighted in red when positive.
func WriteTable(w io.Writer, s Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(s.Dataset)
	t.AppendHeader(table.Row{"Feature", "Value"})

	for _, row := range s.Rows() {
		value := row.Value
		if value == "" {
			value = "n/a"
		}
		if row.Feature == "Arrhythmia Detected" && s.Verdict.IrregularHeartRate {
			value = color.New(color.FgRed, color.Bold).Sprint(value)
		}
		t.AppendRow(table.Row{row.Feature, value})
	}

	t.Render()
}
