package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"paperbill/core/engine"
)

// TableFormatter renders a bill as a formatted terminal table
type TableFormatter struct{}

// Format returns the format type
func (f *TableFormatter) Format() Format {
	return FormatTable
}

// Render writes the bill as a table with one row per paper and a grand-total
// footer. Skipped tokens are listed beneath the table as warnings.
func (f *TableFormatter) Render(w io.Writer, bill *engine.Bill, opts Options) error {
	fmt.Fprintf(w, "Bill for %s\n\n", bill.Spec)

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Paper", "Missed", "Cost"}
	if opts.ShowUndelivered {
		header = append(header, "Undelivered Dates")
	}
	t.AppendHeader(header)

	for _, line := range bill.Lines {
		row := table.Row{line.Name, len(line.UndeliveredDates), line.Cost.StringFixed(2)}
		if opts.ShowUndelivered {
			row = append(row, formatDates(line))
		}
		t.AppendRow(row)
	}

	t.AppendSeparator()
	footer := table.Row{text.Bold.Sprint("Total"), "", text.Bold.Sprint(bill.Total.StringFixed(2))}
	if opts.ShowUndelivered {
		footer = append(footer, "")
	}
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.Render()

	for _, line := range bill.Lines {
		for _, skip := range line.Skipped {
			fmt.Fprintf(w, "warning: %s: token %q matched no dates (%s)\n",
				line.Name, skip.Token, skip.Reason)
		}
	}

	if bill.LogID != "" {
		fmt.Fprintf(w, "\nLogged as %s\n", bill.LogID)
	}

	return nil
}

func formatDates(line engine.BillLine) string {
	if len(line.UndeliveredDates) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(line.UndeliveredDates))
	for _, d := range line.UndeliveredDates {
		parts = append(parts, fmt.Sprintf("%02d", d.Day))
	}
	return strings.Join(parts, ", ")
}
