package output

import (
	"encoding/json"
	"io"

	"paperbill/core/engine"
)

// JSONFormatter renders a bill as indented JSON
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// jsonBill is the stable JSON output shape
type jsonBill struct {
	Month   int        `json:"month"`
	Year    int        `json:"year"`
	Papers  []jsonLine `json:"papers"`
	Total   string     `json:"total"`
	LogID   string     `json:"log_id,omitempty"`
}

type jsonLine struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Cost             string   `json:"cost"`
	UndeliveredDates []string `json:"undelivered_dates,omitempty"`
	Skipped          []string `json:"skipped_tokens,omitempty"`
}

// Render writes the bill as JSON. Costs are fixed-point strings so no reader
// reintroduces float rounding.
func (f *JSONFormatter) Render(w io.Writer, bill *engine.Bill, opts Options) error {
	out := jsonBill{
		Month: bill.Spec.Month,
		Year:  bill.Spec.Year,
		Total: bill.Total.StringFixed(2),
		LogID: bill.LogID,
	}

	for _, line := range bill.Lines {
		jl := jsonLine{
			ID:   line.PaperID,
			Name: line.Name,
			Cost: line.Cost.StringFixed(2),
		}
		if opts.ShowUndelivered {
			for _, d := range line.UndeliveredDates {
				jl.UndeliveredDates = append(jl.UndeliveredDates, d.String())
			}
		}
		for _, skip := range line.Skipped {
			jl.Skipped = append(jl.Skipped, skip.Token)
		}
		out.Papers = append(out.Papers, jl)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
