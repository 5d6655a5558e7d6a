// Package output renders a month's bill for humans and machines.
package output

import (
	"io"

	"paperbill/core/engine"
	"paperbill/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Options controls how a bill is displayed
type Options struct {
	// ShowUndelivered includes each paper's resolved non-delivery dates
	ShowUndelivered bool
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the bill
	Render(w io.Writer, bill *engine.Bill, opts Options) error
}

// NewFormatter returns the formatter for a format type
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatTable:
		return &TableFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format: %s", format)
	}
}
