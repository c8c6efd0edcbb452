// Package formatter defines how run summaries and debug traces are reported.
package formatter

import (
	"github.com/jacoelho/jsonlist/internal/results"
)

// Formatter defines the interface for different output formats.
// Implementations are responsible for determining the output device (stdout, file, etc.).
type Formatter interface {
	// Format automatically determines whether to format as single or aggregated results
	// based on the number of summaries provided. The formatter decides where to output.
	Format(summaries ...*results.Summary) error

	// Debug reports one trace entry, such as a step's inputs or its result.
	Debug(label, text string) error
}
