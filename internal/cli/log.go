// Package cli implements the piechart command-line interface.
//
// The CLI mirrors the two pipeline stages: `layout` computes a portable
// layout.json from a dataset, `visualize` renders a layout to SVG, PNG, PDF
// or JSON, and `render` does both in one step. Results of both stages are
// cached in the backend selected by the configuration file.
//
// # Commands
//
//   - layout: compute a chart layout from a JSON, TOML or Mermaid dataset
//   - visualize: render a layout.json file
//   - render: dataset straight to output files
//   - inspect: browse slice geometry and label placement in a table
//   - serve: run the HTTP API
//   - cache: clear or locate the cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging through
// charmbracelet/log. User-facing results are printed separately with
// lipgloss styles.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
