// Package cli implements the featuremap command-line interface.
//
// The CLI is a thin layer over [pipeline.Runner]: each command binds cobra
// flags onto a [pipeline.Options], runs one or more pipeline stages and
// writes the results. Logging goes through charmbracelet/log; status lines
// and tables are styled with lipgloss.
//
// # Commands
//
//   - render: draw a record to SVG, PNG, PDF or JSON
//   - layout: write the computed layout plan as JSON
//   - crop: cut a record down to a coordinate window
//   - inspect: browse features, levels and label rows interactively
//   - overlaps: draw the feature overlap graph with Graphviz
//   - serve: run the HTTP API
//   - store: manage named records
//   - cache: manage the pipeline cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

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

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Rendered pUC19 (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
