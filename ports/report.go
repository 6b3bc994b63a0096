package ports

import (
	"linfer/domain/diagnostic"
	"linfer/domain/run"
)

// ReportRenderer turns a run into human-readable artifacts.
// The rendered report is the only persisted artifact whose layout
// matters to nobody but the reader.
type ReportRenderer interface {
	// BuildMarkdown produces the side-by-side comparison report
	BuildMarkdown(r *run.AnalysisRun) string

	// BuildDiagnosticMarkdown produces the worked Bayes-rule report
	BuildDiagnosticMarkdown(res *diagnostic.Result) string

	// RenderHTML converts a markdown report to HTML
	RenderHTML(md string) []byte
}

// Exporter writes a run to an external workbook or file
type Exporter interface {
	Export(r *run.AnalysisRun, path string) error
}
