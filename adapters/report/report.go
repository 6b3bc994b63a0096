package report

import (
	"fmt"
	"strings"

	"linfer/domain/diagnostic"
	"linfer/domain/regression"
	"linfer/domain/run"
	"linfer/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer builds the side-by-side comparison report. The layout is
// for human inspection only; nothing downstream parses it.
type Renderer struct{}

// NewRenderer creates a report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// BuildMarkdown produces the comparison report for a completed run
func (r *Renderer) BuildMarkdown(ar *run.AnalysisRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis run %s\n\n", ar.ID)
	fmt.Fprintf(&b, "Generated %s for seed %d, n=%d, true beta=%g, sigma=%g, x in [%g, %g].\n\n",
		ar.CreatedAt, ar.Params.Seed, ar.Params.N, ar.Params.Beta, ar.Params.Sigma,
		ar.Params.XMin, ar.Params.XMax)
	fmt.Fprintf(&b, "Dataset fingerprint: `%s`\n\n", ar.Fingerprint())

	b.WriteString("## Frequentist fit (OLS)\n\n")
	freq := ar.Frequentist
	fmt.Fprintf(&b, "- Residual standard error: %.4f on %d degrees of freedom\n",
		freq.ResidualStdError, freq.DegreesOfFreedom)
	fmt.Fprintf(&b, "- R-squared: %.4f\n\n", freq.RSquared)
	b.WriteString("| Parameter | Estimate | Std. Error | CI |\n")
	b.WriteString("|---|---|---|---|\n")
	writeCoefficientRow(&b, freq.Intercept)
	writeCoefficientRow(&b, freq.Slope)
	b.WriteString("\n")

	b.WriteString("## Bayesian fit\n\n")
	post := ar.Posterior
	fmt.Fprintf(&b, "Prior: %s\n\n", post.Prior)
	fmt.Fprintf(&b, "%d retained draws across %d chains.\n\n", post.DrawCount, post.Chains)
	b.WriteString("| Parameter | Posterior mean | Posterior median | Credible interval |\n")
	b.WriteString("|---|---|---|---|\n")
	writePosteriorRow(&b, post.Intercept)
	writePosteriorRow(&b, post.Slope)
	writePosteriorRow(&b, post.Sigma)
	b.WriteString("\n")

	b.WriteString("## Interval comparison\n\n")
	b.WriteString("| Parameter | OLS estimate | Posterior median | Confidence interval | Credible interval | Overlap |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	writeComparisonRow(&b, ar.Comparison.Intercept)
	writeComparisonRow(&b, ar.Comparison.Slope)
	b.WriteString("\n")
	b.WriteString("The two interval kinds answer different questions and are shown side by side, not merged.\n")

	return b.String()
}

// BuildDiagnosticMarkdown produces the worked Bayes-rule report
func (r *Renderer) BuildDiagnosticMarkdown(res *diagnostic.Result) string {
	var b strings.Builder

	b.WriteString("# Diagnostic test example\n\n")
	s := res.Scenario
	fmt.Fprintf(&b, "Prevalence %.2f, sensitivity %.2f, specificity %.2f (false-positive rate %.2f).\n\n",
		s.Prevalence, s.Sensitivity, s.Specificity, s.FalsePositiveRate())
	fmt.Fprintf(&b, "- P(positive test) = %.4f\n", res.PositiveRate)
	fmt.Fprintf(&b, "- P(condition | positive test) = %.4f (rounds to %.2f)\n",
		res.PosteriorPositive, res.PosteriorPositive)

	return b.String()
}

// RenderHTML converts a markdown report to HTML
func (r *Renderer) RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func writeCoefficientRow(b *strings.Builder, c regression.Coefficient) {
	fmt.Fprintf(b, "| %s | %.4f | %.4f | %s |\n", c.Key, c.Estimate, c.StdError, formatInterval(c.Confidence))
}

func writePosteriorRow(b *strings.Builder, p regression.PosteriorParam) {
	fmt.Fprintf(b, "| %s | %.4f | %.4f | %s |\n", p.Key, p.Mean, p.Median, formatInterval(p.Credible))
}

func writeComparisonRow(b *strings.Builder, c regression.ParamComparison) {
	fmt.Fprintf(b, "| %s | %.4f | %.4f | %s | %s | %.0f%% |\n",
		c.Key, c.PointEstimate, c.PosteriorMedian,
		formatInterval(c.Confidence), formatInterval(c.Credible), 100*c.OverlapFraction)
}

func formatInterval(iv regression.Interval) string {
	return fmt.Sprintf("%.0f%% [%.4f, %.4f]", 100*iv.Level, iv.Lower, iv.Upper)
}

var _ ports.ReportRenderer = (*Renderer)(nil)
