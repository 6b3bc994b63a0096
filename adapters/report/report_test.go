package report

import (
	"context"
	"strings"
	"testing"

	"linfer/app"
	"linfer/domain/dataset"
	"linfer/domain/diagnostic"
	"linfer/internal/testkit"
)

func TestBuildMarkdown_ContainsBothFits(t *testing.T) {
	kit := testkit.NewTestKit()
	opts := testkit.FastSampleOptions(42)
	result, err := kit.AnalysisService().Run(context.Background(), app.RunRequest{
		Params:      dataset.DefaultParams(42),
		SamplerOpts: &opts,
	})
	if err != nil {
		t.Fatalf("pipeline run: %v", err)
	}

	md := NewRenderer().BuildMarkdown(result)

	for _, want := range []string{
		"## Frequentist fit (OLS)",
		"## Bayesian fit",
		"## Interval comparison",
		"Prior: coefficients ~ Normal",
		result.Fingerprint().String(),
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestBuildDiagnosticMarkdown(t *testing.T) {
	res, err := diagnostic.Posterior(diagnostic.TestScenario{
		Prevalence: 0.10, Sensitivity: 0.93, Specificity: 0.98,
	})
	if err != nil {
		t.Fatalf("posterior: %v", err)
	}

	md := NewRenderer().BuildDiagnosticMarkdown(res)
	if !strings.Contains(md, "P(condition | positive test)") {
		t.Error("diagnostic report missing posterior line")
	}
	if !strings.Contains(md, "0.34") {
		t.Errorf("diagnostic report should show the rounded posterior, got:\n%s", md)
	}
}

func TestRenderHTML(t *testing.T) {
	html := NewRenderer().RenderHTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

	s := string(html)
	if !strings.Contains(s, "<h1") {
		t.Error("expected rendered heading")
	}
	if !strings.Contains(s, "<table") {
		t.Error("expected rendered table")
	}
}
