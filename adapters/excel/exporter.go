package excel

import (
	"fmt"

	"linfer/domain/regression"
	"linfer/domain/run"
	"linfer/ports"

	"github.com/xuri/excelize/v2"
)

const (
	sheetDataset = "Dataset"
	sheetFits    = "Fits"
)

// Exporter writes a completed run to an xlsx workbook: one sheet with
// the raw observations (when retained), one with both fits side by side.
type Exporter struct{}

// NewExporter creates a workbook exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the run to path
func (e *Exporter) Export(ar *run.AnalysisRun, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeDatasetSheet(f, ar); err != nil {
		return fmt.Errorf("failed to write dataset sheet: %w", err)
	}
	if err := e.writeFitsSheet(f, ar); err != nil {
		return fmt.Errorf("failed to write fits sheet: %w", err)
	}

	// Drop the default sheet excelize creates
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeDatasetSheet(f *excelize.File, ar *run.AnalysisRun) error {
	if _, err := f.NewSheet(sheetDataset); err != nil {
		return err
	}

	headers := []interface{}{"x", "y"}
	if err := f.SetSheetRow(sheetDataset, "A1", &headers); err != nil {
		return err
	}

	if ar.Dataset == nil || len(ar.Dataset.X) == 0 {
		note := []interface{}{"observations not retained", ar.Fingerprint().String()}
		return f.SetSheetRow(sheetDataset, "A2", &note)
	}

	for i := range ar.Dataset.X {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{ar.Dataset.X[i], ar.Dataset.Y[i]}
		if err := f.SetSheetRow(sheetDataset, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeFitsSheet(f *excelize.File, ar *run.AnalysisRun) error {
	if _, err := f.NewSheet(sheetFits); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"parameter", "ols estimate", "ols std error", "ci lower", "ci upper",
			"posterior mean", "posterior median", "cri lower", "cri upper"},
		fitRow(ar.Frequentist.Intercept, ar.Posterior.Intercept),
		fitRow(ar.Frequentist.Slope, ar.Posterior.Slope),
		{"sigma", ar.Frequentist.ResidualStdError, nil, nil, nil,
			ar.Posterior.Sigma.Mean, ar.Posterior.Sigma.Median,
			ar.Posterior.Sigma.Credible.Lower, ar.Posterior.Sigma.Credible.Upper},
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheetFits, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func fitRow(c regression.Coefficient, p regression.PosteriorParam) []interface{} {
	return []interface{}{
		c.Key.String(), c.Estimate, c.StdError,
		c.Confidence.Lower, c.Confidence.Upper,
		p.Mean, p.Median, p.Credible.Lower, p.Credible.Upper,
	}
}

var _ ports.Exporter = (*Exporter)(nil)
