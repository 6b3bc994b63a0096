package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"linfer/app"
	"linfer/domain/dataset"
	"linfer/internal/testkit"
)

func TestExport_WritesWorkbook(t *testing.T) {
	kit := testkit.NewTestKit()
	opts := testkit.FastSampleOptions(42)
	result, err := kit.AnalysisService().Run(context.Background(), app.RunRequest{
		Params:      dataset.DefaultParams(42),
		SamplerOpts: &opts,
		KeepDataset: true,
	})
	if err != nil {
		t.Fatalf("pipeline run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "run.xlsx")
	if err := NewExporter().Export(result, path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetDataset)
	if err != nil {
		t.Fatalf("read dataset sheet: %v", err)
	}
	// Header plus one row per observation
	if len(rows) != result.Dataset.Len()+1 {
		t.Errorf("dataset rows: got %d, want %d", len(rows), result.Dataset.Len()+1)
	}

	fits, err := f.GetRows(sheetFits)
	if err != nil {
		t.Fatalf("read fits sheet: %v", err)
	}
	// Header, intercept, slope, sigma
	if len(fits) != 4 {
		t.Errorf("fits rows: got %d, want 4", len(fits))
	}
	if fits[1][0] != "intercept" || fits[2][0] != "slope" || fits[3][0] != "sigma" {
		t.Errorf("unexpected fit row order: %v %v %v", fits[1][0], fits[2][0], fits[3][0])
	}
}

func TestExport_WithoutRetainedObservations(t *testing.T) {
	kit := testkit.NewTestKit()
	opts := testkit.FastSampleOptions(7)
	result, err := kit.AnalysisService().Run(context.Background(), app.RunRequest{
		Params:      dataset.DefaultParams(7),
		SamplerOpts: &opts,
	})
	if err != nil {
		t.Fatalf("pipeline run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "slim.xlsx")
	if err := NewExporter().Export(result, path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	note, err := f.GetCellValue(sheetDataset, "A2")
	if err != nil {
		t.Fatalf("read note cell: %v", err)
	}
	if note != "observations not retained" {
		t.Errorf("expected retention note, got %q", note)
	}
}
