package ports

import (
	"context"

	"linfer/domain/core"
	"linfer/domain/run"
)

// RunRepository persists completed analysis runs
type RunRepository interface {
	Create(ctx context.Context, r *run.AnalysisRun) error
	GetByID(ctx context.Context, id core.RunID) (*run.AnalysisRun, error)
	List(ctx context.Context, limit int) ([]*run.AnalysisRun, error)
}
