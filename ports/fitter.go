package ports

import (
	"context"

	"linfer/domain/dataset"
	"linfer/domain/regression"
)

// FitterPort computes a closed-form frequentist fit.
// Pure: same dataset and level always produce the same result.
type FitterPort interface {
	// Fit runs ordinary least squares and builds two-sided confidence
	// intervals at the given level using Student's t with n-2 df.
	Fit(ctx context.Context, ds *dataset.SyntheticDataset, level float64) (*regression.FrequentistFit, error)
}
