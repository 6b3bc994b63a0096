package ports

import (
	"context"

	"linfer/domain/dataset"
)

// SimulatorPort generates synthetic paired observations.
// The contract is bit-reproducibility: for a fixed seed the same
// (x, y) sequence must come back on every invocation, with all x
// drawn before any noise.
type SimulatorPort interface {
	Simulate(ctx context.Context, params dataset.GeneratingParams) (*dataset.SyntheticDataset, error)
}
