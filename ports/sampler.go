package ports

import (
	"context"

	"linfer/domain/dataset"
	"linfer/domain/regression"
)

// SampleOptions controls one sampler invocation.
// Seed is explicit so a run can be replayed; the worked examples the
// module reproduces never fixed one, so callers comparing across
// invocations should assert proximity, not equality.
type SampleOptions struct {
	Seed   int64   `json:"seed"`
	Draws  int     `json:"draws"`   // Retained draws per chain
	BurnIn int     `json:"burn_in"` // Discarded leading draws per chain
	Chains int     `json:"chains"`
	Level  float64 `json:"level"` // Credible interval level, e.g. 0.95
}

// DefaultSampleOptions returns the standard sampling configuration
func DefaultSampleOptions(seed int64) SampleOptions {
	return SampleOptions{
		Seed:   seed,
		Draws:  2000,
		BurnIn: 500,
		Chains: 4,
		Level:  0.95,
	}
}

// SamplerPort is the narrow interface to an external Bayesian
// regression sampler: dataset + declared prior in, posterior draws
// out. The sampling algorithm behind it is deliberately opaque.
type SamplerPort interface {
	Sample(ctx context.Context, ds *dataset.SyntheticDataset, prior regression.Prior, opts SampleOptions) (*regression.PosteriorFit, error)
}
