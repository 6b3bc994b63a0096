package simulate

import (
	"context"

	"linfer/domain/dataset"
	"linfer/ports"
)

// Simulator draws synthetic linear data from a single seeded stream.
// Draw order is fixed: x for all n first, then noise for all n, so a
// given seed reproduces byte-identical sequences across runs.
type Simulator struct {
	rng ports.RNGPort
}

// NewSimulator creates a simulator backed by the given RNG port
func NewSimulator(rng ports.RNGPort) *Simulator {
	return &Simulator{rng: rng}
}

// Simulate generates n pairs with x ~ Uniform(xMin, xMax) and
// y = beta*x + Normal(0, sigma) noise.
func (s *Simulator) Simulate(ctx context.Context, params dataset.GeneratingParams) (*dataset.SyntheticDataset, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	stream, err := s.rng.SeededStream(ctx, "simulate", params.Seed)
	if err != nil {
		return nil, err
	}

	width := params.XMax - params.XMin
	x := make([]float64, params.N)
	for i := range x {
		x[i] = params.XMin + width*stream.Float64()
	}

	y := make([]float64, params.N)
	for i := range y {
		y[i] = params.Beta*x[i] + params.Sigma*stream.NormFloat64()
	}

	return dataset.New(params, x, y)
}

var _ ports.SimulatorPort = (*Simulator)(nil)
