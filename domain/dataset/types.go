package dataset

import (
	"fmt"

	"linfer/domain/core"
)

// GeneratingParams fixes everything needed to reproduce a synthetic dataset.
// INVARIANTS:
// - N > 2 (two coefficients plus at least one residual degree of freedom)
// - Sigma > 0
// - XMin < XMax
type GeneratingParams struct {
	Seed  int64   `json:"seed"`
	N     int     `json:"n"`
	Beta  float64 `json:"beta"`  // True slope
	Sigma float64 `json:"sigma"` // Noise standard deviation
	XMin  float64 `json:"x_min"`
	XMax  float64 `json:"x_max"`
}

// DefaultParams mirrors the canonical worked example: 100 points on
// y = x + noise with sigma 2, x uniform on [-10, 10].
func DefaultParams(seed int64) GeneratingParams {
	return GeneratingParams{
		Seed:  seed,
		N:     100,
		Beta:  1.0,
		Sigma: 2.0,
		XMin:  -10.0,
		XMax:  10.0,
	}
}

// Validate checks the parameter invariants
func (p GeneratingParams) Validate() error {
	if p.N <= 2 {
		return core.NewValidationError(core.ErrInvalidParams, fmt.Sprintf("n must exceed 2, got %d", p.N))
	}
	if p.Sigma <= 0 {
		return core.NewValidationError(core.ErrInvalidParams, fmt.Sprintf("sigma must be positive, got %g", p.Sigma))
	}
	if p.XMin >= p.XMax {
		return core.NewValidationError(core.ErrInvalidParams, fmt.Sprintf("x range [%g, %g] is empty", p.XMin, p.XMax))
	}
	return nil
}

// SyntheticDataset holds paired observations generated once per run.
// Immutable after creation; both fitting procedures consume the same
// instance and record its fingerprint so the comparison stays honest.
type SyntheticDataset struct {
	ID          core.DatasetID          `json:"id"`
	Params      GeneratingParams        `json:"params"`
	X           []float64               `json:"x"`
	Y           []float64               `json:"y"`
	Fingerprint core.DatasetFingerprint `json:"fingerprint"`
	CreatedAt   core.Timestamp          `json:"created_at"`
}

// New assembles a dataset from generated observations and stamps its
// deterministic fingerprint.
func New(params GeneratingParams, x, y []float64) (*SyntheticDataset, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(x) != params.N || len(y) != params.N {
		return nil, core.NewValidationError(core.ErrInvalidParams,
			fmt.Sprintf("expected %d observations, got %d x / %d y", params.N, len(x), len(y)))
	}

	return &SyntheticDataset{
		ID:          core.DatasetID(core.NewID()),
		Params:      params,
		X:           x,
		Y:           y,
		Fingerprint: core.DatasetFingerprint(core.HashFloats(x, y)),
		CreatedAt:   core.Now(),
	}, nil
}

// Len returns the number of paired observations
func (d *SyntheticDataset) Len() int {
	return len(d.X)
}

// VerifyFingerprint recomputes the fingerprint and compares it to the
// stored one, guarding against mutation between the two fits.
func (d *SyntheticDataset) VerifyFingerprint() error {
	got := core.DatasetFingerprint(core.HashFloats(d.X, d.Y))
	if got != d.Fingerprint {
		return core.ErrHashMismatch
	}
	return nil
}
