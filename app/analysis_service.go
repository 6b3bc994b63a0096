package app

import (
	"context"

	"linfer/domain/core"
	"linfer/domain/dataset"
	"linfer/domain/regression"
	"linfer/domain/run"
	"linfer/internal/errors"
	"linfer/ports"
)

// AnalysisService orchestrates the full pipeline: simulate, fit both
// ways on the same dataset, compare, persist.
type AnalysisService struct {
	simulator ports.SimulatorPort
	fitter    ports.FitterPort
	sampler   ports.SamplerPort
	runs      ports.RunRepository
}

// RunRequest defines the inputs for one analysis run
type RunRequest struct {
	Params      dataset.GeneratingParams `json:"params"`
	Level       float64                  `json:"level"` // Interval level, defaults to 0.95
	Prior       *regression.Prior        `json:"prior,omitempty"`
	SamplerOpts *ports.SampleOptions     `json:"sampler_opts,omitempty"`
	KeepDataset bool                     `json:"keep_dataset"` // Retain raw observations on the run
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(simulator ports.SimulatorPort, fitter ports.FitterPort, sampler ports.SamplerPort, runs ports.RunRepository) *AnalysisService {
	return &AnalysisService{
		simulator: simulator,
		fitter:    fitter,
		sampler:   sampler,
		runs:      runs,
	}
}

// Run executes the pipeline and persists the completed run.
// Both fits consume the identical dataset; the comparison fails if the
// fingerprints recorded on the two fits ever diverge.
func (s *AnalysisService) Run(ctx context.Context, req RunRequest) (*run.AnalysisRun, error) {
	level := req.Level
	if level == 0 {
		level = 0.95
	}

	ds, err := s.simulator.Simulate(ctx, req.Params)
	if err != nil {
		return nil, errors.Wrap(err, "simulation failed")
	}

	freq, err := s.fitter.Fit(ctx, ds, level)
	if err != nil {
		return nil, errors.Wrap(err, "frequentist fit failed")
	}

	prior := regression.WeaklyInformativePrior()
	if req.Prior != nil {
		prior = *req.Prior
	}
	opts := ports.DefaultSampleOptions(req.Params.Seed)
	if req.SamplerOpts != nil {
		opts = *req.SamplerOpts
	}
	opts.Level = level

	post, err := s.sampler.Sample(ctx, ds, prior, opts)
	if err != nil {
		return nil, errors.Wrap(err, "bayesian fit failed")
	}

	comparison, err := regression.Compare(freq, post)
	if err != nil {
		return nil, errors.Wrap(err, "interval comparison failed")
	}

	result := &run.AnalysisRun{
		ID:          core.RunID(core.NewID()),
		Status:      run.StatusCompleted,
		Params:      req.Params,
		Dataset:     ds,
		Frequentist: freq,
		Posterior:   post,
		Comparison:  comparison,
		CreatedAt:   core.Now(),
	}
	if !req.KeepDataset {
		// Persist the fingerprint through the fits, not the raw points
		slim := *ds
		slim.X = nil
		slim.Y = nil
		result.Dataset = &slim
	}

	if s.runs != nil {
		if err := s.runs.Create(ctx, result); err != nil {
			return nil, errors.Wrap(err, "failed to persist run")
		}
	}

	return result, nil
}

// GetRun retrieves a persisted run by ID
func (s *AnalysisService) GetRun(ctx context.Context, id core.RunID) (*run.AnalysisRun, error) {
	if s.runs == nil {
		return nil, core.ErrRunNotFound
	}
	return s.runs.GetByID(ctx, id)
}

// ListRuns returns recent runs, newest first
func (s *AnalysisService) ListRuns(ctx context.Context, limit int) ([]*run.AnalysisRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.List(ctx, limit)
}
