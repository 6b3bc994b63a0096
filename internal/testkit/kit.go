package testkit

import (
	"context"
	"sort"
	"sync"

	"linfer/adapters/gibbs"
	"linfer/adapters/ols"
	"linfer/adapters/simulate"
	"linfer/app"
	"linfer/domain/core"
	"linfer/domain/dataset"
	"linfer/domain/run"
	"linfer/ports"
)

// TestKit wires the pipeline against in-memory storage for tests and
// local serving without a database.
type TestKit struct {
	runs *InMemoryRunRepository
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{runs: NewInMemoryRunRepository()}
}

// RunRepository returns the shared in-memory run repository
func (t *TestKit) RunRepository() ports.RunRepository {
	return t.runs
}

// AnalysisService builds a fully wired analysis service
func (t *TestKit) AnalysisService() *app.AnalysisService {
	rng := simulate.NewRNG()
	return app.NewAnalysisService(
		simulate.NewSimulator(rng),
		ols.NewFitter(),
		gibbs.NewSampler(),
		t.runs,
	)
}

// FixtureDataset generates the canonical dataset (seed 42, n=100,
// beta=1, sigma=2) used throughout the tests.
func (t *TestKit) FixtureDataset() (*dataset.SyntheticDataset, error) {
	sim := simulate.NewSimulator(simulate.NewRNG())
	return sim.Simulate(context.Background(), dataset.DefaultParams(42))
}

// FastSampleOptions returns sampler options small enough for tests
// while keeping estimates stable.
func FastSampleOptions(seed int64) ports.SampleOptions {
	return ports.SampleOptions{
		Seed:   seed,
		Draws:  500,
		BurnIn: 200,
		Chains: 2,
		Level:  0.95,
	}
}

// InMemoryRunRepository implements ports.RunRepository for testing
type InMemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]*run.AnalysisRun
}

// NewInMemoryRunRepository creates an empty in-memory repository
func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{runs: make(map[core.RunID]*run.AnalysisRun)}
}

// Create stores a run
func (r *InMemoryRunRepository) Create(ctx context.Context, ar *run.AnalysisRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[ar.ID] = ar
	return nil
}

// GetByID retrieves a run by ID
func (r *InMemoryRunRepository) GetByID(ctx context.Context, id core.RunID) (*run.AnalysisRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ar, ok := r.runs[id]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return ar, nil
}

// List returns stored runs, newest first
func (r *InMemoryRunRepository) List(ctx context.Context, limit int) ([]*run.AnalysisRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*run.AnalysisRun, 0, len(r.runs))
	for _, ar := range r.runs {
		all = append(all, ar)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[j].CreatedAt.Before(all[i].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

var _ ports.RunRepository = (*InMemoryRunRepository)(nil)
