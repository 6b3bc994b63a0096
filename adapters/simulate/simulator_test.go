package simulate

import (
	"context"
	"testing"

	"linfer/domain/dataset"
)

func TestSimulate_DeterministicForFixedSeed(t *testing.T) {
	sim := NewSimulator(NewRNG())
	ctx := context.Background()
	params := dataset.DefaultParams(42)

	a, err := sim.Simulate(ctx, params)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	b, err := sim.Simulate(ctx, params)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if a.Fingerprint != b.Fingerprint {
		t.Fatalf("same seed produced different data: %s vs %s", a.Fingerprint, b.Fingerprint)
	}
	for i := range a.X {
		if a.X[i] != b.X[i] || a.Y[i] != b.Y[i] {
			t.Fatalf("observation %d differs: (%v, %v) vs (%v, %v)", i, a.X[i], a.Y[i], b.X[i], b.Y[i])
		}
	}
}

func TestSimulate_DifferentSeedsDiffer(t *testing.T) {
	sim := NewSimulator(NewRNG())
	ctx := context.Background()

	a, _ := sim.Simulate(ctx, dataset.DefaultParams(1))
	b, _ := sim.Simulate(ctx, dataset.DefaultParams(2))

	if a.Fingerprint == b.Fingerprint {
		t.Error("different seeds produced identical data")
	}
}

func TestSimulate_RespectsParams(t *testing.T) {
	sim := NewSimulator(NewRNG())
	params := dataset.DefaultParams(42)

	ds, err := sim.Simulate(context.Background(), params)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if ds.Len() != params.N {
		t.Errorf("length: got %d, want %d", ds.Len(), params.N)
	}
	for i, x := range ds.X {
		if x < params.XMin || x > params.XMax {
			t.Errorf("x[%d] = %v outside [%v, %v]", i, x, params.XMin, params.XMax)
		}
	}
}

func TestSimulate_RejectsInvalidParams(t *testing.T) {
	sim := NewSimulator(NewRNG())

	bad := dataset.GeneratingParams{Seed: 1, N: 1, Beta: 1, Sigma: 1, XMin: -1, XMax: 1}
	if _, err := sim.Simulate(context.Background(), bad); err == nil {
		t.Error("expected validation error for n=1")
	}
}

func TestRNG_ValidateSeed(t *testing.T) {
	rng := NewRNG()
	ctx := context.Background()

	stream, err := rng.SeededStream(ctx, "probe", 7)
	if err != nil {
		t.Fatalf("seeded stream failed: %v", err)
	}
	expected := []float64{stream.Float64(), stream.Float64(), stream.Float64()}

	if err := rng.ValidateSeed(ctx, "probe", 7, expected); err != nil {
		t.Errorf("seed validation should pass for its own draws: %v", err)
	}
	if err := rng.ValidateSeed(ctx, "probe", 8, expected); err == nil {
		t.Error("seed validation should fail for a different seed")
	}
}
