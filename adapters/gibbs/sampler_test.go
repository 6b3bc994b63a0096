package gibbs

import (
	"context"
	"math"
	"testing"

	"linfer/adapters/ols"
	"linfer/adapters/simulate"
	"linfer/domain/dataset"
	"linfer/domain/regression"
	"linfer/ports"
)

func fixtureDataset(t *testing.T, seed int64) *dataset.SyntheticDataset {
	t.Helper()
	sim := simulate.NewSimulator(simulate.NewRNG())
	ds, err := sim.Simulate(context.Background(), dataset.DefaultParams(seed))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	return ds
}

func testOpts(seed int64) ports.SampleOptions {
	return ports.SampleOptions{Seed: seed, Draws: 1000, BurnIn: 300, Chains: 2, Level: 0.95}
}

func TestSample_RecoversGeneratingParameters(t *testing.T) {
	ds := fixtureDataset(t, 42)

	fit, err := NewSampler().Sample(context.Background(), ds, regression.WeaklyInformativePrior(), testOpts(42))
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	// Posterior medians should sit near the generating values. The
	// slope SE at n=100, sigma=2, x ~ U(-10,10) is roughly 0.035, so
	// a 0.2 tolerance is generous.
	if math.Abs(fit.Slope.Median-ds.Params.Beta) > 0.2 {
		t.Errorf("slope median %f too far from true beta %f", fit.Slope.Median, ds.Params.Beta)
	}
	if math.Abs(fit.Sigma.Median-ds.Params.Sigma) > 0.6 {
		t.Errorf("sigma median %f too far from true sigma %f", fit.Sigma.Median, ds.Params.Sigma)
	}
	if !fit.Slope.Credible.Contains(fit.Slope.Median) {
		t.Error("median should lie inside the credible interval")
	}
	if fit.DrawCount != 2000 {
		t.Errorf("draw count: got %d, want 2000", fit.DrawCount)
	}
}

func TestSample_IntervalsOrdered(t *testing.T) {
	ds := fixtureDataset(t, 7)

	fit, err := NewSampler().Sample(context.Background(), ds, regression.WeaklyInformativePrior(), testOpts(7))
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	for _, p := range []regression.PosteriorParam{fit.Intercept, fit.Slope, fit.Sigma} {
		if p.Credible.Lower > p.Credible.Upper {
			t.Errorf("%s credible interval out of order: [%f, %f]", p.Key, p.Credible.Lower, p.Credible.Upper)
		}
	}
	if fit.Sigma.Credible.Lower <= 0 {
		t.Errorf("sigma draws must stay positive, interval lower %f", fit.Sigma.Credible.Lower)
	}
}

func TestSample_DeterministicForFixedSeed(t *testing.T) {
	ds := fixtureDataset(t, 11)
	sampler := NewSampler()
	prior := regression.WeaklyInformativePrior()

	a, err := sampler.Sample(context.Background(), ds, prior, testOpts(99))
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	b, err := sampler.Sample(context.Background(), ds, prior, testOpts(99))
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if a.Slope.Mean != b.Slope.Mean || a.Sigma.Median != b.Sigma.Median {
		t.Error("same sampler seed should reproduce identical summaries")
	}
}

func TestSample_CredibleOverlapsConfidence(t *testing.T) {
	ds := fixtureDataset(t, 42)
	ctx := context.Background()

	freq, err := ols.NewFitter().Fit(ctx, ds, 0.95)
	if err != nil {
		t.Fatalf("ols fit: %v", err)
	}
	post, err := NewSampler().Sample(ctx, ds, regression.WeaklyInformativePrior(), testOpts(42))
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	cmp, err := regression.Compare(freq, post)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	// Under a weak prior the two slope intervals should cover nearly
	// the same range, not merely touch.
	if cmp.Slope.OverlapFraction < 0.5 {
		t.Errorf("slope intervals barely overlap: fraction %f, CI %+v vs CrI %+v",
			cmp.Slope.OverlapFraction, cmp.Slope.Confidence, cmp.Slope.Credible)
	}
	if cmp.Intercept.OverlapFraction < 0.5 {
		t.Errorf("intercept intervals barely overlap: fraction %f", cmp.Intercept.OverlapFraction)
	}
}

func TestSample_RejectsBadInputs(t *testing.T) {
	ds := fixtureDataset(t, 1)
	sampler := NewSampler()
	ctx := context.Background()

	if _, err := sampler.Sample(ctx, ds, regression.Prior{}, testOpts(1)); err == nil {
		t.Error("zero-value prior should be rejected")
	}

	opts := testOpts(1)
	opts.Chains = 0
	if _, err := sampler.Sample(ctx, ds, regression.WeaklyInformativePrior(), opts); err == nil {
		t.Error("zero chains should be rejected")
	}

	opts = testOpts(1)
	opts.Level = 1.2
	if _, err := sampler.Sample(ctx, ds, regression.WeaklyInformativePrior(), opts); err == nil {
		t.Error("level outside (0,1) should be rejected")
	}
}
