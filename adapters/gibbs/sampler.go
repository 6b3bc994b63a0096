// Package gibbs provides the default Bayesian regression sampler.
//
// The sampler draws from the exact conditional distributions of the
// conjugate Normal-Inverse-Gamma model, so no Metropolis correction
// (and no Hamiltonian machinery) is involved. It stands behind
// ports.SamplerPort and can be swapped for any external inference
// engine that honors the same contract.
package gibbs

import (
	"context"
	"fmt"
	"math"
	randv2 "math/rand/v2"
	"sort"

	"linfer/domain/core"
	"linfer/domain/dataset"
	"linfer/domain/regression"
	"linfer/ports"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler implements ports.SamplerPort with a conjugate Gibbs scheme.
type Sampler struct{}

// NewSampler creates the default Gibbs sampler
func NewSampler() *Sampler {
	return &Sampler{}
}

// chainDraws holds the retained draws of one chain
type chainDraws struct {
	intercept []float64
	slope     []float64
	sigma     []float64
}

// Sample draws from the posterior of intercept, slope and sigma under
// the declared prior. Chains run concurrently and their retained draws
// are concatenated. Deterministic for a fixed seed and chain count.
func (s *Sampler) Sample(ctx context.Context, ds *dataset.SyntheticDataset, prior regression.Prior, opts ports.SampleOptions) (*regression.PosteriorFit, error) {
	if err := prior.Validate(); err != nil {
		return nil, err
	}
	if ds.Len() <= 2 {
		return nil, core.ErrInsufficientData
	}
	if opts.Draws <= 0 || opts.Chains <= 0 || opts.BurnIn < 0 {
		return nil, fmt.Errorf("sampler needs positive draws and chains and non-negative burn-in, got %d/%d/%d",
			opts.Draws, opts.Chains, opts.BurnIn)
	}
	if opts.Level <= 0 || opts.Level >= 1 {
		return nil, core.ErrInvalidLevel
	}
	if err := ds.VerifyFingerprint(); err != nil {
		return nil, err
	}

	// Sufficient statistics, computed once and shared by all chains
	suff := newSufficientStats(ds)

	chains := make([]chainDraws, opts.Chains)
	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < opts.Chains; c++ {
		g.Go(func() error {
			draws, err := s.runChain(gctx, suff, prior, opts, c)
			if err != nil {
				return fmt.Errorf("chain %d: %w", c, err)
			}
			chains[c] = draws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := opts.Draws * opts.Chains
	intercept := make([]float64, 0, total)
	slope := make([]float64, 0, total)
	sigma := make([]float64, 0, total)
	for _, c := range chains {
		intercept = append(intercept, c.intercept...)
		slope = append(slope, c.slope...)
		sigma = append(sigma, c.sigma...)
	}

	interceptParam, err := summarize(core.ParamIntercept, intercept, opts.Level)
	if err != nil {
		return nil, err
	}
	slopeParam, err := summarize(core.ParamSlope, slope, opts.Level)
	if err != nil {
		return nil, err
	}
	sigmaParam, err := summarize(core.ParamSigma, sigma, opts.Level)
	if err != nil {
		return nil, err
	}

	return &regression.PosteriorFit{
		Intercept:   interceptParam,
		Slope:       slopeParam,
		Sigma:       sigmaParam,
		Prior:       prior,
		DrawCount:   total,
		Chains:      opts.Chains,
		Fingerprint: ds.Fingerprint,
	}, nil
}

// sufficientStats caches the cross-products the conditionals need
type sufficientStats struct {
	n     int
	sumX  float64
	sumXX float64
	sumY  float64
	sumXY float64
	sumYY float64
}

func newSufficientStats(ds *dataset.SyntheticDataset) sufficientStats {
	suff := sufficientStats{n: ds.Len()}
	for i, x := range ds.X {
		y := ds.Y[i]
		suff.sumX += x
		suff.sumXX += x * x
		suff.sumY += y
		suff.sumXY += x * y
		suff.sumYY += y * y
	}
	return suff
}

// runChain executes one Gibbs chain and returns its retained draws.
// Each chain derives its own PCG stream from the base seed and its
// index, so chains are independent but replayable.
func (s *Sampler) runChain(ctx context.Context, suff sufficientStats, prior regression.Prior, opts ports.SampleOptions, chain int) (chainDraws, error) {
	src := randv2.NewPCG(uint64(opts.Seed), uint64(opts.Seed)^(0x9e3779b97f4a7c15*uint64(chain+1)))
	unitNormal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	draws := chainDraws{
		intercept: make([]float64, 0, opts.Draws),
		slope:     make([]float64, 0, opts.Draws),
		sigma:     make([]float64, 0, opts.Draws),
	}

	// Posterior precision of the coefficients given sigma^2:
	// V = X'X + tau*I, fixed across iterations.
	n := float64(suff.n)
	v00 := n + prior.Precision
	v01 := suff.sumX
	v11 := suff.sumXX + prior.Precision
	det := v00*v11 - v01*v01
	if det <= 0 {
		return chainDraws{}, core.ErrConstantX
	}

	// mean_n = V^{-1} (X'y + tau*m)
	b0 := suff.sumY + prior.Precision*prior.InterceptMean
	b1 := suff.sumXY + prior.Precision*prior.SlopeMean
	mean0 := (v11*b0 - v01*b1) / det
	mean1 := (v00*b1 - v01*b0) / det

	// Start at the conditional mean with a unit variance
	beta0, beta1 := mean0, mean1
	sigma2 := 1.0

	total := opts.BurnIn + opts.Draws
	for iter := 0; iter < total; iter++ {
		if iter%256 == 0 {
			select {
			case <-ctx.Done():
				return chainDraws{}, ctx.Err()
			default:
			}
		}

		// sigma^2 | beta ~ InvGamma(a_n, b_n) with the NIG quadratic form
		rss := suff.sumYY - 2*beta0*suff.sumY - 2*beta1*suff.sumXY +
			beta0*beta0*n + 2*beta0*beta1*suff.sumX + beta1*beta1*suff.sumXX
		d0 := beta0 - prior.InterceptMean
		d1 := beta1 - prior.SlopeMean
		quad := prior.Precision * (d0*d0 + d1*d1)

		aN := prior.ShapeA + (n+2)/2
		bN := prior.RateB + (rss+quad)/2
		precision := distuv.Gamma{Alpha: aN, Beta: bN, Src: src}.Rand()
		sigma2 = 1 / precision

		// beta | sigma^2 ~ N(mean_n, sigma^2 * V^{-1}), via the
		// Cholesky factor of the 2x2 covariance
		c00 := sigma2 * v11 / det
		c01 := -sigma2 * v01 / det
		c11 := sigma2 * v00 / det
		l00 := math.Sqrt(c00)
		l10 := c01 / l00
		l11 := math.Sqrt(c11 - l10*l10)

		z0 := unitNormal.Rand()
		z1 := unitNormal.Rand()
		beta0 = mean0 + l00*z0
		beta1 = mean1 + l10*z0 + l11*z1

		if iter >= opts.BurnIn {
			draws.intercept = append(draws.intercept, beta0)
			draws.slope = append(draws.slope, beta1)
			draws.sigma = append(draws.sigma, math.Sqrt(sigma2))
		}
	}

	return draws, nil
}

// summarize reduces a draw collection to point summaries and an
// empirical-quantile credible interval.
func summarize(key core.ParamKey, draws []float64, level float64) (regression.PosteriorParam, error) {
	if len(draws) == 0 {
		return regression.PosteriorParam{}, core.ErrInsufficientData
	}

	sorted := make([]float64, len(draws))
	copy(sorted, draws)
	sort.Float64s(sorted)

	mean, err := stats.Mean(sorted)
	if err != nil {
		return regression.PosteriorParam{}, err
	}
	median, err := stats.Median(sorted)
	if err != nil {
		return regression.PosteriorParam{}, err
	}

	alpha := 1 - level
	lower, err := stats.Percentile(sorted, 100*alpha/2)
	if err != nil {
		return regression.PosteriorParam{}, err
	}
	upper, err := stats.Percentile(sorted, 100*(1-alpha/2))
	if err != nil {
		return regression.PosteriorParam{}, err
	}

	credible, err := regression.NewInterval(lower, upper, level)
	if err != nil {
		return regression.PosteriorParam{}, err
	}

	return regression.PosteriorParam{
		Key:      key,
		Mean:     mean,
		Median:   median,
		Credible: credible,
		Draws:    draws,
	}, nil
}

var _ ports.SamplerPort = (*Sampler)(nil)
