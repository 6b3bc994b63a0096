package regression

import (
	"fmt"

	"linfer/domain/core"
)

// Interval is an ordered estimate range at a given level.
// INVARIANT: Lower <= Upper, 0 < Level < 1.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"` // e.g. 0.95
}

// NewInterval constructs an interval, enforcing bound order
func NewInterval(lower, upper, level float64) (Interval, error) {
	if level <= 0 || level >= 1 {
		return Interval{}, core.NewValidationError(core.ErrInvalidLevel, fmt.Sprintf("got %g", level))
	}
	if lower > upper {
		return Interval{}, core.NewValidationError(core.ErrInvalidInterval,
			fmt.Sprintf("lower %g exceeds upper %g", lower, upper))
	}
	return Interval{Lower: lower, Upper: upper, Level: level}, nil
}

// Width returns the interval width
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Contains reports whether v lies inside the interval (bounds inclusive)
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Lower && v <= iv.Upper
}

// Overlap returns the width of the intersection with other, zero when disjoint
func (iv Interval) Overlap(other Interval) float64 {
	lo := iv.Lower
	if other.Lower > lo {
		lo = other.Lower
	}
	hi := iv.Upper
	if other.Upper < hi {
		hi = other.Upper
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}

// Coefficient is one frequentist parameter estimate with its sampling
// uncertainty.
type Coefficient struct {
	Key        core.ParamKey `json:"key"`
	Estimate   float64       `json:"estimate"`
	StdError   float64       `json:"std_error"`
	Confidence Interval      `json:"confidence"`
}

// FrequentistFit is the closed-form OLS result for simple linear regression.
type FrequentistFit struct {
	Intercept        Coefficient             `json:"intercept"`
	Slope            Coefficient             `json:"slope"`
	ResidualStdError float64                 `json:"residual_std_error"`
	RSquared         float64                 `json:"r_squared"`
	DegreesOfFreedom int                     `json:"degrees_of_freedom"` // n - 2
	SampleSize       int                     `json:"sample_size"`
	Fingerprint      core.DatasetFingerprint `json:"fingerprint"` // Dataset the fit was computed on
}

// Predict evaluates the fitted line at x
func (f *FrequentistFit) Predict(x float64) float64 {
	return f.Intercept.Estimate + f.Slope.Estimate*x
}

// Coefficient returns the estimate for a parameter key, false for sigma
// (OLS reports sigma as ResidualStdError without an interval here).
func (f *FrequentistFit) Coefficient(key core.ParamKey) (Coefficient, bool) {
	switch key {
	case core.ParamIntercept:
		return f.Intercept, true
	case core.ParamSlope:
		return f.Slope, true
	default:
		return Coefficient{}, false
	}
}

// Prior declares the conjugate Normal-Inverse-Gamma prior explicitly.
// Coefficients ~ Normal(Mean, sigma^2 / Precision) per component,
// sigma^2 ~ InverseGamma(ShapeA, RateB). Nothing here is a hidden
// library default; the zero value is invalid on purpose.
type Prior struct {
	InterceptMean float64 `json:"intercept_mean"`
	SlopeMean     float64 `json:"slope_mean"`
	Precision     float64 `json:"precision"` // Prior precision on both coefficients
	ShapeA        float64 `json:"shape_a"`
	RateB         float64 `json:"rate_b"`
}

// WeaklyInformativePrior is the declared default: near-flat coefficients
// and a vague variance prior.
func WeaklyInformativePrior() Prior {
	return Prior{
		InterceptMean: 0,
		SlopeMean:     0,
		Precision:     0.01,
		ShapeA:        0.01,
		RateB:         0.01,
	}
}

// Validate checks the prior hyperparameters
func (p Prior) Validate() error {
	if p.Precision <= 0 {
		return core.NewValidationError(core.ErrInvalidPrior, fmt.Sprintf("precision must be positive, got %g", p.Precision))
	}
	if p.ShapeA <= 0 || p.RateB <= 0 {
		return core.NewValidationError(core.ErrInvalidPrior,
			fmt.Sprintf("inverse-gamma hyperparameters must be positive, got a=%g b=%g", p.ShapeA, p.RateB))
	}
	return nil
}

// String renders the prior declaration for reports
func (p Prior) String() string {
	return fmt.Sprintf("coefficients ~ Normal(mean=[%g, %g], precision=%g), sigma^2 ~ InvGamma(a=%g, b=%g)",
		p.InterceptMean, p.SlopeMean, p.Precision, p.ShapeA, p.RateB)
}

// PosteriorParam summarizes the draws for one parameter.
type PosteriorParam struct {
	Key      core.ParamKey `json:"key"`
	Mean     float64       `json:"mean"`
	Median   float64       `json:"median"`
	Credible Interval      `json:"credible"`
	Draws    []float64     `json:"-"` // Raw draws, kept out of persisted JSON
}

// PosteriorFit is the output of one sampler invocation.
// Draws are never mutated after generation; rerun the sampler to get
// a fresh collection.
type PosteriorFit struct {
	Intercept   PosteriorParam          `json:"intercept"`
	Slope       PosteriorParam          `json:"slope"`
	Sigma       PosteriorParam          `json:"sigma"`
	Prior       Prior                   `json:"prior"`
	DrawCount   int                     `json:"draw_count"` // Retained draws after burn-in, all chains
	Chains      int                     `json:"chains"`
	Fingerprint core.DatasetFingerprint `json:"fingerprint"`
}

// Param returns the posterior summary for a parameter key
func (f *PosteriorFit) Param(key core.ParamKey) (PosteriorParam, bool) {
	switch key {
	case core.ParamIntercept:
		return f.Intercept, true
	case core.ParamSlope:
		return f.Slope, true
	case core.ParamSigma:
		return f.Sigma, true
	default:
		return PosteriorParam{}, false
	}
}
