package ols

import (
	"context"
	"math"

	"linfer/domain/core"
	"linfer/domain/dataset"
	"linfer/domain/regression"
	"linfer/ports"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fitter computes closed-form simple linear regression with
// t-distribution confidence intervals. Pure: no state, no side effects.
type Fitter struct{}

// NewFitter creates the OLS fitter
func NewFitter() *Fitter {
	return &Fitter{}
}

// Fit runs ordinary least squares on the dataset and builds two-sided
// confidence intervals at the given level using Student's t with n-2
// degrees of freedom.
func (f *Fitter) Fit(ctx context.Context, ds *dataset.SyntheticDataset, level float64) (*regression.FrequentistFit, error) {
	n := ds.Len()
	if n <= 2 {
		return nil, core.ErrInsufficientData
	}
	if level <= 0 || level >= 1 {
		return nil, core.ErrInvalidLevel
	}

	xMean := stat.Mean(ds.X, nil)
	sxx := 0.0
	for _, x := range ds.X {
		d := x - xMean
		sxx += d * d
	}
	if sxx == 0 {
		return nil, core.ErrConstantX
	}

	intercept, slope := stat.LinearRegression(ds.X, ds.Y, nil, false)
	rSquared := stat.RSquared(ds.X, ds.Y, nil, intercept, slope)

	// Residual standard error with n-2 degrees of freedom
	rss := 0.0
	for i, x := range ds.X {
		resid := ds.Y[i] - (intercept + slope*x)
		rss += resid * resid
	}
	df := n - 2
	residualSE := math.Sqrt(rss / float64(df))

	// Standard errors of the coefficients
	slopeSE := residualSE / math.Sqrt(sxx)
	interceptSE := residualSE * math.Sqrt(1.0/float64(n)+xMean*xMean/sxx)

	alpha := 1 - level
	tCritical := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}.Quantile(1 - alpha/2)

	interceptCI, err := regression.NewInterval(
		intercept-tCritical*interceptSE,
		intercept+tCritical*interceptSE,
		level,
	)
	if err != nil {
		return nil, err
	}
	slopeCI, err := regression.NewInterval(
		slope-tCritical*slopeSE,
		slope+tCritical*slopeSE,
		level,
	)
	if err != nil {
		return nil, err
	}

	return &regression.FrequentistFit{
		Intercept: regression.Coefficient{
			Key:        core.ParamIntercept,
			Estimate:   intercept,
			StdError:   interceptSE,
			Confidence: interceptCI,
		},
		Slope: regression.Coefficient{
			Key:        core.ParamSlope,
			Estimate:   slope,
			StdError:   slopeSE,
			Confidence: slopeCI,
		},
		ResidualStdError: residualSE,
		RSquared:         rSquared,
		DegreesOfFreedom: df,
		SampleSize:       n,
		Fingerprint:      ds.Fingerprint,
	}, nil
}

var _ ports.FitterPort = (*Fitter)(nil)
