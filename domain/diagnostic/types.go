package diagnostic

import (
	"fmt"

	"linfer/domain/core"
)

// TestScenario holds the fixed probabilities of a diagnostic-test
// worked example. Stateless; one computation, no lifecycle.
type TestScenario struct {
	Prevalence  float64 `json:"prevalence"`  // Base rate of the condition
	Sensitivity float64 `json:"sensitivity"` // True-positive rate
	Specificity float64 `json:"specificity"` // True-negative rate
}

// FalsePositiveRate derives fp = 1 - specificity
func (s TestScenario) FalsePositiveRate() float64 {
	return 1 - s.Specificity
}

// Validate checks all probabilities lie in [0, 1]
func (s TestScenario) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"prevalence", s.Prevalence},
		{"sensitivity", s.Sensitivity},
		{"specificity", s.Specificity},
	} {
		if p.value < 0 || p.value > 1 {
			return core.NewValidationError(core.ErrProbabilityRange,
				fmt.Sprintf("%s = %g", p.name, p.value))
		}
	}
	return nil
}

// Result carries the derived probabilities from one Bayes-rule pass.
type Result struct {
	Scenario          TestScenario `json:"scenario"`
	PositiveRate      float64      `json:"positive_rate"`      // P(positive test)
	PosteriorPositive float64      `json:"posterior_positive"` // P(condition | positive test)
}

// Posterior applies the law of total probability and Bayes' rule:
//
//	P(pos)       = se*p + fp*(1-p)
//	P(cond|pos)  = se*p / P(pos)
//
// A zero positive-test probability is a domain error, never a silent
// division producing NaN.
func Posterior(s TestScenario) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fp := s.FalsePositiveRate()
	positiveRate := s.Sensitivity*s.Prevalence + fp*(1-s.Prevalence)
	if positiveRate == 0 {
		return nil, core.ErrZeroDenominator
	}

	return &Result{
		Scenario:          s,
		PositiveRate:      positiveRate,
		PosteriorPositive: s.Sensitivity * s.Prevalence / positiveRate,
	}, nil
}
