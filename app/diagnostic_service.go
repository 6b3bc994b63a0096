package app

import (
	"context"

	"linfer/domain/diagnostic"
	"linfer/internal/errors"
)

// DiagnosticService wraps the Bayes-rule worked example behind the
// same service surface as the regression pipeline.
type DiagnosticService struct{}

// NewDiagnosticService creates a diagnostic service
func NewDiagnosticService() *DiagnosticService {
	return &DiagnosticService{}
}

// Evaluate computes the posterior probability of the condition given a
// positive test for the scenario.
func (s *DiagnosticService) Evaluate(ctx context.Context, scenario diagnostic.TestScenario) (*diagnostic.Result, error) {
	result, err := diagnostic.Posterior(scenario)
	if err != nil {
		return nil, errors.Wrap(err, "diagnostic computation failed")
	}
	return result, nil
}
