package run

import (
	"linfer/domain/core"
	"linfer/domain/dataset"
	"linfer/domain/regression"
)

// Status tracks the lifecycle of a persisted analysis run
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// AnalysisRun is the persisted aggregate for one pipeline pass:
// one dataset, one frequentist fit, one Bayesian fit, one comparison.
type AnalysisRun struct {
	ID          core.RunID                 `json:"id"`
	Status      Status                     `json:"status"`
	Params      dataset.GeneratingParams   `json:"params"`
	Dataset     *dataset.SyntheticDataset  `json:"dataset,omitempty"`
	Frequentist *regression.FrequentistFit `json:"frequentist"`
	Posterior   *regression.PosteriorFit   `json:"posterior"`
	Comparison  *regression.Comparison     `json:"comparison"`
	CreatedAt   core.Timestamp             `json:"created_at"`
}

// Fingerprint returns the dataset fingerprint both fits were computed on
func (r *AnalysisRun) Fingerprint() core.DatasetFingerprint {
	if r.Dataset == nil {
		return ""
	}
	return r.Dataset.Fingerprint
}
