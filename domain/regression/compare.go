package regression

import (
	"linfer/domain/core"
)

// ParamComparison places the frequentist and Bayesian answers for one
// parameter side by side. Purely presentational: nothing is merged,
// the overlap numbers exist so a reader can see agreement at a glance.
type ParamComparison struct {
	Key                core.ParamKey `json:"key"`
	PointEstimate      float64       `json:"point_estimate"` // OLS estimate
	PosteriorMedian    float64       `json:"posterior_median"`
	Confidence         Interval      `json:"confidence"`
	Credible           Interval      `json:"credible"`
	OverlapWidth       float64       `json:"overlap_width"`
	OverlapFraction    float64       `json:"overlap_fraction"`    // Overlap over the union width
	EstimatesContained bool          `json:"estimates_contained"` // Each point estimate inside the other interval
}

// Comparison is the side-by-side view over the shared parameters.
type Comparison struct {
	Intercept   ParamComparison         `json:"intercept"`
	Slope       ParamComparison         `json:"slope"`
	Fingerprint core.DatasetFingerprint `json:"fingerprint"`
}

// Compare builds the side-by-side view for the parameters both fits report.
// The fits must come from the same dataset; mismatched fingerprints are a
// caller bug surfaced as ErrHashMismatch.
func Compare(freq *FrequentistFit, post *PosteriorFit) (*Comparison, error) {
	if freq.Fingerprint != post.Fingerprint {
		return nil, core.ErrHashMismatch
	}

	return &Comparison{
		Intercept:   compareParam(freq.Intercept, post.Intercept),
		Slope:       compareParam(freq.Slope, post.Slope),
		Fingerprint: freq.Fingerprint,
	}, nil
}

func compareParam(coef Coefficient, param PosteriorParam) ParamComparison {
	overlap := coef.Confidence.Overlap(param.Credible)

	unionWidth := coef.Confidence.Width() + param.Credible.Width() - overlap
	fraction := 0.0
	if unionWidth > 0 {
		fraction = overlap / unionWidth
	}

	return ParamComparison{
		Key:             coef.Key,
		PointEstimate:   coef.Estimate,
		PosteriorMedian: param.Median,
		Confidence:      coef.Confidence,
		Credible:        param.Credible,
		OverlapWidth:    overlap,
		OverlapFraction: fraction,
		EstimatesContained: coef.Confidence.Contains(param.Median) &&
			param.Credible.Contains(coef.Estimate),
	}
}
