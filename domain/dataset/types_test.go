package dataset

import (
	"errors"
	"testing"

	"linfer/domain/core"
)

func TestGeneratingParams_Validate(t *testing.T) {
	if err := DefaultParams(42).Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	cases := []struct {
		name   string
		params GeneratingParams
	}{
		{"n too small", GeneratingParams{Seed: 1, N: 2, Beta: 1, Sigma: 1, XMin: -1, XMax: 1}},
		{"zero sigma", GeneratingParams{Seed: 1, N: 10, Beta: 1, Sigma: 0, XMin: -1, XMax: 1}},
		{"empty x range", GeneratingParams{Seed: 1, N: 10, Beta: 1, Sigma: 1, XMin: 1, XMax: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.params.Validate(); !errors.Is(err, core.ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestNew_RejectsLengthMismatch(t *testing.T) {
	params := GeneratingParams{Seed: 1, N: 5, Beta: 1, Sigma: 1, XMin: -1, XMax: 1}
	if _, err := New(params, make([]float64, 3), make([]float64, 5)); !errors.Is(err, core.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for short x, got %v", err)
	}
}

func TestVerifyFingerprint_DetectsMutation(t *testing.T) {
	params := GeneratingParams{Seed: 1, N: 3, Beta: 1, Sigma: 1, XMin: -1, XMax: 1}
	ds, err := New(params, []float64{1, 2, 3}, []float64{1.1, 2.2, 3.3})
	if err != nil {
		t.Fatalf("new dataset failed: %v", err)
	}

	if err := ds.VerifyFingerprint(); err != nil {
		t.Fatalf("fresh dataset should verify: %v", err)
	}

	ds.Y[1] = 99
	if err := ds.VerifyFingerprint(); !errors.Is(err, core.ErrHashMismatch) {
		t.Errorf("mutated dataset should fail with ErrHashMismatch, got %v", err)
	}
}

func TestFingerprint_DistinguishesXFromY(t *testing.T) {
	params := GeneratingParams{Seed: 1, N: 3, Beta: 1, Sigma: 1, XMin: -1, XMax: 1}
	a, _ := New(params, []float64{1, 2, 3}, []float64{4, 5, 6})
	b, _ := New(params, []float64{4, 5, 6}, []float64{1, 2, 3})

	if a.Fingerprint == b.Fingerprint {
		t.Error("swapping x and y should change the fingerprint")
	}
}
