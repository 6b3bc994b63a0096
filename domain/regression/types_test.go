package regression

import (
	"errors"
	"testing"

	"linfer/domain/core"
)

func TestNewInterval_EnforcesOrder(t *testing.T) {
	iv, err := NewInterval(-1.5, 2.5, 0.95)
	if err != nil {
		t.Fatalf("valid interval rejected: %v", err)
	}
	if iv.Lower > iv.Upper {
		t.Errorf("bounds out of order: [%f, %f]", iv.Lower, iv.Upper)
	}
	if got := iv.Width(); got != 4.0 {
		t.Errorf("width: got %f, want 4.0", got)
	}

	if _, err := NewInterval(2.5, -1.5, 0.95); !errors.Is(err, core.ErrInvalidInterval) {
		t.Errorf("reversed bounds should fail with ErrInvalidInterval, got %v", err)
	}
}

func TestNewInterval_RejectsBadLevel(t *testing.T) {
	for _, level := range []float64{0, 1, -0.5, 1.5} {
		if _, err := NewInterval(0, 1, level); !errors.Is(err, core.ErrInvalidLevel) {
			t.Errorf("level %f should fail with ErrInvalidLevel, got %v", level, err)
		}
	}
}

func TestInterval_ZeroWidthAllowed(t *testing.T) {
	// Degenerate but ordered: a perfect fit has zero-width intervals
	if _, err := NewInterval(1.0, 1.0, 0.95); err != nil {
		t.Errorf("zero-width interval rejected: %v", err)
	}
}

func TestInterval_Overlap(t *testing.T) {
	a, _ := NewInterval(0, 10, 0.95)
	b, _ := NewInterval(5, 15, 0.95)
	c, _ := NewInterval(20, 30, 0.95)

	if got := a.Overlap(b); got != 5.0 {
		t.Errorf("overlap: got %f, want 5.0", got)
	}
	if got := b.Overlap(a); got != 5.0 {
		t.Errorf("overlap not symmetric: got %f", got)
	}
	if got := a.Overlap(c); got != 0.0 {
		t.Errorf("disjoint intervals should have zero overlap, got %f", got)
	}
}

func TestInterval_Contains(t *testing.T) {
	iv, _ := NewInterval(-1, 1, 0.95)
	for _, v := range []float64{-1, 0, 1} {
		if !iv.Contains(v) {
			t.Errorf("interval should contain %f", v)
		}
	}
	if iv.Contains(1.001) {
		t.Error("interval should not contain 1.001")
	}
}

func TestPrior_Validate(t *testing.T) {
	if err := WeaklyInformativePrior().Validate(); err != nil {
		t.Fatalf("default prior invalid: %v", err)
	}

	bad := []Prior{
		{Precision: 0, ShapeA: 1, RateB: 1},
		{Precision: 1, ShapeA: 0, RateB: 1},
		{Precision: 1, ShapeA: 1, RateB: -1},
	}
	for i, p := range bad {
		if err := p.Validate(); !errors.Is(err, core.ErrInvalidPrior) {
			t.Errorf("prior %d should fail with ErrInvalidPrior, got %v", i, err)
		}
	}

	// The zero value must never pass as a silent default
	if err := (Prior{}).Validate(); err == nil {
		t.Error("zero-value prior should be invalid")
	}
}
