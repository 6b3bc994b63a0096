package simulate

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"linfer/ports"
)

// RNG implements ports.RNGPort over math/rand. Every stream is built
// from the caller's seed alone so a run replays exactly.
type RNG struct{}

// NewRNG creates the default RNG adapter
func NewRNG() *RNG {
	return &RNG{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNG) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed)), nil
}

// ValidateSeed ensures the seed produces expected deterministic results
func (r *RNG) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	stream, err := r.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := stream.Float64()
		if math.Abs(got-want) > 1e-12 {
			return fmt.Errorf("seed validation failed for %s at draw %d: got %v, want %v", name, i, got, want)
		}
	}
	return nil
}

var _ ports.RNGPort = (*RNG)(nil)
